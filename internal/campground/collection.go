package campground

import "fmt"

// Collection is an ordered, deduplicated set of campground records keyed by
// facility ID. Insertion order is preserved; the only mutation after startup
// is eviction.
type Collection struct {
	records []*Campground
	byID    map[string]*Campground
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{
		byID: make(map[string]*Campground),
	}
}

// Merge builds a collection from operator-supplied records and discovery
// results. Operator entries win on duplicate facility IDs. Returns an error
// when both inputs are empty, since there would be nothing to watch.
func Merge(operator, discovered []*Campground) (*Collection, error) {
	if len(operator) == 0 && len(discovered) == 0 {
		return nil, fmt.Errorf("no campgrounds to watch: both operator list and discovery results are empty")
	}
	coll := NewCollection()
	for _, c := range operator {
		coll.Add(c)
	}
	for _, c := range discovered {
		coll.Add(c)
	}
	return coll, nil
}

// Add appends a record unless its facility ID is already present. Reports
// whether the record was added.
func (l *Collection) Add(c *Campground) bool {
	if _, exists := l.byID[c.ID]; exists {
		return false
	}
	l.byID[c.ID] = c
	l.records = append(l.records, c)
	return true
}

// Remove evicts the record with the given facility ID, preserving the order
// of the remaining records.
func (l *Collection) Remove(id string) {
	if _, exists := l.byID[id]; !exists {
		return
	}
	delete(l.byID, id)
	for i, c := range l.records {
		if c.ID == id {
			l.records = append(l.records[:i], l.records[i+1:]...)
			break
		}
	}
}

// Get returns the record with the given facility ID, or nil.
func (l *Collection) Get(id string) *Campground {
	return l.byID[id]
}

// Len returns the number of records currently tracked.
func (l *Collection) Len() int {
	return len(l.records)
}

// Records returns a snapshot of the records in insertion order. Callers may
// evict from the collection while iterating the snapshot without skipping or
// double-processing neighbors.
func (l *Collection) Records() []*Campground {
	out := make([]*Campground, len(l.records))
	copy(out, l.records)
	return out
}

// Serialize maps every record to its JSON envelope, in collection order.
func (l *Collection) Serialize() []Envelope {
	out := make([]Envelope, 0, len(l.records))
	for _, c := range l.records {
		out = append(out, c.Envelope())
	}
	return out
}
