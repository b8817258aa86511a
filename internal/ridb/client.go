package ridb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	// BaseURL is the RIDB facilities endpoint.
	BaseURL = "https://ridb.recreation.gov/api/v1/facilities"

	facilityTypeCampground = "Campground"
	searchLimit            = 20
	requestTimeout         = 60 * time.Second
)

// DiscoveryError reports that the RIDB service was unreachable or returned a
// response that does not match the expected schema.
type DiscoveryError struct {
	Reason string
	Err    error
}

func (e *DiscoveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("RIDB discovery: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("RIDB discovery: %s", e.Reason)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// Facility is one discovered campground: its display name and the facility ID
// used to derive the availability page URL.
type Facility struct {
	Name string
	ID   string
}

// Client queries the RIDB facilities API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an RIDB client authenticated with the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: BaseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// facilityRecord mirrors the RECDATA element fields we consume. Pointers
// distinguish a missing field from an empty one so schema drift surfaces as a
// DiscoveryError instead of silently producing blank campgrounds.
type facilityRecord struct {
	FacilityID   *json.Number `json:"FacilityID"`
	FacilityName *string      `json:"FacilityName"`
	FacilityType *string      `json:"FacilityTypeDescription"`
}

type facilitiesResponse struct {
	Records []facilityRecord `json:"RECDATA"`
}

// FindCampgrounds searches for reservable campgrounds within radius miles of
// the given coordinate and returns their (name, facility ID) pairs. Fails
// with a *DiscoveryError when the service is unreachable or the response is
// missing expected fields.
func (c *Client) FindCampgrounds(ctx context.Context, latitude, longitude float64, radius int) ([]Facility, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	params.Set("radius", strconv.Itoa(radius))
	params.Set("FacilityTypeDescription", facilityTypeCampground)
	params.Set("limit", strconv.Itoa(searchLimit))

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &DiscoveryError{Reason: "creating request", Err: err}
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &DiscoveryError{Reason: "unable to reach RIDB, check connection and API key", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &DiscoveryError{Reason: fmt.Sprintf("RIDB returned status %d, check connection and API key", resp.StatusCode)}
	}

	var payload facilitiesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &DiscoveryError{Reason: "decoding response", Err: err}
	}
	if payload.Records == nil {
		return nil, &DiscoveryError{Reason: "no RECDATA element in response, check RIDB API specs"}
	}

	facilities := make([]Facility, 0, len(payload.Records))
	for _, rec := range payload.Records {
		if rec.FacilityType == nil {
			return nil, &DiscoveryError{Reason: "no FacilityTypeDescription field in RECDATA element, check RIDB API specs"}
		}
		if *rec.FacilityType != facilityTypeCampground {
			continue
		}
		if rec.FacilityID == nil || rec.FacilityName == nil {
			return nil, &DiscoveryError{Reason: "no FacilityID or FacilityName field in campground record, check RIDB API specs"}
		}
		facilities = append(facilities, Facility{
			Name: titleCase(*rec.FacilityName),
			ID:   rec.FacilityID.String(),
		})
	}

	return facilities, nil
}

// titleCase capitalizes each word of an all-caps RIDB facility name.
func titleCase(name string) string {
	words := strings.Fields(strings.ToLower(name))
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
