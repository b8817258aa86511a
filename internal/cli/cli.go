package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfrye/recgov-watch/internal/availability"
	"github.com/mfrye/recgov-watch/internal/campground"
	"github.com/mfrye/recgov-watch/internal/config"
	"github.com/mfrye/recgov-watch/internal/engine"
	"github.com/mfrye/recgov-watch/internal/logger"
	"github.com/mfrye/recgov-watch/internal/notify"
	"github.com/mfrye/recgov-watch/internal/renderer"
	"github.com/mfrye/recgov-watch/internal/ridb"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagStartDate     string
	flagNights        int
	flagEmail         string
	flagText          string
	flagCarrier       string
	flagLat           float64
	flagLon           float64
	flagRadius        int
	flagCampgroundIDs string
	flagNumSites      int
	flagPollInterval  time.Duration
	flagHeadful       bool
	flagDryRun        bool
	flagVerbose       bool
)

// Options are the validated operator inputs for one run.
type Options struct {
	Window        availability.Window
	Email         string
	SMSNumber     string
	Carrier       string
	Geo           *GeoSearch
	CampgroundIDs []string
	NumSites      int
	PollInterval  time.Duration
	Headless      bool
	DryRun        bool
	Verbose       bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recgov-watch",
		Short: "Watch recreation.gov campgrounds for new availability",
		Long: `A daemon that polls recreation.gov campground availability calendars and
sends an email/text alert the first time your requested dates become bookable.
Campgrounds come from an explicit facility ID list, an RIDB radius search
around a coordinate, or both.`,
		SilenceUsage: true,
		RunE:         runWatch,
	}

	cmd.Flags().StringVarP(&flagStartDate, "start-date", "s", "", "First day to reserve, as MM/DD/YYYY (required)")
	cmd.Flags().IntVarP(&flagNights, "nights", "n", 0, "Number of nights to camp (required)")
	cmd.Flags().StringVarP(&flagEmail, "email", "e", "", "Email address for alerts")
	cmd.Flags().StringVarP(&flagText, "text", "t", "", "Phone number for text alerts (e.g. 9998887777)")
	cmd.Flags().StringVarP(&flagCarrier, "carrier", "c", "", "Cell carrier for the phone number (e.g. verizon, tmobile)")
	cmd.Flags().Float64Var(&flagLat, "lat", 0, "Latitude to search around (e.g. 35.994431)")
	cmd.Flags().Float64Var(&flagLon, "lon", 0, "Longitude to search around (e.g. -121.394325)")
	cmd.Flags().IntVarP(&flagRadius, "radius", "r", 0, "Search radius in miles around lat/lon")
	cmd.Flags().StringVar(&flagCampgroundIDs, "campground-ids", "", "Comma-separated facility IDs to watch (e.g. 233116,231962)")
	cmd.Flags().IntVar(&flagNumSites, "num-sites", 1, "Number of campsites needed at each campground")
	cmd.Flags().DurationVar(&flagPollInterval, "poll-interval", engine.DefaultPollInterval, "Time between availability passes")
	cmd.Flags().BoolVar(&flagHeadful, "headful", false, "Run the browser with a visible window (debugging)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print alerts instead of sending them")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	cmd.MarkFlagRequired("start-date")
	cmd.MarkFlagRequired("nights")

	return cmd
}

// buildOptions validates flags into Options.
func buildOptions(cmd *cobra.Command) (*Options, error) {
	start, err := parseStartDate(flagStartDate)
	if err != nil {
		return nil, err
	}
	if err := validateNights(flagNights); err != nil {
		return nil, err
	}
	if err := validateNumSites(flagNumSites); err != nil {
		return nil, err
	}

	if !flagDryRun && flagEmail == "" {
		return nil, fmt.Errorf("--email is required unless --dry-run is set")
	}
	if flagText != "" {
		if _, ok := notify.CarrierGateway(flagCarrier); !ok {
			return nil, fmt.Errorf("--text requires a supported --carrier, got %q", flagCarrier)
		}
	}

	geo, err := buildGeo(
		cmd.Flags().Changed("lat"),
		cmd.Flags().Changed("lon"),
		cmd.Flags().Changed("radius"),
		flagLat, flagLon, flagRadius,
	)
	if err != nil {
		return nil, err
	}

	ids := splitIDList(flagCampgroundIDs)
	if geo == nil && len(ids) == 0 {
		return nil, fmt.Errorf("nothing to watch: provide --campground-ids and/or --lat/--lon/--radius")
	}

	return &Options{
		Window:        availability.Window{Start: start, Nights: flagNights},
		Email:         flagEmail,
		SMSNumber:     flagText,
		Carrier:       flagCarrier,
		Geo:           geo,
		CampgroundIDs: ids,
		NumSites:      flagNumSites,
		PollInterval:  flagPollInterval,
		Headless:      !flagHeadful,
		DryRun:        flagDryRun,
		Verbose:       flagVerbose,
	}, nil
}

// runWatch is the main command logic.
func runWatch(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}

	level := logger.LevelInfo
	if opts.Verbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, os.Stdout)
	logger.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	coll, err := assembleCollection(ctx, cfg, opts, log)
	if err != nil {
		return err
	}

	if data, err := json.MarshalIndent(coll.Serialize(), "", "  "); err == nil {
		log.Info("watching campgrounds", logger.Fields{"count": coll.Len()})
		fmt.Fprintln(os.Stdout, string(data))
	}

	notifier, err := buildNotifier(cfg, opts, log)
	if err != nil {
		return err
	}

	rend, err := renderer.New(ctx, opts.Headless)
	if err != nil {
		return fmt.Errorf("starting page renderer: %w", err)
	}
	defer rend.Close()

	eng := engine.New(rend, log)
	sched := engine.NewScheduler(eng, notifier, opts.PollInterval, opts.Window.Start, log)

	err = sched.Run(ctx, coll, opts.Window)
	log.Info("run finished", logger.Fields{"counters": logger.CountersSnapshot()})
	if errors.Is(err, context.Canceled) {
		log.Info("interrupted, shutting down", nil)
		return nil
	}
	return err
}

// assembleCollection merges operator-supplied facility IDs with RIDB
// discovery results. A discovery failure is fatal: a partial list would
// silently narrow the watch.
func assembleCollection(ctx context.Context, cfg config.Config, opts *Options, log *logger.Logger) (*campground.Collection, error) {
	var operator []*campground.Campground
	for _, id := range opts.CampgroundIDs {
		log.Debug("tracking operator-provided facility", logger.Fields{"id": id})
		operator = append(operator, campground.New("Name Unknown (User Provided)", id))
	}

	var discovered []*campground.Campground
	if opts.Geo != nil {
		client := ridb.NewClient(cfg.RIDBAPIKey)
		facilities, err := client.FindCampgrounds(ctx, opts.Geo.Latitude, opts.Geo.Longitude, opts.Geo.Radius)
		if err != nil {
			return nil, fmt.Errorf("campground discovery failed: %w", err)
		}
		log.Info("discovered campgrounds from RIDB", logger.Fields{
			"count":  len(facilities),
			"radius": opts.Geo.Radius,
		})
		for _, f := range facilities {
			discovered = append(discovered, campground.New(f.Name, f.ID))
		}
	}

	return campground.Merge(operator, discovered)
}

// buildNotifier picks the alert transport for this run.
func buildNotifier(cfg config.Config, opts *Options, log *logger.Logger) (notify.Notifier, error) {
	if opts.DryRun {
		return notify.NewDryRunNotifier(), nil
	}
	mailer, err := notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	if err != nil {
		return nil, err
	}
	return notify.NewAlertNotifier(mailer, opts.Email, opts.SMSNumber, opts.Carrier, log)
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
