package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"monthcal/internal/agenda"
	"monthcal/internal/calendar"
	"monthcal/internal/config"
	"monthcal/internal/ics"
	appLog "monthcal/internal/log"
	"monthcal/internal/model"
)

// flagConfig holds CLI flag values; non-zero values override the config file.
type flagConfig struct {
	configPath string
	logLevel   string
	year       int
	yearSet    bool
	month      int
	once       bool
}

func main() {
	// A missing .env is normal.
	if err := godotenv.Load(); err != nil {
		appLog.Debug("no .env loaded", "reason", err.Error())
	}

	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}
	applyFlags(conf, flags)
	if err := conf.Validate(); err != nil {
		appLog.Error("invalid config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	level, _ := appLog.ParseLevel(conf.LogLevel)
	appLog.SetLevel(level)

	appLog.Info("effective config",
		"year", conf.CalendarYear(),
		"month", conf.Month,
		"refresh", conf.Refresh,
		"event_count", len(conf.Events),
		"ics_count", len(conf.ICS),
		"once", flags.once,
	)

	cal, err := calendar.New(conf.CalendarYear(), conf.Month)
	if err != nil {
		appLog.Error("failed to create calendar", err, "year", conf.CalendarYear(), "month", conf.Month)
		os.Exit(1)
	}

	// From here on the reporter owns the calendar.
	reporter, err := agenda.NewReporter(cal, os.Stdout, conf.Refresh)
	if err != nil {
		appLog.Error("failed to create reporter", err)
		os.Exit(1)
	}

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	seedEvents(reporter, conf.Events)
	importSources(ctx, reporter, conf.ICS)
	if err := reporter.Report(); err != nil {
		appLog.Error("failed to write agenda", err)
		os.Exit(1)
	}
	if flags.once {
		return
	}

	reporter.Run(ctx)
	appLog.Info("monthcal exiting")
}

// applyFlags overrides config values with the flags that were given.
func applyFlags(conf *config.Config, flags flagConfig) {
	if flags.yearSet {
		year := flags.year
		conf.Year = &year
	}
	if flags.month != 0 {
		conf.Month = flags.month
	}
	if flags.logLevel != "" {
		conf.LogLevel = flags.logLevel
	}
}

// seedEvents adds the configured events and completes the ones flagged as
// completed. Individual failures are logged and skipped.
func seedEvents(r *agenda.Reporter, events []config.EventConfig) {
	r.Do(func(cal *calendar.MonthCalendar) error {
		for _, ec := range events {
			seedEvent(cal, ec)
		}
		return nil
	})
}

func seedEvent(cal *calendar.MonthCalendar, ec config.EventConfig) {
	added, err := cal.AddEvent(ec.Day, ec.Description, ec.Hour, ec.Minute)
	if err != nil {
		appLog.Error("seed event rejected", err, "day", ec.Day, "description", ec.Description)
		return
	}
	if !added {
		appLog.Warn("seed event not added (invalid or duplicate)",
			"day", ec.Day, "description", ec.Description, "time", model.FormatTime(ec.Hour, ec.Minute))
		return
	}
	if !ec.Completed {
		return
	}

	ev, err := model.NewEvent(ec.Description, ec.Day, ec.Hour, ec.Minute)
	if err == nil {
		err = cal.MarkEventComplete(ev)
	}
	if err != nil {
		appLog.Error("seed event completion failed", err, "day", ec.Day, "description", ec.Description)
	}
}

// importSources fetches and parses every source outside the reporter's lock
// and only holds it while adding the parsed events.
func importSources(ctx context.Context, r *agenda.Reporter, sources []config.ICSConfig) {
	for _, sc := range sources {
		src := ics.Source{ID: sc.ID, Path: sc.Path}

		body, err := ics.Load(ctx, src)
		if err != nil {
			appLog.Error("ics load failed", err, "id", src.ID)
			continue
		}
		events, err := ics.ParseICS(src, body)
		if err != nil {
			continue
		}
		r.Do(func(cal *calendar.MonthCalendar) error {
			ics.Import(cal, events)
			return nil
		})
	}
}

func parseFlags() flagConfig {
	var cfg flagConfig

	defaultConfig := os.Getenv("MONTHCAL_CONFIG")
	if defaultConfig == "" {
		defaultConfig = "./monthcal.yaml"
	}

	flag.StringVar(&cfg.configPath, "config", defaultConfig, "Path to config file (env MONTHCAL_CONFIG)")
	flag.StringVar(&cfg.logLevel, "log-level", os.Getenv("MONTHCAL_LOG_LEVEL"), "Log level: debug, info, warn, error (env MONTHCAL_LOG_LEVEL)")
	flag.IntVar(&cfg.year, "year", 0, "Calendar year (overrides config if set)")
	flag.IntVar(&cfg.month, "month", 0, "Calendar month 1-12 (overrides config if set)")
	flag.BoolVar(&cfg.once, "once", false, "Print the agenda once and exit")

	flag.Parse()

	// Year 0 is a valid year, so presence decides the override.
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "year" {
			cfg.yearSet = true
		}
	})

	return cfg
}
