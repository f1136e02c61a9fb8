// Command ls-sunbridge computes solar position through the boundary adapter:
// one-shot or watched text output, JSON export, an HTTP/WebSocket server,
// or a live terminal tracker.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-sunbridge/internal/bridge"
	"github.com/litescript/ls-sunbridge/internal/config"
	"github.com/litescript/ls-sunbridge/internal/logging"
	"github.com/litescript/ls-sunbridge/internal/server"
	"github.com/litescript/ls-sunbridge/internal/spa"
	"github.com/litescript/ls-sunbridge/internal/ui"
	"github.com/litescript/ls-sunbridge/internal/version"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file")
	lat := flag.Float64("lat", math.NaN(), "Observer latitude in degrees (north positive)")
	lon := flag.Float64("lon", math.NaN(), "Observer longitude in degrees (east positive)")
	elev := flag.Float64("elev", math.NaN(), "Observer elevation in meters")
	tz := flag.Float64("tz", math.NaN(), "Timezone offset from UT in hours")
	at := flag.String("at", "", "Timestamp to compute for (RFC 3339), default now")
	pressure := flag.Float64("pressure", 0, "Local pressure in millibars (0 = default 820)")
	temperature := flag.Float64("temp", 0, "Local temperature in Celsius (0 = default 11)")
	refract := flag.Float64("refract", 0, "Refraction at sunrise/sunset in degrees (0 = default 0.5667)")
	slope := flag.Float64("slope", 0, "Surface slope in degrees")
	azmRotation := flag.Float64("azm", 0, "Surface azimuth rotation from south in degrees")
	mode := flag.String("mode", "all", "Outputs to compute: za, za_inc, za_rts, all")
	summaryMode := flag.Bool("summary", false, "Print text summary instead of TUI")
	jsonPath := flag.String("json", "", "Export JSON to file (use - for stdout)")
	watchInterval := flag.Duration("watch", 0, "Repeat output at interval (e.g., 30s)")
	serveMode := flag.Bool("serve", false, "Start the HTTP/WebSocket server")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("ls-sunbridge " + version.Version)
		return
	}

	logger := logging.New(logging.ParseLevel(*logLevel))

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Flag overrides beat the config file.
	if !math.IsNaN(*lat) {
		cfg.Observer.Latitude = *lat
	}
	if !math.IsNaN(*lon) {
		cfg.Observer.Longitude = *lon
	}
	if !math.IsNaN(*elev) {
		cfg.Observer.Elevation = *elev
	}
	if !math.IsNaN(*tz) {
		cfg.Observer.Timezone = *tz
	}
	if *pressure != 0 {
		cfg.Atmosphere.Pressure = *pressure
	}
	if *temperature != 0 {
		cfg.Atmosphere.Temperature = *temperature
	}
	if *refract != 0 {
		cfg.Atmosphere.Refraction = *refract
	}
	if *slope != 0 {
		cfg.Surface.Slope = *slope
	}
	if *azmRotation != 0 {
		cfg.Surface.AzmRotation = *azmRotation
	}

	adapter := bridge.New()

	if *serveMode {
		if err := server.New(cfg, adapter, logger).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	when := time.Now()
	if *at != "" {
		parsed, err := time.Parse(time.RFC3339, *at)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -at timestamp: %v\n", err)
			os.Exit(1)
		}
		when = parsed
	}

	function := spa.ParseFunction(*mode)

	headless := *summaryMode || *jsonPath != "" || *watchInterval != 0
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	if !headless && isTTY && *at == "" {
		p := tea.NewProgram(ui.New(cfg, adapter), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runHeadless(cfg, adapter, when, function, *jsonPath, *watchInterval, logger)
}

// runHeadless prints one computation, or repeats at the watch interval.
func runHeadless(cfg config.Config, adapter *bridge.Adapter, when time.Time, function int, jsonPath string, watch time.Duration, logger *logging.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	outputOnce := func(at time.Time) error {
		r := computeAt(cfg, adapter, at, function)
		if r == nil {
			return fmt.Errorf("result allocation failed")
		}
		defer adapter.Release(r)

		if jsonPath != "" {
			return writeExport(jsonPath, cfg, at, r)
		}
		writeSummary(os.Stdout, cfg, at, r)
		return nil
	}

	if watch == 0 {
		if err := outputOnce(when); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := outputOnce(time.Now()); err != nil {
		logger.Error("%v", err)
	}

	ticker := time.NewTicker(watch)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fmt.Println()
			if err := outputOnce(time.Now()); err != nil {
				logger.Error("%v", err)
			}
		}
	}
}

// computeAt pushes one instant through the flat boundary for the configured
// observer. The caller releases the record.
func computeAt(cfg config.Config, adapter *bridge.Adapter, at time.Time, function int) *bridge.Result {
	obs := cfg.Observer
	at = at.In(time.FixedZone("local", int(obs.Timezone*3600)))

	return adapter.Compute(
		at.Year(), int(at.Month()), at.Day(), at.Hour(), at.Minute(),
		float64(at.Second())+float64(at.Nanosecond())/1e9,
		obs.Timezone,
		obs.Latitude, obs.Longitude, obs.Elevation,
		cfg.Atmosphere.Pressure, cfg.Atmosphere.Temperature,
		0, 0,
		cfg.Surface.Slope, cfg.Surface.AzmRotation,
		cfg.Atmosphere.Refraction,
		function,
	)
}

// writeSummary prints a plain-text position table.
func writeSummary(w io.Writer, cfg config.Config, at time.Time, r *bridge.Result) {
	obs := cfg.Observer
	fmt.Fprintf(w, "Observer  %.4f°, %.4f°  %.0f m  UTC%+.1f\n",
		obs.Latitude, obs.Longitude, obs.Elevation, obs.Timezone)
	fmt.Fprintf(w, "Time      %s\n", at.Format("2006-01-02 15:04:05 -0700"))

	if r.Code != 0 {
		fmt.Fprintf(w, "Calculation failed (code %d)\n", r.Code)
		return
	}

	fmt.Fprintf(w, "Zenith    %9.4f°      Azimuth   %9.4f°\n", r.Zenith, r.Azimuth)
	fmt.Fprintf(w, "Incidence %9.4f°      EOT       %+8.3f min\n", r.Incidence, r.EquationOfTime)
	fmt.Fprintf(w, "Sunrise   %s    Noon %s (alt %.2f°)    Sunset %s\n",
		ui.FormatHours(r.Sunrise), ui.FormatHours(r.SunTransit), r.TransitAltitude,
		ui.FormatHours(r.Sunset))
}

// exportRecord is the JSON snapshot shape.
type exportRecord struct {
	Timestamp       time.Time `json:"timestamp"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	Elevation       float64   `json:"elevation"`
	Timezone        float64   `json:"timezone"`
	Zenith          float64   `json:"zenith"`
	AzimuthAstro    float64   `json:"azimuth_astro"`
	Azimuth         float64   `json:"azimuth"`
	Incidence       float64   `json:"incidence"`
	Sunrise         float64   `json:"sunrise"`
	Sunset          float64   `json:"sunset"`
	SunTransit      float64   `json:"sun_transit"`
	TransitAltitude float64   `json:"transit_altitude"`
	EquationOfTime  float64   `json:"equation_of_time"`
	Code            int32     `json:"code"`
}

// writeExport writes the JSON snapshot to a file, or stdout for "-".
func writeExport(path string, cfg config.Config, at time.Time, r *bridge.Result) error {
	record := exportRecord{
		Timestamp:       at,
		Latitude:        cfg.Observer.Latitude,
		Longitude:       cfg.Observer.Longitude,
		Elevation:       cfg.Observer.Elevation,
		Timezone:        cfg.Observer.Timezone,
		Zenith:          r.Zenith,
		AzimuthAstro:    r.AzimuthAstro,
		Azimuth:         r.Azimuth,
		Incidence:       r.Incidence,
		Sunrise:         r.Sunrise,
		Sunset:          r.Sunset,
		SunTransit:      r.SunTransit,
		TransitAltitude: r.TransitAltitude,
		EquationOfTime:  r.EquationOfTime,
		Code:            r.Code,
	}

	out := os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(record)
}
