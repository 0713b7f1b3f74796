package app

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"lightning/internal/surface"
)

// Config represents the command-line parameters shared by both hosts.
type Config struct {
	Sim     string
	SimArgs string
	Seed    int64
	TPS     int
	Charge  int
	Cadence time.Duration

	LogLevel string
	LogFile  string
	Sound    bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:      "discharge",
		Seed:     42,
		TPS:      30,
		Cadence:  surface.DefaultCadence,
		LogLevel: "info",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.StringVar(&c.SimArgs, "sim-args", c.SimArgs, "comma separated key=value simulation options, e.g. w=96,h=96")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.IntVar(&c.Charge, "charge", c.Charge, "initial charge type (-1 disables placement)")
	fs.DurationVar(&c.Cadence, "cadence", c.Cadence, "sleep between two blits of the render loop")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&c.LogFile, "log", c.LogFile, "write logs to this file instead of the default sink")
	fs.BoolVar(&c.Sound, "sound", c.Sound, "play a tone when a charge is placed (terminal host)")
}

// SimOptions parses SimArgs into the map simulation factories accept.
// Malformed pairs are skipped.
func (c *Config) SimOptions() map[string]string {
	opts := map[string]string{}
	for _, pair := range strings.Split(c.SimArgs, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || key == "" {
			continue
		}
		opts[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return opts
}

// Logger builds a text logger writing to LogFile, or to fallback when no
// file is configured. The returned close function is never nil.
func (c *Config) Logger(fallback io.Writer) (*slog.Logger, func() error, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	w, closeFn := fallback, func() error { return nil }
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closeFn = f, f.Close
	}
	if w == nil {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}
