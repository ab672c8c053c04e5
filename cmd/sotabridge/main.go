// Command sotabridge serves the Sota robot control library over gRPC.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/MrWong99/sotabridge/internal/app"
	"github.com/MrWong99/sotabridge/internal/config"
	"github.com/MrWong99/sotabridge/internal/device"
	"github.com/MrWong99/sotabridge/internal/device/sim"
	"github.com/MrWong99/sotabridge/internal/observe"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	port := flag.Int("port", 0, "gRPC port; overrides server.listen_addr when set")
	flag.Parse()

	// ── Load configuration ────────────────────────────────────────────────────
	cfg, fromFile, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sotabridge: %v\n", err)
		return 1
	}
	if *port != 0 {
		if *port < 0 || *port > 65535 {
			fmt.Fprintf(os.Stderr, "sotabridge: -port %d out of range\n", *port)
			return 1
		}
		cfg.Server.ListenAddr = overridePort(cfg.Server.ListenAddr, *port)
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	level := new(slog.LevelVar)
	level.Set(slogLevel(cfg.Server.LogLevel))
	slog.SetDefault(newLogger(level))

	slog.Info("sotabridge starting",
		"version", version,
		"config", *configPath,
		"config_loaded", fromFile,
		"listen_addr", cfg.Server.ListenAddr,
		"log_level", cfg.Server.LogLevel,
	)

	// ── Telemetry ─────────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName:    "sotabridge",
		ServiceVersion: version,
	})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			slog.Warn("telemetry shutdown error", "err", err)
		}
	}()

	// ── Driver registry ───────────────────────────────────────────────────────
	reg := config.NewRegistry()
	registerBuiltinDrivers(reg)

	// ── Application ───────────────────────────────────────────────────────────
	printStartupSummary(cfg, reg)

	application, err := app.New(ctx, cfg, app.WithRegistry(reg))
	if err != nil {
		slog.Error("failed to initialise application", "err", err)
		return 1
	}

	// ── Hot reload ────────────────────────────────────────────────────────────
	if fromFile {
		w, err := config.NewWatcher(*configPath, func(_, _ *config.Config, d config.ConfigDiff) {
			if d.LogLevelChanged {
				level.Set(slogLevel(d.NewLogLevel))
				slog.Info("log level updated", "level", d.NewLogLevel)
			}
			application.Reload(d)
		})
		if err != nil {
			slog.Warn("config hot reload disabled", "err", err)
		} else {
			defer w.Stop()
		}
	}

	slog.Info("server ready, press Ctrl+C to shut down", "addr", application.Addr().String())

	code := 0
	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run error", "err", err)
		code = 1
	}

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.ShutdownTimeout(cfg))
	defer cancel()

	slog.Info("shutting down")
	if err := application.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "err", err)
		return 1
	}
	slog.Info("goodbye")
	return code
}

// loadConfig reads path, falling back to the defaults when the file does not
// exist. The boolean reports whether the file was read.
func loadConfig(path string) (*config.Config, bool, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return config.Default(), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

// overridePort replaces the port of addr, keeping its host.
func overridePort(addr string, port int) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = ""
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// ── Driver wiring ─────────────────────────────────────────────────────────────

// registerBuiltinDrivers registers the drivers that ship with the bridge.
func registerBuiltinDrivers(reg *config.Registry) {
	reg.RegisterDevice("sim", newSimDriver)
}

// newSimDriver builds the simulated robot from device.options:
// battery_millivolts, speech_rate, without_set_lang and without_localize.
func newSimDriver(c config.DeviceConfig) (device.Driver, error) {
	var (
		opts sim.Options
		errs []error
		err  error
	)
	opts.BatteryMillivolts, err = c.OptInt("battery_millivolts")
	errs = append(errs, err)
	opts.SpeechRate, err = c.OptDuration("speech_rate")
	errs = append(errs, err)
	opts.WithoutSetLang, err = c.OptBool("without_set_lang")
	errs = append(errs, err)
	opts.WithoutLocalize, err = c.OptBool("without_localize")
	errs = append(errs, err)
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return sim.New(opts).Driver(), nil
}

// ── Startup summary ───────────────────────────────────────────────────────────

func printStartupSummary(cfg *config.Config, reg *config.Registry) {
	fmt.Println("╔═══════════════════════════════════════╗")
	fmt.Println("║       sotabridge startup summary      ║")
	fmt.Println("╠═══════════════════════════════════════╣")
	printRow("Version", version)
	printRow("Driver", cfg.Device.Driver)
	printRow("Known drivers", strings.Join(reg.Drivers(), ","))
	printRow("gRPC addr", cfg.Server.ListenAddr)
	printRow("Admin addr", optString(cfg.Server.AdminAddr, "(disabled)"))
	printRow("Await motion", strconv.FormatBool(cfg.Motion.AwaitCompletion))
	printRow("Language", optString(cfg.Speech.Language, "(device default)"))
	fmt.Println("╚═══════════════════════════════════════╝")
}

func printRow(key, value string) {
	if len(value) > 19 {
		value = value[:16] + "..."
	}
	fmt.Printf("║  %-14s  : %-19s ║\n", key, value)
}

// ── Logger ─────────────────────────────────────────────────────────────────────

func newLogger(level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func slogLevel(level config.LogLevel) slog.Level {
	switch level {
	case config.LogDebug:
		return slog.LevelDebug
	case config.LogWarn:
		return slog.LevelWarn
	case config.LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// optString returns s, or fallback when s is empty.
func optString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
