package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/profile"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shivam-909/regionbuf/internal/config"
	"github.com/shivam-909/regionbuf/internal/logutil"
	"github.com/shivam-909/regionbuf/internal/orderbook"
	"github.com/shivam-909/regionbuf/internal/workload"
)

func main() {
	cfg, done, code := loadConfig(os.Args, os.Stdout, os.Stderr)
	if done {
		os.Exit(code)
	}

	logger, err := logutil.New(cfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	logutil.CheckFatal(logger, "running regionbench", run(cfg, logger, os.Stdout))
}

// loadConfig parses args and handles everything that ends the process
// before a run: -h, bad flags and -print-config. When done is true the
// caller exits with code.
func loadConfig(args []string, stdout, stderr io.Writer) (cfg config.Config, done bool, code int) {
	cfg, err := config.Parse(args[0], args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return cfg, true, 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "failed parsing config: %v\n", err)
		return cfg, true, 1
	}

	if cfg.PrintConfig {
		if err := config.Print(stdout, &cfg); err != nil {
			fmt.Fprintf(stderr, "failed to print config: %v\n", err)
			return cfg, true, 1
		}
		return cfg, true, 0
	}
	return cfg, false, 0
}

func run(cfg config.Config, logger log.Logger, out io.Writer) error {
	if opt := profileMode(cfg.Profile); opt != nil {
		defer profile.Start(opt, profile.ProfilePath(cfg.ProfilePath), profile.NoShutdownHook, profile.Quiet).Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, reg, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				level.Warn(logger).Log("msg", "metrics server shutdown", "err", err)
			}
		}()
	}

	runner, err := workload.New(cfg.Workload, logger, reg)
	if err != nil {
		return err
	}
	defer func() {
		if err := runner.Close(); err != nil {
			level.Warn(logger).Log("msg", "releasing region", "err", err)
		}
	}()

	level.Info(logger).Log(
		"msg", "starting run",
		"mode", cfg.Workload.Mode,
		"workers", cfg.Workload.Workers,
		"frames", cfg.Workload.Frames,
		"frame_size", cfg.Workload.FrameSize,
	)

	res, err := runner.Run(ctx)
	if errors.Is(err, context.Canceled) {
		level.Warn(logger).Log("msg", "run interrupted", "frames", res.Frames)
		err = nil
	}
	if err != nil {
		return err
	}

	writeResult(out, cfg.Workload.Mode, res)
	if cfg.PrintBook {
		orderbook.Print(out, runner.Orders(0))
	}
	return nil
}

func profileMode(name string) func(*profile.Profile) {
	switch name {
	case "cpu":
		return profile.CPUProfile
	case "mem":
		return profile.MemProfile
	case "allocs":
		return profile.MemProfileAllocs
	case "block":
		return profile.BlockProfile
	case "mutex":
		return profile.MutexProfile
	case "trace":
		return profile.TraceProfile
	}
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry, logger log.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		level.Info(logger).Log("msg", "serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			level.Error(logger).Log("msg", "metrics server failed", "err", err)
		}
	}()
	return srv
}

func writeResult(w io.Writer, mode string, res workload.Result) {
	var average time.Duration
	if res.Ops > 0 {
		average = res.Duration / time.Duration(res.Ops)
	}
	fmt.Fprintf(w, "%s || %d FRAMES || %s OPS || TOTAL: %v || AVERAGE: %v\n",
		mode, res.Frames, humanize.Comma(int64(res.Ops)), res.Duration, average)
	fmt.Fprintf(w, "exhaustions: %d, peak region use: %s, checksum: %d\n",
		res.Exhaustions, humanize.IBytes(res.PeakBytes), res.Checksum)
}
