package logutil

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Config selects the log level and output format.
type Config struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// RegisterFlags adds the flags required to config this to the given FlagSet.
func (cfg *Config) RegisterFlags(f *flag.FlagSet) {
	f.StringVar(&cfg.Level, "log.level", "info", "Only log messages with the given severity or above. Valid levels: [debug, info, warn, error]")
	f.StringVar(&cfg.Format, "log.format", "logfmt", "Output log messages in the given format. Valid formats: [logfmt, json]")
}

func (cfg *Config) Validate() error {
	if _, err := allow(cfg.Level); err != nil {
		return err
	}
	switch cfg.Format {
	case "logfmt", "json":
		return nil
	}
	return fmt.Errorf("unrecognized log format %q", cfg.Format)
}

func allow(lvl string) (level.Option, error) {
	switch lvl {
	case "debug":
		return level.AllowDebug(), nil
	case "info":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	}
	return nil, fmt.Errorf("unrecognized log level %q", lvl)
}

// New returns a leveled logger writing to w.
func New(cfg Config, w io.Writer) (log.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opt, _ := allow(cfg.Level)

	var logger log.Logger
	if cfg.Format == "json" {
		logger = log.NewJSONLogger(log.NewSyncWriter(w))
	} else {
		logger = log.NewLogfmtLogger(log.NewSyncWriter(w))
	}
	logger = level.NewFilter(logger, opt)
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller), nil
}

// CheckFatal logs err and exits with status 1 if err is non-nil.
func CheckFatal(logger log.Logger, location string, err error) {
	if err == nil {
		return
	}
	logger = level.Error(logger)
	if location != "" {
		logger = log.With(logger, "msg", "error "+location)
	}
	// %+v keeps the stack trace of errors from github.com/pkg/errors.
	logger.Log("err", fmt.Sprintf("%+v", err))
	os.Exit(1)
}
