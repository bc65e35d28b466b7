package config

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/shivam-909/regionbuf/internal/logutil"
	"github.com/shivam-909/regionbuf/internal/workload"
)

// Config is the root config for regionbench.
type Config struct {
	Log      logutil.Config  `yaml:"log"`
	Workload workload.Config `yaml:"workload"`

	Profile     string `yaml:"profile"`
	ProfilePath string `yaml:"profile_path"`
	MetricsAddr string `yaml:"metrics_addr"`
	PrintBook   bool   `yaml:"print_book"`

	ConfigFile  string `yaml:"-"`
	PrintConfig bool   `yaml:"-"`
}

// RegisterFlags registers flag.
func (c *Config) RegisterFlags(f *flag.FlagSet) {
	c.Log.RegisterFlags(f)
	c.Workload.RegisterFlags(f)

	f.StringVar(&c.Profile, "profile", "", "Profile the run. Valid profiles: [cpu, mem, allocs, block, mutex, trace]")
	f.StringVar(&c.ProfilePath, "profile.path", ".", "Directory the profile is written to.")
	f.StringVar(&c.MetricsAddr, "metrics.addr", "", "Serve Prometheus metrics on this address while the run lasts, e.g. :9100. Disabled when empty.")
	f.BoolVar(&c.PrintBook, "print-book", false, "Print the book of the first worker after the run.")
	f.StringVar(&c.ConfigFile, "config.file", "", "YAML file to load. Flags given on the command line take precedence.")
	f.BoolVar(&c.PrintConfig, "print-config", false, "Print the effective config and exit.")
}

// Validate validates the config.
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return errors.Wrap(err, "invalid log config")
	}
	if err := c.Workload.Validate(); err != nil {
		return errors.Wrap(err, "invalid workload config")
	}
	switch c.Profile {
	case "", "cpu", "mem", "allocs", "block", "mutex", "trace":
	default:
		return fmt.Errorf("unrecognized profile %q", c.Profile)
	}
	return nil
}

// Parse builds a Config from flag defaults, then the YAML file named by
// -config.file if any, then the command line flags.
func Parse(name string, args []string) (Config, error) {
	var c Config
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	c.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if c.ConfigFile != "" {
		if err := LoadFile(c.ConfigFile, &c); err != nil {
			return Config{}, err
		}
		// Re-apply the command line over the file.
		if err := fs.Parse(args); err != nil {
			return Config{}, err
		}
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadFile overlays the YAML file at path onto c. Unknown fields are an
// error.
func LoadFile(path string, c *Config) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading config file")
	}
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrapf(err, "parsing config file %s", path)
	}
	return nil
}

// Print writes c as YAML.
func Print(w io.Writer, c *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
