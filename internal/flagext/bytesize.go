package flagext

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// ByteSize is a byte count that reads and prints in human units, e.g.
// "64MiB", "4 KB" or plain "4096". It works both as a flag.Value and as a
// YAML scalar.
type ByteSize uint64

// String implements flag.Value.
func (b ByteSize) String() string {
	return humanize.IBytes(uint64(b))
}

// Set implements flag.Value.
func (b *ByteSize) Set(s string) error {
	v, err := humanize.ParseBytes(s)
	if err != nil {
		return fmt.Errorf("invalid byte size %q: %w", s, err)
	}
	*b = ByteSize(v)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *ByteSize) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: byte size must be a scalar", value.Line)
	}
	return b.Set(value.Value)
}

// MarshalYAML implements yaml.Marshaler. The exact count is written so a
// round trip never loses precision.
func (b ByteSize) MarshalYAML() (interface{}, error) {
	return uint64(b), nil
}
