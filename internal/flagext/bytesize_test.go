package flagext

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestByteSizeSet(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    ByteSize
		wantErr bool
	}{
		"plain":       {in: "4096", want: 4096},
		"iec":         {in: "64MiB", want: 64 << 20},
		"iec spaced":  {in: "1.5 KiB", want: 1536},
		"si":          {in: "2KB", want: 2000},
		"lower case":  {in: "8kib", want: 8192},
		"garbage":     {in: "lots", wantErr: true},
		"negative":    {in: "-1", wantErr: true},
		"empty input": {in: "", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var b ByteSize
			err := b.Set(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, b)
		})
	}
}

func TestByteSizeString(t *testing.T) {
	assert.Equal(t, "64 MiB", ByteSize(64<<20).String())
	assert.Equal(t, "512 B", ByteSize(512).String())
}

func TestByteSizeFlag(t *testing.T) {
	var b ByteSize = 1024
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&b, "size", "")

	require.NoError(t, fs.Parse([]string{"-size=16MiB"}))
	assert.Equal(t, ByteSize(16<<20), b)
}

func TestByteSizeYAML(t *testing.T) {
	var cfg struct {
		A ByteSize `yaml:"a"`
		B ByteSize `yaml:"b"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: 32MiB\nb: 1000\n"), &cfg))
	assert.Equal(t, ByteSize(32<<20), cfg.A)
	assert.Equal(t, ByteSize(1000), cfg.B)

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Equal(t, "a: 33554432\nb: 1000\n", string(out))

	assert.Error(t, yaml.Unmarshal([]byte("a: [1, 2]\n"), &cfg))
}
