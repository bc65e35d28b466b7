package logutil

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFiltersLevels(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "warn", Format: "logfmt"}, &buf)
	require.NoError(t, err)

	level.Debug(logger).Log("msg", "hidden debug")
	level.Info(logger).Log("msg", "hidden info")
	level.Warn(logger).Log("msg", "shown warn")
	level.Error(logger).Log("msg", "shown error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `msg="shown warn"`)
	assert.Contains(t, out, "level=error")
	assert.Contains(t, out, "caller=log_test.go")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)

	level.Debug(logger).Log("msg", "frame done", "worker", 3)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "frame done", line["msg"])
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, float64(3), line["worker"])
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		cfg     Config
		wantErr string
	}{
		"ok":          {cfg: Config{Level: "info", Format: "logfmt"}},
		"bad level":   {cfg: Config{Level: "loud", Format: "logfmt"}, wantErr: `unrecognized log level "loud"`},
		"bad format":  {cfg: Config{Level: "info", Format: "xml"}, wantErr: `unrecognized log format "xml"`},
		"empty level": {cfg: Config{Format: "json"}, wantErr: `unrecognized log level ""`},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}
