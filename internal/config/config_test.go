package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1<<20, cfg.Arena)
	assert.Equal(t, "ex0", cfg.Entry)
	assert.True(t, cfg.Prelude)
	assert.Equal(t, 2, cfg.Numerals.Radix)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ivm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
arena: 4096
entry: ex4
books: [extra.inet]
log: { level: debug, format: json }
metrics: { addr: "localhost:9090" }
render: { width: 64, height: 32, depth: 11 }
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4096, cfg.Arena)
	assert.Equal(t, "ex4", cfg.Entry)
	assert.Equal(t, []string{"extra.inet"}, cfg.Books)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "localhost:9090", cfg.Metrics.Addr)
	assert.Equal(t, 64, cfg.Render.Width)
	assert.Equal(t, 11, cfg.Render.Depth)
	assert.True(t, cfg.Prelude)
	assert.Equal(t, "none", cfg.Tracing.Exporter)
}

func TestInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"small arena", "arena: 1"},
		{"log level", "log: { level: loud }"},
		{"radix", "numerals: { radix: 3, digits: [A, B], end: E }"},
		{"exporter", "tracing: { exporter: jaeger }"},
		{"render", "render: { width: 0 }"},
		{"syntax", "arena: [1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Parse([]byte(tt.yaml), Default())
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExampleFile(t *testing.T) {
	cfg, err := Load("../../examples/ivm.yaml")
	require.NoError(t, err)
	assert.Equal(t, "main", cfg.Entry)
	assert.Equal(t, []string{"examples/counter.inet"}, cfg.Books)
	assert.Equal(t, 16, cfg.Render.Depth)
	assert.Equal(t, 1024, cfg.TraceSize)
}
