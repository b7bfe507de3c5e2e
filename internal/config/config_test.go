package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 1200, cfg.MaxDimension)
	assert.Equal(t, 12, cfg.Stride)
	assert.Equal(t, float64(80), cfg.LowThreshold)
	assert.Equal(t, float64(160), cfg.HighThreshold)
	assert.False(t, cfg.Debug)
	assert.True(t, cfg.LogJSON)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_dimension: [not a number"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadClampsOutOfRangeValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wild.yaml")
	content := "max_dimension: -5\nstride: 99\nlow_threshold: 500\nhigh_threshold: -10\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultMaxDimension, cfg.MaxDimension)
	assert.Equal(t, MaxStride, cfg.Stride)
	assert.Equal(t, float64(MaxLowThreshold), cfg.LowThreshold)
	assert.Equal(t, float64(0), cfg.HighThreshold)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	want := &Config{
		MaxDimension:  800,
		Stride:        3,
		LowThreshold:  50,
		HighThreshold: 220,
		Debug:         true,
		LogJSON:       false,
	}
	require.NoError(t, Save(want, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Config
		want Config
	}{
		{
			name: "in range untouched",
			in:   Config{MaxDimension: 640, Stride: 5, LowThreshold: 10, HighThreshold: 20},
			want: Config{MaxDimension: 640, Stride: 5, LowThreshold: 10, HighThreshold: 20},
		},
		{
			name: "stride floor",
			in:   Config{MaxDimension: 640, Stride: 0, LowThreshold: 10, HighThreshold: 20},
			want: Config{MaxDimension: 640, Stride: 1, LowThreshold: 10, HighThreshold: 20},
		},
		{
			name: "threshold ceilings",
			in:   Config{MaxDimension: 640, Stride: 5, LowThreshold: 301, HighThreshold: 401},
			want: Config{MaxDimension: 640, Stride: 5, LowThreshold: 300, HighThreshold: 400},
		},
		{
			name: "zero dimension falls back",
			in:   Config{MaxDimension: 0, Stride: 5, LowThreshold: 10, HighThreshold: 20},
			want: Config{MaxDimension: 1200, Stride: 5, LowThreshold: 10, HighThreshold: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in
			got.Normalize()
			assert.Equal(t, tt.want, got)
		})
	}
}
