package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/colorfulnotion/dreamstats/statserrors"
	"github.com/colorfulnotion/dreamstats/suites"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := Defaults()
	assert.Equal(t, "AVG_IPC", c.Pivot)
	assert.Equal(t, "best", c.Baseline)
	assert.Equal(t, suites.DefaultOrder(), c.SuiteOrder)
	assert.Equal(t, []string{"blender"}, c.Extract.Exclude)
	assert.True(t, c.Slowdown())
	assert.Contains(t, c.String(), `"pivot": "AVG_IPC"`)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"no dirs", func(c *Config) { c.Dirs = nil }, statserrors.ErrWNoInput},
		{"mean and gmean", func(c *Config) { c.Mean, c.Geomean = true, true }, statserrors.ErrCConflictingSummary},
		{"negative threshold", func(c *Config) { c.Extract.APKIThreshold = -1 }, statserrors.ErrCInvalidThreshold},
		{"unknown suite", func(c *Config) { c.Suite = "parsec" }, statserrors.ErrCUnknownSuite},
		{"unknown suite order", func(c *Config) { c.SuiteOrder = []string{"gap6", "npb"} }, statserrors.ErrCUnknownSuite},
		{"ok", func(c *Config) {}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Defaults()
			c.Dirs = []string{"results"}
			tc.mutate(&c)
			err := c.Validate()
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"DREAMSTATS_PIVOT":          "AVG_CORE_CYCLES",
		"DREAMSTATS_SUITE_ORDER":    "mix, gap6",
		"DREAMSTATS_APKI_THRESHOLD": "2.5",
		"DREAMSTATS_LOG_JSON":       "true",
		"DREAMSTATS_EXCLUDE":        "blender,povray",
	}
	c := Defaults()
	require.NoError(t, c.applyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}))
	assert.Equal(t, "AVG_CORE_CYCLES", c.Pivot)
	assert.Equal(t, []string{"mix", "gap6"}, c.SuiteOrder)
	assert.Equal(t, 2.5, c.Extract.APKIThreshold)
	assert.True(t, c.LogJSON)
	assert.Equal(t, []string{"blender", "povray"}, c.Extract.Exclude)

	err := c.applyEnv(func(k string) (string, bool) {
		if k == "DREAMSTATS_LOG_JSON" {
			return "maybe", true
		}
		return "", false
	})
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.env")
	require.NoError(t, os.WriteFile(path, []byte("DREAMSTATS_BASELINE=mop4_base\nDREAMSTATS_MPKI_THRESHOLD=3\n"), 0o644))
	t.Setenv("DREAMSTATS_BASELINE", "")
	t.Setenv("DREAMSTATS_MPKI_THRESHOLD", "")
	os.Unsetenv("DREAMSTATS_BASELINE")
	os.Unsetenv("DREAMSTATS_MPKI_THRESHOLD")

	c := Defaults()
	require.NoError(t, LoadEnv(&c, path))
	assert.Equal(t, "mop4_base", c.Baseline)
	assert.Equal(t, 3.0, c.Extract.MPKIThreshold)

	assert.Error(t, LoadEnv(&c, filepath.Join(t.TempDir(), "missing.env")), "an explicit file must exist")
}

func TestStringIsJSON(t *testing.T) {
	c := Defaults()
	c.Dirs = []string{"/runs"}
	c.Suite = suites.MIX

	var back Config
	require.NoError(t, json.Unmarshal([]byte(c.String()), &back))
	assert.Equal(t, c.Dirs, back.Dirs)
	assert.Equal(t, c.Suite, back.Suite)
	assert.Equal(t, c.Extract, back.Extract)
}
