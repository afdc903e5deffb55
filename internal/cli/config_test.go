package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gi-bielefeld/carp/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadConfigMissing(t *testing.T) {
	cfg, err := readConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("missing file should yield defaults, got %+v", cfg)
	}
}

func TestReadConfig(t *testing.T) {
	path := writeFile(t, "config.toml", `
[analysis]
core = false
workers = 8

[cache]
backend = "redis"
redis_url = "redis://cache:6379/1"
`)
	cfg, err := readConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Analysis.Core || cfg.Analysis.Workers != 8 {
		t.Errorf("analysis = %+v", cfg.Analysis)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisURL != "redis://cache:6379/1" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != DefaultConfig().Server.Addr {
		t.Errorf("unset server.addr should keep its default, got %q", cfg.Server.Addr)
	}
}

func TestReadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "[analysis]\ncolour = true\n"},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n"},
		{"redis without url", "[cache]\nbackend = \"redis\"\n"},
		{"zero workers", "[analysis]\nworkers = 0\n"},
		{"negative scan depth", "[analysis]\nscan_depth = -1\n"},
		{"syntax", "[analysis\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readConfig(writeFile(t, "config.toml", tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestWriteConfigRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := writeConfig(&buf, DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	cfg, err := readConfig(writeFile(t, "config.toml", buf.String()))
	if err != nil {
		t.Fatalf("re-reading written config: %v\n%s", err, buf.String())
	}
	if cfg != DefaultConfig() {
		t.Errorf("round trip = %+v", cfg)
	}
}
