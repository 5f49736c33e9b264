package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/afenda/taskgraph/pkg/errors"
	"github.com/afenda/taskgraph/pkg/layout"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taskgraph.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoad_ExplicitPath(t *testing.T) {
	path := writeConfig(t, `
[layout]
node_width = 200
v_gap = 100

[server]
addr = ":9090"

[cache]
backend = "redis"
redis_addr = "localhost:6379"

[mongo]
uri = "mongodb://localhost:27017"
database = "boards"
collection = "tasks"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("Cache = %+v, want redis backend", cfg.Cache)
	}
	if cfg.Mongo.Database != "boards" {
		t.Errorf("Mongo.Database = %q, want boards", cfg.Mongo.Database)
	}

	geo := cfg.Layout.Geometry()
	want := layout.Config{NodeWidth: 200, NodeHeight: 80, HGap: 40, VGap: 100}
	if geo != want {
		t.Errorf("Geometry() = %+v, want %+v", geo, want)
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load error = %v, want %v", err, errors.ErrCodeFileNotFound)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := writeConfig(t, `[layout` + "\n")

	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load error = %v, want %v", err, errors.ErrCodeInvalidConfig)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("Cache.Backend = %q, want file", cfg.Cache.Backend)
	}
}

func TestGeometry_ZeroFieldsKeepDefaults(t *testing.T) {
	geo := LayoutConfig{}.Geometry()
	if geo != layout.DefaultConfig() {
		t.Errorf("Geometry() = %+v, want engine defaults", geo)
	}
}
