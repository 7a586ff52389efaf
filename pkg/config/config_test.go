package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/orbit/pkg/errors"
	"github.com/matzehuels/orbit/pkg/layout/circular"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestDecodePartial(t *testing.T) {
	src := `
[layout]
inner_radius = 200.0
clockwise = false

[cache]
uri = "redis://localhost:6379/0"

[log]
level = "debug"
`
	cfg, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want := circular.DefaultParams()
	want.InnerRadius = 200
	want.Clockwise = false
	if cfg.Layout != want {
		t.Errorf("Layout = %+v, want %+v", cfg.Layout, want)
	}
	if cfg.Cache.URI != "redis://localhost:6379/0" {
		t.Errorf("Cache.URI = %q", cfg.Cache.URI)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want default %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.Code
	}{
		{"Syntax", "[layout\ninner_radius = 1", errors.ErrCodeInvalidFormat},
		{"UnknownKey", "[layout]\ninner_raduis = 10.0", errors.ErrCodeInvalidFormat},
		{"WrongType", "[layout]\ninner_radius = \"big\"", errors.ErrCodeInvalidFormat},
		{"InvalidParams", "[layout]\ninner_radius = -1.0", errors.ErrCodeInvalidParams},
		{"NaNSpacingRatio", "[layout]\nspacing_ratio = nan", errors.ErrCodeInvalidParams},
		{"InfScaleFactor", "[layout]\nnode_size_scale_factor = inf", errors.ErrCodeInvalidParams},
		{"NegInfNodeSpacing", "[layout]\nnode_spacing = -inf", errors.ErrCodeInvalidParams},
		{"ZeroSpacingRatio", "[layout]\nspacing_ratio = 0.0", errors.ErrCodeInvalidParams},
		{"BadLevel", "[log]\nlevel = \"loud\"", errors.ErrCodeInvalidInput},
		{"EmptyAddr", "[server]\naddr = \"\"", errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestWriteThenDecode(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Default()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "inner_radius") {
		t.Errorf("written config lacks layout keys:\n%s", buf.String())
	}

	cfg, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cfg != Default() {
		t.Errorf("decoded %+v, want %+v", cfg, Default())
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", FileName)

	if _, err := Load(path); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) = %v, want FILE_NOT_FOUND", err)
	}
	cfg, err := LoadOrDefault(path)
	if err != nil || cfg != Default() {
		t.Errorf("LoadOrDefault(missing) = %+v, %v", cfg, err)
	}

	custom := Default()
	custom.Server.Addr = "127.0.0.1:9000"
	if err := WriteFile(path, custom); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}

	if err := os.WriteFile(path, []byte("[log]\nlevel = 3"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrDefault(path); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("LoadOrDefault(bad) = %v, want INVALID_FORMAT", err)
	}
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/custom-config", AppName, FileName); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}

	dir, err := CacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/custom-cache", AppName); dir != want {
		t.Errorf("CacheDir() = %q, want %q", dir, want)
	}
}

func TestPathsDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_CACHE_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	dir, err := Dir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".config", AppName); dir != want {
		t.Errorf("Dir() = %q, want %q", dir, want)
	}

	cache, err := CacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".cache", AppName); cache != want {
		t.Errorf("CacheDir() = %q, want %q", cache, want)
	}
}
