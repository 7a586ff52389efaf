package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func stubBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	old := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
	t.Cleanup(func() { readBuildInfo = old })
}

func TestGetLdflagsWin(t *testing.T) {
	old := Version
	Version = "v9.9.9"
	defer func() { Version = old }()
	stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "v1.0.0"}})

	if got := Get(); got.Version != "v9.9.9" {
		t.Errorf("Get().Version = %q, want the ldflags value", got.Version)
	}
	if !strings.Contains(String(), "v9.9.9") {
		t.Errorf("String() = %q, want version", String())
	}
	if !strings.Contains(Template(), "{{.Name}} version v9.9.9") {
		t.Errorf("Template() = %q", Template())
	}
}

func TestGetFallsBackToBuildInfo(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	})

	want := Info{Version: "v0.3.1", Commit: "abc123", Date: "2026-01-02T03:04:05Z"}
	if got := Get(); got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestGetWithoutBuildInfo(t *testing.T) {
	stubBuildInfo(t, nil)
	if got := Get(); got.Version != Version || got.Commit != Commit || got.Date != Date {
		t.Errorf("Get() = %+v", got)
	}
}

func TestGetIgnoresDevelVersion(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if got := Get(); got.Version != "dev" {
		t.Errorf("Get().Version = %q, want dev", got.Version)
	}
}
