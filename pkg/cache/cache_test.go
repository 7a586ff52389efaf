package cache

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	orbiterrors "github.com/matzehuels/orbit/pkg/errors"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always return a nil miss")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if err := Clear(ctx, c); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Clear(NullCache) = %v, want ErrUnsupported", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "layout:abc"); hit || err != nil {
		t.Fatalf("Get on empty cache = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "layout:abc", []byte(`{"a":1}`), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "layout:abc")
	if err != nil || !hit || string(data) != `{"a":1}` {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "layout:abc"); hit {
		t.Error("entry still present after Delete")
	}
	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry reported as hit")
	}

	if err := c.Set(ctx, "forever", []byte("v"), TTLNone); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl should not expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.path("k"), []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry = hit %v, err %v; want silent miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, []byte(k), 0)
	}
	if err := Clear(ctx, c); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if _, hit, _ := c.Get(ctx, k); hit {
			t.Errorf("%s survived Clear", k)
		}
	}
	entries, _ := os.ReadDir(c.Dir())
	if len(entries) != 0 {
		t.Errorf("cache dir still has %d entries", len(entries))
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func mustKey(t *testing.T, k Keyer, graphHash string, opts LayoutKeyOpts) string {
	t.Helper()
	key, err := k.LayoutKey(graphHash, opts)
	if err != nil {
		t.Fatalf("LayoutKey(%q) error = %v", graphHash, err)
	}
	return key
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	type params struct{ InnerRadius float64 }

	base := LayoutKeyOpts{Mode: "full", CenterX: 400, CenterY: 300, Params: params{150}}
	key := mustKey(t, k, "hash123", base)
	if !strings.HasPrefix(key, "layout:") || len(key) != len("layout:")+64 {
		t.Errorf("LayoutKey format unexpected: %s", key)
	}
	if key != mustKey(t, k, "hash123", base) {
		t.Error("LayoutKey should be deterministic")
	}

	variants := []LayoutKeyOpts{
		{Mode: "focus", CenterX: 400, CenterY: 300, Params: params{150}},
		{Mode: "full", CenterX: 0, CenterY: 300, Params: params{150}},
		{Mode: "full", CenterX: 400, CenterY: 300, Params: params{200}},
		{Mode: "full", CenterX: 400, CenterY: 300, Params: params{150}, PositionsHash: "p"},
	}
	for i, v := range variants {
		if mustKey(t, k, "hash123", v) == key {
			t.Errorf("variant %d should change the key", i)
		}
	}
	if mustKey(t, k, "other", base) == key {
		t.Error("graph hash should change the key")
	}
}

func TestDefaultKeyerRejectsUnencodableOptions(t *testing.T) {
	type params struct{ SpacingRatio float64 }
	k := NewDefaultKeyer()

	tests := []struct {
		name string
		opts LayoutKeyOpts
	}{
		{"nan param", LayoutKeyOpts{Mode: "full", Params: params{math.NaN()}}},
		{"inf param", LayoutKeyOpts{Mode: "full", Params: params{math.Inf(1)}}},
		{"nan center", LayoutKeyOpts{Mode: "full", CenterX: math.NaN()}},
		{"channel", LayoutKeyOpts{Mode: "full", Params: make(chan int)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := k.LayoutKey("g1", tt.opts)
			if err == nil {
				t.Fatalf("LayoutKey() = %q, want an error", key)
			}
			if !orbiterrors.Is(err, orbiterrors.ErrCodeInvalidInput) {
				t.Errorf("error code = %v, want %v", orbiterrors.GetCode(err), orbiterrors.ErrCodeInvalidInput)
			}
			if _, err := NewScopedKeyer(k, "p:").LayoutKey("g1", tt.opts); err == nil {
				t.Error("ScopedKeyer should pass the error through")
			}
		})
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "tenant:1:")
	key := mustKey(t, scoped, "h", LayoutKeyOpts{Mode: "full"})
	if !strings.HasPrefix(key, "tenant:1:layout:") {
		t.Errorf("ScopedKeyer LayoutKey should be prefixed: %s", key)
	}

	if got := mustKey(t, NewScopedKeyer(nil, "p:"), "h", LayoutKeyOpts{}); !strings.HasPrefix(got, "p:layout:") {
		t.Errorf("Unexpected key with nil inner: %s", got)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(ErrUnavailable)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != ErrUnavailable.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Error("wrapped error should unwrap to the original")
	}
	if IsRetryable(ErrUnsupported) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	defer func(d time.Duration) { retryDelay = d }(retryDelay)
	retryDelay = time.Millisecond
	ctx := context.Background()

	calls := 0
	if err := RetryWithBackoff(ctx, func() error { calls++; return nil }); err != nil || calls != 1 {
		t.Errorf("success: err=%v calls=%d", err, calls)
	}

	calls = 0
	err := RetryWithBackoff(ctx, func() error { calls++; return ErrUnsupported })
	if err != ErrUnsupported || calls != 1 {
		t.Errorf("non-retryable: err=%v calls=%d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrUnavailable)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retry then success: err=%v calls=%d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error { calls++; return Retryable(ErrUnavailable) })
	if !errors.Is(err, ErrUnavailable) || calls != 3 {
		t.Errorf("always failing: err=%v calls=%d", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrUnavailable)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
