package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/matzehuels/orbit/pkg/errors"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name     string
		uri      string
		wantType string
		wantCode errors.Code
	}{
		{name: "Empty", uri: "", wantType: "null"},
		{name: "None", uri: "none", wantType: "null"},
		{name: "PlainPath", uri: filepath.Join(dir, "a"), wantType: "file"},
		{name: "FileScheme", uri: "file://" + filepath.Join(dir, "b"), wantType: "file"},
		{name: "UnknownScheme", uri: "memcached://localhost:11211", wantCode: errors.ErrCodeUnsupported},
		{name: "RedisWithoutHost", uri: "redis://", wantCode: errors.ErrCodeInvalidInput},
		{name: "MongoWithoutHost", uri: "mongodb:///db", wantCode: errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Open(ctx, tt.uri)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("Open(%q) error = %v, want %s", tt.uri, err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Open(%q): %v", tt.uri, err)
			}
			defer c.Close()

			switch tt.wantType {
			case "null":
				if _, ok := c.(NullCache); !ok {
					t.Errorf("got %T, want NullCache", c)
				}
			case "file":
				if _, ok := c.(*FileCache); !ok {
					t.Errorf("got %T, want *FileCache", c)
				}
			}
		})
	}
}
