package cache

import (
	"context"
	"net/url"
	"strings"

	"github.com/matzehuels/orbit/pkg/errors"
)

// Open selects a backend from a connection string:
//
//	""  or "none"                      NullCache
//	redis://host:6379/0, rediss://...  RedisCache
//	mongodb://host/db, mongodb+srv://  MongoCache (database from the path)
//	file:///path or a plain path       FileCache
func Open(ctx context.Context, uri string) (Cache, error) {
	switch {
	case uri == "" || uri == "none":
		return NewNullCache(), nil

	case strings.HasPrefix(uri, "redis://"), strings.HasPrefix(uri, "rediss://"):
		if err := errors.ValidateURI(uri, "redis", "rediss"); err != nil {
			return nil, err
		}
		c, err := NewRedisCache(ctx, uri, DefaultRedisPrefix)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeBackend, err, "open redis cache")
		}
		return c, nil

	case strings.HasPrefix(uri, "mongodb://"), strings.HasPrefix(uri, "mongodb+srv://"):
		if err := errors.ValidateURI(uri, "mongodb", "mongodb+srv"); err != nil {
			return nil, err
		}
		u, _ := url.Parse(uri)
		c, err := NewMongoCache(ctx, uri, strings.Trim(u.Path, "/"), "")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeBackend, err, "open mongo cache")
		}
		return c, nil

	case strings.HasPrefix(uri, "file://"):
		return openFile(strings.TrimPrefix(uri, "file://"))

	case strings.Contains(uri, "://"):
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported cache backend %q", uri)

	default:
		return openFile(uri)
	}
}

func openFile(dir string) (Cache, error) {
	c, err := NewFileCache(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBackend, err, "open file cache")
	}
	return c, nil
}
