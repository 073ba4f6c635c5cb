package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/matzehuels/pkgsync/pkg/cache"
	"github.com/matzehuels/pkgsync/pkg/config"
)

// CacheDir returns the directory of the file cache for c, defaulting to
// pkgsync below the user cache directory.
func CacheDir(c config.Cache) (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "pkgsync"), nil
}

// OpenCache creates the registry response cache selected by c.
func OpenCache(ctx context.Context, c config.Cache) (cache.Cache, error) {
	switch c.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, c.RedisURL, cache.DefaultRedisPrefix)
	default:
		dir, err := CacheDir(c)
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(dir)
	}
}
