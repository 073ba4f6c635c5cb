// Package config loads pkgsync.toml, the repository-level settings for
// reconciliation, icon generation and caching.
//
// A missing file is not an error: [Load] returns [Default], which scans
// packages/* with the npm registry and a file cache.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	pkgerrors "github.com/matzehuels/pkgsync/pkg/errors"
)

// FileName is the configuration file looked up in the repository root.
const FileName = "pkgsync.toml"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Defaults.
const (
	DefaultNamespace   = "jupyterlab"
	DefaultRangePrefix = "~"
	DefaultRegistry    = "https://registry.npmjs.org"
	DefaultCacheTTL    = 24 * time.Hour
)

// DefaultWorkspace is the package glob used when none is configured.
var DefaultWorkspace = []string{"packages/*"}

// Config is the decoded pkgsync.toml.
type Config struct {
	Workspace   []string `toml:"workspace"`
	Namespace   string   `toml:"namespace"`
	RangePrefix string   `toml:"range_prefix"`
	Registry    string   `toml:"registry"`
	TestLibs    []string `toml:"test_libs"`
	Formatter   []string `toml:"formatter"`
	Sources     []string `toml:"sources"`

	Icons    Icons              `toml:"icons"`
	Cache    Cache              `toml:"cache"`
	Packages map[string]Package `toml:"packages"`
}

// Icons configures icon table generation.
type Icons struct {
	Package   string `toml:"package"` // name of the package that owns style/icons
	Dynamic   bool   `toml:"dynamic"`
	Class     string `toml:"class"`
	Module    string `toml:"module"`
	CSSPrefix string `toml:"css_prefix"`
}

// Cache configures the registry response cache.
type Cache struct {
	Backend  string   `toml:"backend"`
	TTL      Duration `toml:"ttl"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
}

// Package holds per-package exceptions and options.
type Package struct {
	Missing           []string `toml:"missing"`
	Unused            []string `toml:"unused"`
	DifferentVersions []string `toml:"different_versions"`
	CSSImports        []string `toml:"css_imports"`
	CSSModuleImports  []string `toml:"css_module_imports"`
	NoUnused          bool     `toml:"no_unused"`
}

// Duration is a time.Duration written as a string ("24h", "90m").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads the config at path. A missing file yields [Default].
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return Parse(string(data))
}

// Parse decodes TOML configuration. Unknown keys are rejected so typos in
// exception lists do not silently disable them.
func Parse(data string) (*Config, error) {
	var c Config
	md, err := toml.Decode(data, &c)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, pkgerrors.New(pkgerrors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if len(c.Workspace) == 0 {
		c.Workspace = slices.Clone(DefaultWorkspace)
	}
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	if c.RangePrefix == "" {
		c.RangePrefix = DefaultRangePrefix
	}
	if c.Registry == "" {
		c.Registry = DefaultRegistry
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = BackendFile
	}
	if c.Cache.TTL.Duration == 0 {
		c.Cache.TTL.Duration = DefaultCacheTTL
	}
}

// Validate checks values that cannot be fixed by defaults.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return pkgerrors.New(pkgerrors.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
		}
	default:
		return pkgerrors.New(pkgerrors.ErrCodeInvalidConfig, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	for _, p := range c.Workspace {
		if err := pkgerrors.ValidatePath(p); err != nil {
			return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidConfig, err, "workspace pattern %q", p)
		}
	}
	for _, p := range c.Sources {
		if err := pkgerrors.ValidatePath(p); err != nil {
			return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidConfig, err, "sources pattern %q", p)
		}
	}
	for name := range c.Packages {
		if err := pkgerrors.ValidatePackageName(name); err != nil {
			return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidConfig, err, "packages.%q", name)
		}
	}
	return nil
}

// Package returns the settings for the named package (zero value if none).
func (c *Config) Package(name string) Package {
	return c.Packages[name]
}

// Find walks up from dir looking for [FileName] and returns its path.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		p := filepath.Join(dir, FileName)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s not found", FileName)
		}
		dir = parent
	}
}
