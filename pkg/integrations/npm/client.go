package npm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/pkgsync/pkg/cache"
	pkgerrors "github.com/matzehuels/pkgsync/pkg/errors"
	"github.com/matzehuels/pkgsync/pkg/integrations"
)

// DefaultRegistry is the public npm registry.
const DefaultRegistry = "https://registry.npmjs.org"

const abbreviatedMetadata = "application/vnd.npm.install-v1+json; q=1.0, application/json; q=0.8"

type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a registry client backed by c. A nil cache disables caching.
func NewClient(c cache.Cache, ttl time.Duration) *Client {
	return &Client{
		Client: integrations.NewClient(c, "npm:", ttl, map[string]string{
			"Accept": abbreviatedMetadata,
		}),
		baseURL: DefaultRegistry,
	}
}

// WithBaseURL points the client at another registry (mirrors, tests).
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimRight(url, "/")
	return c
}

// LatestVersion returns the version tagged "latest" for pkg.
func (c *Client) LatestVersion(ctx context.Context, pkg string, refresh bool) (string, error) {
	pkg = strings.TrimSpace(pkg)
	if err := pkgerrors.ValidateNpmPackageName(pkg); err != nil {
		return "", err
	}

	var info versionInfo
	err := c.Cached(ctx, pkg, refresh, &info, func() error {
		return c.fetch(ctx, pkg, &info)
	})
	if err != nil {
		return "", err
	}
	return info.Version, nil
}

func (c *Client) fetch(ctx context.Context, pkg string, info *versionInfo) error {
	var data registryResponse
	if err := c.Get(ctx, c.baseURL+"/"+escapeName(pkg), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: npm package %s", err, pkg)
		}
		return err
	}
	if data.DistTags.Latest == "" {
		return fmt.Errorf("npm package %s has no latest dist-tag", pkg)
	}
	info.Version = data.DistTags.Latest
	return nil
}

// escapeName encodes the scope separator the way the registry expects
// (@scope/name becomes @scope%2fname).
func escapeName(pkg string) string {
	if strings.HasPrefix(pkg, "@") {
		return strings.Replace(pkg, "/", "%2f", 1)
	}
	return pkg
}

type versionInfo struct {
	Version string `json:"version"`
}

type registryResponse struct {
	Name     string   `json:"name"`
	DistTags distTags `json:"dist-tags"`
}

type distTags struct {
	Latest string `json:"latest"`
}
