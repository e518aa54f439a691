package catalog

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/example/tryon/internal/imageio"
)

const (
	// DefaultTextureTTL is how long a decoded texture stays cached.
	DefaultTextureTTL = 10 * time.Minute
	maxTextureBytes   = 32 << 20
)

// Textures fetches and decodes product images, keeping decoded results in
// a cache keyed by the resolved location.
type Textures struct {
	// Dir resolves relative paths. Empty means the working directory.
	Dir    string
	HTTP   *http.Client
	MaxDim int
	cache  *cache.Cache
}

// NewTextures returns a fetcher caching decoded images for ttl.
func NewTextures(dir string, ttl time.Duration) *Textures {
	if ttl <= 0 {
		ttl = DefaultTextureTTL
	}
	return &Textures{
		Dir:    dir,
		HTTP:   &http.Client{Timeout: 30 * time.Second},
		MaxDim: 2048,
		cache:  cache.New(ttl, 2*ttl),
	}
}

// Fetch returns the decoded image at loc, which may be an http(s) URL, a
// file:// URL or a filesystem path.
func (t *Textures) Fetch(ctx context.Context, loc string) (image.Image, error) {
	loc = strings.TrimSpace(loc)
	if loc == "" {
		return nil, fmt.Errorf("fetch texture: %w", imageio.ErrEmptyImage)
	}
	key := t.resolve(loc)
	if v, ok := t.cache.Get(key); ok {
		return v.(image.Image), nil
	}
	rc, err := t.open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("fetch texture %s: %w", loc, err)
	}
	defer rc.Close()
	img, _, err := imageio.Decode(io.LimitReader(rc, maxTextureBytes))
	if err != nil {
		return nil, fmt.Errorf("fetch texture %s: %w", loc, err)
	}
	img = imageio.Fit(img, t.MaxDim)
	t.cache.SetDefault(key, img)
	return img, nil
}

// Cached reports how many textures are held.
func (t *Textures) Cached() int {
	return t.cache.ItemCount()
}

func (t *Textures) resolve(loc string) string {
	if isRemote(loc) {
		return loc
	}
	if strings.HasPrefix(loc, "file://") {
		if u, err := url.Parse(loc); err == nil {
			return u.Path
		}
		return strings.TrimPrefix(loc, "file://")
	}
	if filepath.IsAbs(loc) || t.Dir == "" {
		return loc
	}
	return filepath.Join(t.Dir, loc)
}

func (t *Textures) open(ctx context.Context, loc string) (io.ReadCloser, error) {
	if !isRemote(loc) {
		return os.Open(loc)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
	if err != nil {
		return nil, err
	}
	hc := t.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}

func isRemote(loc string) bool {
	return strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://")
}
