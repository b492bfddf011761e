// Package imageload resolves image URLs to decoded images.
//
// Supported sources are data URLs, http(s) URLs, file URLs and plain file
// paths. PNG, JPEG and GIF are decoded by the standard library; BMP, TIFF
// and WebP through golang.org/x/image.
package imageload

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	"image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP
	"golang.org/x/sync/errgroup"
)

// MaxBytes caps the size of a fetched or read image.
const MaxBytes = 64 << 20

// Errors.
var (
	// ErrUnsupportedScheme is returned for URLs the loader cannot fetch.
	ErrUnsupportedScheme = errors.New("imageload: unsupported scheme")

	// ErrEmptyData is returned when a source yields no bytes.
	ErrEmptyData = errors.New("imageload: empty data")

	// ErrBadDataURL is returned for malformed data URLs.
	ErrBadDataURL = errors.New("imageload: malformed data URL")
)

// Loader decodes the image at a URL.
type Loader interface {
	Load(ctx context.Context, url string) (image.Image, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, url string) (image.Image, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, url string) (image.Image, error) {
	return f(ctx, url)
}

// Default loads data, http(s) and file URLs as well as plain paths.
type Default struct {
	// Client fetches http(s) URLs. http.DefaultClient is used when nil.
	Client *http.Client
}

// Load resolves and decodes src.
func (d Default) Load(ctx context.Context, src string) (image.Image, error) {
	if strings.HasPrefix(src, "data:") {
		data, err := ParseDataURL(src)
		if err != nil {
			return nil, err
		}
		return DecodeBytes(data)
	}

	u, err := url.Parse(src)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain path, including Windows drive letters.
		return d.loadFile(src)
	}
	switch u.Scheme {
	case "http", "https":
		return d.fetch(ctx, u.String())
	case "file":
		return d.loadFile(u.Path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

func (d Default) loadFile(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("imageload: open file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Decode(io.LimitReader(f, MaxBytes))
}

func (d Default) fetch(ctx context.Context, u string) (image.Image, error) {
	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("imageload: request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imageload: fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("imageload: fetch %s: %s", u, resp.Status)
	}
	return Decode(io.LimitReader(resp.Body, MaxBytes))
}

// Decode decodes an image in any registered format.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imageload: decode: %w", err)
	}
	return img, nil
}

// DecodeBytes decodes an in-memory image.
func DecodeBytes(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// ParseDataURL returns the payload of a data URL of the form
// data:[<mediatype>][;base64],<data>.
func ParseDataURL(s string) ([]byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, ErrBadDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, ErrBadDataURL
	}
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadDataURL, err)
		}
		return data, nil
	}
	data, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadDataURL, err)
	}
	return []byte(data), nil
}

// DataURL encodes img as a PNG data URL.
func DataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("imageload: encode: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// LoadAll loads every URL concurrently. The result is in input order. The
// first failure cancels the remaining loads and is returned; no partial
// result is produced.
func LoadAll(ctx context.Context, l Loader, urls []string) ([]image.Image, error) {
	out := make([]image.Image, len(urls))
	g, ctx := errgroup.WithContext(ctx)
	for i, u := range urls {
		g.Go(func() error {
			img, err := l.Load(ctx, u)
			if err != nil {
				return fmt.Errorf("load %q: %w", shorten(u), err)
			}
			out[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// shorten keeps error messages readable for large data URLs.
func shorten(u string) string {
	const n = 64
	if len(u) <= n {
		return u
	}
	return u[:n] + "..."
}
