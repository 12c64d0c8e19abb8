package assets

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	_ "golang.org/x/image/webp"

	"github.com/novotemporh/cartaz/poster"
)

// DefaultDecodeTimeout bounds one illustration load.
const DefaultDecodeTimeout = 12 * time.Second

// DefaultMaxPixels bounds the decoded size of one illustration (40 MP,
// about 160 MB as RGBA).
const DefaultMaxPixels = 40_000_000

// maxImageBytes caps encoded illustrations from every source.
const maxImageBytes = 32 << 20

var (
	// ErrNoImage is returned for an empty ImageSource.
	ErrNoImage = errors.New("no image")
	// ErrLocalDisabled is returned for file paths and file:// URIs when the
	// loader was built without WithLocalFiles.
	ErrLocalDisabled = errors.New("local image files are disabled")
	// ErrTooLarge is returned for images over the byte or pixel limit.
	ErrTooLarge = errors.New("image too large")
)

// Loader resolves poster illustrations from inline bytes, data URIs,
// http(s) URLs and, when enabled, local files.
type Loader struct {
	client    *http.Client
	timeout   time.Duration
	logger    *slog.Logger
	local     bool
	maxPixels int
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLocalFiles lets the loader read file paths and file:// URIs. Only
// trusted input (the CLI) should get it.
func WithLocalFiles() LoaderOption {
	return func(l *Loader) { l.local = true }
}

// WithMaxPixels overrides DefaultMaxPixels.
func WithMaxPixels(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.maxPixels = n
		}
	}
}

// NewLoader returns a loader bounded by timeout (DefaultDecodeTimeout when
// zero). client may be nil.
func NewLoader(client *http.Client, timeout time.Duration, logger *slog.Logger, opts ...LoaderOption) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultDecodeTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	l := &Loader{client: client, timeout: timeout, logger: logger, maxPixels: DefaultMaxPixels}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Timeout is the per-load deadline.
func (l *Loader) Timeout() time.Duration { return l.timeout }

// Load fetches and decodes src. It gives up when ctx ends or the loader
// timeout elapses, whichever comes first.
func (l *Loader) Load(ctx context.Context, src poster.ImageSource) (image.Image, error) {
	if src.IsZero() {
		return nil, ErrNoImage
	}
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	type result struct {
		img image.Image
		err error
	}
	done := make(chan result, 1)
	go func() {
		img, err := l.load(ctx, src)
		done <- result{img, err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load image: %w", ctx.Err())
	case r := <-done:
		return r.img, r.err
	}
}

func (l *Loader) load(ctx context.Context, src poster.ImageSource) (image.Image, error) {
	data := src.Bytes
	if len(data) == 0 {
		var err error
		data, err = l.fetch(ctx, strings.TrimSpace(src.URI))
		if err != nil {
			return nil, err
		}
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("%w: over %d bytes", ErrTooLarge, maxImageBytes)
	}
	// Oversized bitmaps are rejected from the header, before any pixel
	// allocation.
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New("decode image: empty bitmap")
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(l.maxPixels) {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrTooLarge, cfg.Width, cfg.Height, l.maxPixels)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := img.Bounds()
	l.logger.Debug("illustration decoded", "format", format, "width", b.Dx(), "height", b.Dy())
	return img, nil
}

func (l *Loader) fetch(ctx context.Context, uri string) ([]byte, error) {
	switch {
	case strings.HasPrefix(uri, "data:"):
		return decodeDataURI(uri)
	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		return l.fetchHTTP(ctx, uri)
	case !l.local:
		return nil, ErrLocalDisabled
	case strings.HasPrefix(uri, "file://"):
		u, err := url.Parse(uri)
		if err != nil {
			return nil, fmt.Errorf("parse file uri: %w", err)
		}
		return readFile(u.Path)
	default:
		return readFile(uri)
	}
}

func (l *Loader) fetchHTTP(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", uri, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", uri, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", uri, err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("%w: %s is over %d bytes", ErrTooLarge, uri, maxImageBytes)
	}
	return data, nil
}

func decodeDataURI(uri string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, errors.New("malformed data uri")
	}
	if !strings.HasSuffix(meta, ";base64") {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("data uri: %w", err)
		}
		return []byte(s), nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("data uri: %w", err)
	}
	return data, nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("%w: %s is over %d bytes", ErrTooLarge, path, maxImageBytes)
	}
	return data, nil
}
