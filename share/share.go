// Package share hands a finished poster and its caption to a place people
// can pick it up from.
package share

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/novotemporh/cartaz/binding"
)

// Request is one poster to share.
type Request struct {
	// Label names the poster in keys and logs, e.g. "standard-20632".
	Label   string
	PNG     []byte
	Caption binding.Caption
}

// Receipt tells the caller where the poster went.
type Receipt struct {
	Target   string    `json:"target"`
	Key      string    `json:"key"`
	URL      string    `json:"url"`
	Title    string    `json:"title"`
	Text     string    `json:"text"`
	Fallback bool      `json:"fallback,omitempty"`
	SharedAt time.Time `json:"sharedAt"`
}

// Sharer delivers a poster.
type Sharer interface {
	Name() string
	Share(ctx context.Context, req Request) (*Receipt, error)
}

// ErrEmptyPoster is returned for requests without image bytes.
var ErrEmptyPoster = errors.New("share: poster has no image data")

// objectKey builds "<prefix>/2006/01/02/<label>-<uuid>.png".
func objectKey(prefix, label string, now time.Time) string {
	name := uuid.NewString()
	if label != "" {
		name = label + "-" + name
	}
	return path.Join(prefix, now.UTC().Format("2006/01/02"), name+".png")
}

// Fallback tries Primary and, when it fails, Secondary.
type Fallback struct {
	Primary   Sharer
	Secondary Sharer
	Logger    *slog.Logger
}

func (f *Fallback) Name() string { return f.Primary.Name() + "+" + f.Secondary.Name() }

func (f *Fallback) Share(ctx context.Context, req Request) (*Receipt, error) {
	r, err := f.Primary.Share(ctx, req)
	if err == nil {
		return r, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}
	logger := f.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("share target failed, using fallback", "target", f.Primary.Name(), "fallback", f.Secondary.Name(), "err", err)

	r, err2 := f.Secondary.Share(ctx, req)
	if err2 != nil {
		return nil, errors.Join(err, fmt.Errorf("fallback %s: %w", f.Secondary.Name(), err2))
	}
	r.Fallback = true
	return r, nil
}
