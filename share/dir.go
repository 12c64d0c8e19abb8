package share

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DirSharer drops the poster and a caption text file into a local
// directory, for hosts without object storage.
type DirSharer struct {
	dir string
	now func() time.Time
}

// NewDirSharer creates dir if needed.
func NewDirSharer(dir string) (*DirSharer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create share dir: %w", err)
	}
	return &DirSharer{dir: dir, now: time.Now}, nil
}

func (s *DirSharer) Name() string { return "dir" }

// Share writes <key>.png and <key>.txt with the caption.
func (s *DirSharer) Share(ctx context.Context, req Request) (*Receipt, error) {
	if len(req.PNG) == 0 {
		return nil, ErrEmptyPoster
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := s.now()
	key := objectKey("", req.Label, now)
	pngPath := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(pngPath), 0o755); err != nil {
		return nil, fmt.Errorf("create share dir: %w", err)
	}
	if err := os.WriteFile(pngPath, req.PNG, 0o644); err != nil {
		return nil, fmt.Errorf("write poster: %w", err)
	}
	caption := req.Caption.Title + "\n\n" + req.Caption.Text + "\n"
	txtPath := strings.TrimSuffix(pngPath, ".png") + ".txt"
	if err := os.WriteFile(txtPath, []byte(caption), 0o644); err != nil {
		return nil, fmt.Errorf("write caption: %w", err)
	}
	abs, err := filepath.Abs(pngPath)
	if err != nil {
		abs = pngPath
	}
	return &Receipt{
		Target:   s.Name(),
		Key:      key,
		URL:      "file://" + filepath.ToSlash(abs),
		Title:    req.Caption.Title,
		Text:     req.Caption.Text,
		SharedAt: now,
	}, nil
}
