package share

import (
	"context"
	"errors"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/novotemporh/cartaz/binding"
)

type fakeBucket struct {
	objects map[string][]byte
	meta    map[string]map[string]string
	putErr  error
}

func (f *fakeBucket) PutObject(_ context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	if int64(len(data)) != size {
		return minio.UploadInfo{}, errors.New("size mismatch")
	}
	f.objects[key] = data
	f.meta[key] = opts.UserMetadata
	return minio.UploadInfo{Bucket: bucket, Key: key, Size: size}, nil
}

func (f *fakeBucket) PresignedGetObject(_ context.Context, bucket, key string, expires time.Duration, _ url.Values) (*url.URL, error) {
	return url.Parse("https://cdn.example.com/" + bucket + "/" + key + "?expires=" + expires.String())
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{objects: map[string][]byte{}, meta: map[string]map[string]string{}}
}

var fixedNow = time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

func sampleRequest() Request {
	return Request{
		Label:   "standard-20632",
		PNG:     []byte("\x89PNG fake"),
		Caption: binding.Caption{Title: "Vaga: Operador", Text: "Envie seu currículo"},
	}
}

func TestMinioSharerUploadsAndPresigns(t *testing.T) {
	bucket := newFakeBucket()
	s := newMinioSharer(bucket, bucket, MinioConfig{Bucket: "posters", Prefix: "/shared/", URLExpiry: time.Hour})
	s.now = func() time.Time { return fixedNow }

	r, err := s.Share(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("share: %v", err)
	}
	if !strings.HasPrefix(r.Key, "shared/2026/03/09/standard-20632-") || !strings.HasSuffix(r.Key, ".png") {
		t.Fatalf("unexpected key %q", r.Key)
	}
	if string(bucket.objects[r.Key]) != "\x89PNG fake" {
		t.Fatalf("object not stored under %q", r.Key)
	}
	if got, _ := url.QueryUnescape(bucket.meta[r.Key]["caption"]); got != "Envie seu currículo" {
		t.Fatalf("caption metadata lost: %q", got)
	}
	if !strings.Contains(r.URL, "expires=1h0m0s") || r.Target != "minio" || !r.SharedAt.Equal(fixedNow) {
		t.Fatalf("unexpected receipt %+v", r)
	}
}

func TestEmptyPosterIsRejected(t *testing.T) {
	bucket := newFakeBucket()
	s := newMinioSharer(bucket, bucket, MinioConfig{Bucket: "posters"})
	if _, err := s.Share(context.Background(), Request{}); !errors.Is(err, ErrEmptyPoster) {
		t.Fatalf("expected ErrEmptyPoster, got %v", err)
	}
}

func TestDirSharerWritesPosterAndCaption(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDirSharer(dir)
	if err != nil {
		t.Fatalf("new dir sharer: %v", err)
	}
	s.now = func() time.Time { return fixedNow }

	r, err := s.Share(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("share: %v", err)
	}
	pngPath := filepath.Join(dir, filepath.FromSlash(r.Key))
	if data, err := os.ReadFile(pngPath); err != nil || string(data) != "\x89PNG fake" {
		t.Fatalf("poster not written: %v", err)
	}
	caption, err := os.ReadFile(strings.TrimSuffix(pngPath, ".png") + ".txt")
	if err != nil {
		t.Fatalf("caption not written: %v", err)
	}
	if !strings.HasPrefix(string(caption), "Vaga: Operador\n\nEnvie") {
		t.Fatalf("unexpected caption %q", caption)
	}
	if !strings.HasPrefix(r.URL, "file://") {
		t.Fatalf("unexpected url %q", r.URL)
	}
}

func TestFallbackUsesSecondaryOnFailure(t *testing.T) {
	bucket := newFakeBucket()
	bucket.putErr = errors.New("connection refused")
	primary := newMinioSharer(bucket, bucket, MinioConfig{Bucket: "posters"})
	secondary, err := NewDirSharer(t.TempDir())
	if err != nil {
		t.Fatalf("new dir sharer: %v", err)
	}
	f := &Fallback{Primary: primary, Secondary: secondary}

	r, err := f.Share(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("fallback share: %v", err)
	}
	if !r.Fallback || r.Target != "dir" {
		t.Fatalf("expected fallback receipt, got %+v", r)
	}

	// both failing reports both causes
	_, err = f.Share(context.Background(), Request{})
	if !errors.Is(err, ErrEmptyPoster) {
		t.Fatalf("expected ErrEmptyPoster in %v", err)
	}
	if f.Name() != "minio+dir" {
		t.Fatalf("unexpected name %q", f.Name())
	}
}
