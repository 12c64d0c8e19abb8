package share

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioConfig addresses the bucket posters are uploaded to.
type MinioConfig struct {
	Endpoint         string
	PublicEndpoint   string // host clients download from; defaults to Endpoint
	AccessKeyID      string
	SecretAccessKey  string
	Bucket           string
	Region           string
	UseSSL           bool
	AutoCreateBucket bool
	Prefix           string
	URLExpiry        time.Duration
}

// objectStore is the part of *minio.Client the sharer uses.
type objectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type presigner interface {
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
}

// MinioSharer uploads posters and returns presigned download links.
type MinioSharer struct {
	objects objectStore
	public  presigner
	bucket  string
	prefix  string
	expiry  time.Duration
	now     func() time.Time
}

// NewMinioSharer connects to cfg's endpoint and makes sure the bucket
// exists.
func NewMinioSharer(ctx context.Context, cfg MinioConfig) (*MinioSharer, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio: bucket is required")
	}
	creds := credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	internal, err := minio.New(cfg.Endpoint, &minio.Options{Creds: creds, Secure: cfg.UseSSL, Region: cfg.Region})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	public := internal
	if cfg.PublicEndpoint != "" {
		u, err := url.Parse(cfg.PublicEndpoint)
		if err != nil || u.Host == "" {
			return nil, fmt.Errorf("invalid minio public endpoint %q", cfg.PublicEndpoint)
		}
		public, err = minio.New(u.Host, &minio.Options{Creds: creds, Secure: u.Scheme == "https", Region: cfg.Region})
		if err != nil {
			return nil, fmt.Errorf("init public minio client: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	exists, err := internal.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if !cfg.AutoCreateBucket {
			return nil, fmt.Errorf("bucket %q does not exist (auto create disabled)", cfg.Bucket)
		}
		if err := internal.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("make bucket %q: %w", cfg.Bucket, err)
		}
	}
	return newMinioSharer(internal, public, cfg), nil
}

func newMinioSharer(objects objectStore, public presigner, cfg MinioConfig) *MinioSharer {
	expiry := cfg.URLExpiry
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &MinioSharer{
		objects: objects,
		public:  public,
		bucket:  cfg.Bucket,
		prefix:  strings.Trim(cfg.Prefix, "/"),
		expiry:  expiry,
		now:     time.Now,
	}
}

func (s *MinioSharer) Name() string { return "minio" }

// Share uploads the PNG with the caption as object metadata.
func (s *MinioSharer) Share(ctx context.Context, req Request) (*Receipt, error) {
	if len(req.PNG) == 0 {
		return nil, ErrEmptyPoster
	}
	now := s.now()
	key := objectKey(s.prefix, req.Label, now)
	opts := minio.PutObjectOptions{
		ContentType: "image/png",
		UserMetadata: map[string]string{
			"title":   url.QueryEscape(req.Caption.Title),
			"caption": url.QueryEscape(req.Caption.Text),
		},
	}
	if _, err := s.objects.PutObject(ctx, s.bucket, key, bytes.NewReader(req.PNG), int64(len(req.PNG)), opts); err != nil {
		return nil, fmt.Errorf("put object %q: %w", key, err)
	}
	u, err := s.public.PresignedGetObject(ctx, s.bucket, key, s.expiry, nil)
	if err != nil {
		return nil, fmt.Errorf("generate presigned url for %q: %w", key, err)
	}
	return &Receipt{
		Target:   s.Name(),
		Key:      key,
		URL:      u.String(),
		Title:    req.Caption.Title,
		Text:     req.Caption.Text,
		SharedAt: now,
	}, nil
}
