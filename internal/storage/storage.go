// Package storage uploads admin images to a blob store and returns the
// public URL to save on the trip or testimonial.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/abhitrip/trip-catalog/internal/domain"
)

// PlaceholderURL is returned when no bucket is configured, so admin forms
// still get a usable image path in demo mode.
const PlaceholderURL = "/placeholder.svg"

// imageTypes maps accepted content types to the extension used in object keys.
var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
	"image/avif": ".avif",
}

// Upload describes one file to store.
type Upload struct {
	Folder      string // e.g. "trips", "testimonials"
	ContentType string
	Size        int64
	Body        io.Reader
}

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, u Upload) (string, error)
}

// CheckImage returns domain.ErrValidation unless contentType is an accepted
// image type.
func CheckImage(contentType string) error {
	ct, _, _ := strings.Cut(contentType, ";")
	if _, ok := imageTypes[strings.TrimSpace(strings.ToLower(ct))]; !ok {
		return fmt.Errorf("%w: unsupported image type %q", domain.ErrValidation, contentType)
	}
	return nil
}

// Placeholder is the Uploader used when no bucket is configured. It drains
// the body and always returns PlaceholderURL.
type Placeholder struct {
	log *slog.Logger
}

// NewPlaceholder constructs a Placeholder uploader.
func NewPlaceholder(log *slog.Logger) *Placeholder {
	return &Placeholder{log: log}
}

// Upload implements Uploader.
func (p *Placeholder) Upload(ctx context.Context, u Upload) (string, error) {
	if err := CheckImage(u.ContentType); err != nil {
		return "", fmt.Errorf("storage.Placeholder.Upload: %w", err)
	}
	_, _ = io.Copy(io.Discard, u.Body)
	p.log.InfoContext(ctx, "simulated image upload", "folder", u.Folder, "size", u.Size)
	return PlaceholderURL, nil
}

// putObjectAPI is the slice of *s3.Client the uploader needs.
type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 uploads to an S3 bucket under "<folder>/<yyyy>/<mm>/<uuid><ext>".
type S3 struct {
	client  putObjectAPI
	bucket  string
	baseURL string
	now     func() time.Time
}

// S3Config configures the S3 uploader. PublicBaseURL defaults to the
// bucket's virtual-hosted endpoint; set it when objects are served through a
// CDN.
type S3Config struct {
	Bucket        string
	Region        string
	PublicBaseURL string
}

// NewS3 builds an S3 uploader using the default AWS credential chain
// (environment, shared config, instance role).
func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("storage.NewS3: load aws config: %w", err)
	}
	return newS3(s3.NewFromConfig(awsCfg), cfg), nil
}

func newS3(client putObjectAPI, cfg S3Config) *S3 {
	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	return &S3{client: client, bucket: cfg.Bucket, baseURL: base, now: time.Now}
}

// Upload implements Uploader.
func (s *S3) Upload(ctx context.Context, u Upload) (string, error) {
	if err := CheckImage(u.ContentType); err != nil {
		return "", fmt.Errorf("storage.S3.Upload: %w", err)
	}
	ct, _, _ := strings.Cut(strings.ToLower(u.ContentType), ";")
	ct = strings.TrimSpace(ct)

	folder := strings.Trim(u.Folder, "/")
	if folder == "" {
		folder = "uploads"
	}
	now := s.now().UTC()
	key := path.Join(folder, now.Format("2006"), now.Format("01"), uuid.NewString()+imageTypes[ct])

	in := &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         u.Body,
		ContentType:  aws.String(ct),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	}
	if u.Size > 0 {
		in.ContentLength = aws.Int64(u.Size)
	}
	if _, err := s.client.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("storage.S3.Upload: %w: %w", domain.ErrUnavailable, err)
	}
	return s.baseURL + "/" + key, nil
}
