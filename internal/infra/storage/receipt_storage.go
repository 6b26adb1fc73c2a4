// Package storage stores receipt images in an object bucket behind the
// portable gocloud blob API.
package storage

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"rutero/config"
	"rutero/internal/domain/lifecycle"
	"rutero/internal/domain/service"
	"rutero/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Bucket URL schemes usable without extra wiring.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
)

type blobReceiptStorage struct {
	bucket    *blob.Bucket
	publicURL string
	logger    *slog.Logger
}

// Params holds dependencies for the receipt storage, injected by Fx
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewReceiptStorage opens the configured bucket and returns a ReceiptStorage.
func NewReceiptStorage(params Params) (service.ReceiptStorage, error) {
	cfg := params.Config.Storage
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("storage bucket URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open receipt bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	params.Logger.Info("Receipt storage initialized",
		slog.String("bucket_url", cfg.BucketURL),
	)

	return &blobReceiptStorage{
		bucket:    bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		logger:    params.Logger,
	}, nil
}

// Upload writes one receipt object and returns the URL it will be served
// from. The caller picks a collision-free key, so writes never overwrite.
func (s *blobReceiptStorage) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	writer, err := s.bucket.NewWriter(ctx, filename, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to open bucket writer")
	}

	if _, err := io.Copy(writer, body); err != nil {
		writer.Close()

		return "", errors.Wrap(err, "failed to write receipt object")
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finish receipt upload")
	}

	return s.publicURL + "/" + escapeObjectKey(filename), nil
}

// escapeObjectKey escapes each path segment of the key, keeping the slashes
// that separate dispatch and assignment prefixes.
func escapeObjectKey(key string) string {
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}

	return strings.Join(segments, "/")
}
