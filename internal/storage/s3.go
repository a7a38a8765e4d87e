package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"

	"linkup/pkg/config"
	apperr "linkup/pkg/errors"
)

// S3Storage stores images in an S3-compatible bucket
type S3Storage struct {
	uploader *s3manager.Uploader
	client   *s3.S3
	bucket   string
}

// NewS3Storage creates an S3-backed object store from configuration
func NewS3Storage(cfg *config.Config) (*S3Storage, error) {
	awsCfg := &aws.Config{
		Region: aws.String(cfg.S3Region),
	}
	if cfg.S3Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.S3Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	if cfg.S3AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.S3AccessKey, cfg.S3SecretKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return &S3Storage{
		uploader: s3manager.NewUploader(sess),
		client:   s3.New(sess),
		bucket:   cfg.S3Bucket,
	}, nil
}

// Upload stores the object under a fresh key and returns its public URL and
// storage identifier.
func (s *S3Storage) Upload(ctx context.Context, r io.Reader, contentType string) (*UploadResult, error) {
	key := uuid.NewString()

	out, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		return nil, apperr.External("image upload failed", err)
	}

	return &UploadResult{URL: out.Location, PublicID: key}, nil
}

// Release deletes a stored object by its storage identifier
func (s *S3Storage) Release(ctx context.Context, publicID string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return apperr.External("image release failed", err)
	}
	return nil
}
