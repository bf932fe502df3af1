package s3

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/domain"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

var allowedFormats = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
}

// Options configures the MinIO-backed image storage.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Folder    string
}

// ImageStorage implements domain.ImageStorage on an S3-compatible bucket.
type ImageStorage struct {
	client *minio.Client
	bucket string
	folder string
	logger *logger.Logger
}

func NewImageStorage(ctx context.Context, opts Options, log *logger.Logger) (*ImageStorage, error) {
	log.Info("Initializing S3 image storage",
		zap.String("endpoint", opts.Endpoint),
		zap.String("bucket", opts.Bucket),
		zap.Bool("use_ssl", opts.UseSSL))

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", opts.Endpoint, err)
	}

	if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
		exists, errExists := client.BucketExists(ctx, opts.Bucket)
		if errExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: (make: %v / exists_check: %v)", opts.Bucket, err, errExists)
		}
		log.Info("Bucket already exists", zap.String("bucket", opts.Bucket))
	} else {
		log.Info("Bucket created", zap.String("bucket", opts.Bucket))
	}

	// Listing pages link images directly, so objects must be publicly readable.
	if err := client.SetBucketPolicy(ctx, opts.Bucket, publicReadPolicy(opts.Bucket)); err != nil {
		log.Warn("Failed to set public read policy on bucket", zap.String("bucket", opts.Bucket), zap.Error(err))
	}

	return &ImageStorage{
		client: client,
		bucket: opts.Bucket,
		folder: opts.Folder,
		logger: log.Named("ImageStorage"),
	}, nil
}

func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, bucket)
}

// AllowedFormat reports whether the file name has a jpeg, jpg or png extension.
func AllowedFormat(fileName string) bool {
	_, ok := allowedFormats[strings.ToLower(filepath.Ext(fileName))]
	return ok
}

// objectKey places the upload under folder with a random name, keeping the
// original extension.
func objectKey(folder, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return path.Join(folder, uuid.New().String()+ext)
}

func (s *ImageStorage) Upload(ctx context.Context, upload domain.ImageUpload) (domain.Image, error) {
	if !AllowedFormat(upload.FileName) {
		return domain.Image{}, domain.ErrUnsupportedImage
	}
	key := objectKey(s.folder, upload.FileName)
	contentType := allowedFormats[strings.ToLower(filepath.Ext(upload.FileName))]

	info, err := s.client.PutObject(ctx, s.bucket, key, upload.Data, upload.Size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{"original-filename": upload.FileName},
	})
	if err != nil {
		s.logger.Error("PutObject failed", zap.String("key", key), zap.Error(err))
		return domain.Image{}, fmt.Errorf("failed to upload object %s to bucket %s: %w", key, s.bucket, err)
	}

	url := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, key)
	s.logger.Info("Image uploaded", zap.String("key", info.Key), zap.Int64("size", info.Size))
	return domain.Image{URL: url, Filename: key}, nil
}

func (s *ImageStorage) Delete(ctx context.Context, filename string) error {
	if filename == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, filename, minio.RemoveObjectOptions{}); err != nil {
		s.logger.Warn("RemoveObject failed", zap.String("key", filename), zap.Error(err))
		return fmt.Errorf("failed to remove object %s: %w", filename, err)
	}
	return nil
}
