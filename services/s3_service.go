package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/brandworks/crm-api/config"
	"go.uber.org/zap"
)

// presignTTL is how long a generated download link stays valid
const presignTTL = time.Hour

// S3Interface defines the object store operations the upload flow needs
type S3Interface interface {
	PutObject(ctx context.Context, key, contentType string, content []byte) error
	GetPresignedURL(ctx context.Context, key string) (string, error)
	DeleteObject(ctx context.Context, key string) error
}

// S3Service stores employee uploads in a bucket
type S3Service struct {
	client *s3.Client
	bucket string
}

// NewS3Service builds an S3 client from the AWS settings. Static credentials
// are used when both keys are set, otherwise the default provider chain.
func NewS3Service(ctx context.Context, cfg *appConfig.Config) (*S3Service, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Service{
		client: s3.NewFromConfig(awsConfig),
		bucket: cfg.AWSS3Bucket,
	}, nil
}

// PutObject uploads content under key
func (s *S3Service) PutObject(ctx context.Context, key, contentType string, content []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(content),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(content))),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}

// GetPresignedURL generates a time-limited download link for a private object
func (s *S3Service) GetPresignedURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	presignClient := s3.NewPresignClient(s.client)
	request, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = presignTTL
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	zap.L().Debug("generated presigned url", zap.String("key", key))
	return request.URL, nil
}

// DeleteObject removes key from the bucket
func (s *S3Service) DeleteObject(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}
