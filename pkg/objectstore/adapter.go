package objectstore

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// ErrObjectNotFound is returned when a key does not exist in the store.
var ErrObjectNotFound = errors.New("object not found")

// s3API is the part of the S3 client the adapter uses.
type s3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Adapter reads objects from an S3-compatible bucket. Objects of a tenant
// live under "<tenant uuid>/"; the nil tenant addresses the bucket root.
type Adapter struct {
	client s3API
	cfg    *Config
	logger hclog.Logger
}

// NewAdapter creates a new S3 object store.
func NewAdapter(ctx context.Context, cfg *Config, logger hclog.Logger) (*Adapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid S3 configuration: %w", err)
	}
	cfg.SetDefaults()

	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	awsCfg, err := createAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// MinIO and most S3-compatible servers need path-style addressing.
			o.UsePathStyle = true
		}
	})

	adapter := newAdapter(client, cfg, logger)

	if *cfg.VerifyBucket {
		if err := adapter.verifyBucket(ctx); err != nil {
			return nil, fmt.Errorf("failed to verify S3 bucket: %w", err)
		}
	}

	adapter.logger.Info("S3 object store initialized",
		"endpoint", cfg.Endpoint,
		"bucket", cfg.Bucket,
		"prefix", cfg.Prefix)

	return adapter, nil
}

func newAdapter(client s3API, cfg *Config, logger hclog.Logger) *Adapter {
	return &Adapter{
		client: client,
		cfg:    cfg,
		logger: logger.Named("s3"),
	}
}

// createAWSConfig creates AWS SDK configuration from the store config.
func createAWSConfig(ctx context.Context, cfg *Config) (aws.Config, error) {
	httpClient := &http.Client{
		Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: cfg.InsecureSkipVerify,
			},
		},
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
		config.WithHTTPClient(httpClient),
		// One attempt per request.
		config.WithRetryMaxAttempts(1),
	}

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	return config.LoadDefaultConfig(ctx, opts...)
}

// verifyBucket verifies that the bucket exists and is accessible.
func (a *Adapter) verifyBucket(ctx context.Context) error {
	_, err := a.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(a.cfg.Bucket),
	})
	if err != nil {
		return fmt.Errorf("bucket %s is not accessible: %w", a.cfg.Bucket, err)
	}
	return nil
}

// objectKey returns the bucket key of key for tenant.
func (a *Adapter) objectKey(tenant uuid.UUID, key string) string {
	key = strings.TrimPrefix(key, "/")
	if tenant != uuid.Nil {
		key = path.Join(tenant.String(), key)
	}
	if a.cfg.Prefix != "" {
		key = path.Join(a.cfg.Prefix, key)
	}
	return key
}

// Get reads one object in a single attempt.
func (a *Adapter) Get(ctx context.Context, tenant uuid.UUID, key string) ([]byte, error) {
	objectKey := a.objectKey(tenant, key)

	result, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.cfg.Bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, objectKey)
		}
		return nil, fmt.Errorf("failed to get object %s from S3: %w", objectKey, err)
	}
	defer result.Body.Close()

	content, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", objectKey, err)
	}

	a.logger.Trace("fetched object", "key", objectKey, "bytes", len(content))
	return content, nil
}
