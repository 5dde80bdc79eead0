package objectstore

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 serves objects from memory.
type fakeS3 struct {
	objects map[string]string
	keys    []string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(in.Key)
	f.keys = append(f.keys, key)
	body, ok := f.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func (f *fakeS3) HeadBucket(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, nil
}

func TestAdapter_ObjectKey(t *testing.T) {
	tenant := uuid.MustParse("6d1fc2c8-7a51-4b59-9a8e-4b5bb5f2f0c1")

	tests := []struct {
		name   string
		prefix string
		tenant uuid.UUID
		key    string
		want   string
	}{
		{
			name:   "tenant scoped",
			tenant: tenant,
			key:    "documents/abc",
			want:   "6d1fc2c8-7a51-4b59-9a8e-4b5bb5f2f0c1/documents/abc",
		},
		{
			name:   "nil tenant addresses the root",
			tenant: uuid.Nil,
			key:    "documents/abc",
			want:   "documents/abc",
		},
		{
			name:   "prefix and tenant",
			prefix: "app",
			tenant: tenant,
			key:    "/templates/org:tmpl:1.0.0/x",
			want:   "app/6d1fc2c8-7a51-4b59-9a8e-4b5bb5f2f0c1/templates/org:tmpl:1.0.0/x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAdapter(&fakeS3{}, &Config{Bucket: "b", Prefix: tt.prefix}, hclog.NewNullLogger())
			assert.Equal(t, tt.want, a.objectKey(tt.tenant, tt.key))
		})
	}
}

func TestAdapter_Get(t *testing.T) {
	tenant := uuid.New()
	fake := &fakeS3{objects: map[string]string{
		tenant.String() + "/documents/abc": "%PDF",
	}}
	a := newAdapter(fake, &Config{Bucket: "b"}, hclog.NewNullLogger())

	data, err := a.Get(context.Background(), tenant, "documents/abc")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))

	_, err = a.Get(context.Background(), tenant, "documents/missing")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	// One request per call.
	assert.Len(t, fake.keys, 2)
}

func TestConfig(t *testing.T) {
	var missing *Config
	assert.Error(t, missing.Validate())
	assert.Error(t, (&Config{}).Validate())

	cfg := &Config{Bucket: "dsw"}
	require.NoError(t, cfg.Validate())
	cfg.SetDefaults()
	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, 30, cfg.RequestTimeoutSeconds)
	require.NotNil(t, cfg.VerifyBucket)
	assert.True(t, *cfg.VerifyBucket)
}

// TestAdapterIntegration tests the adapter against MinIO.
// Requires: MinIO running on localhost:9000 with a "dsw" bucket holding
// "<tenant>/documents/integration" for the tenant in RECIPE_TEST_TENANT.
func TestAdapterIntegration(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=1 to run")
	}

	tenant, err := uuid.Parse(os.Getenv("RECIPE_TEST_TENANT"))
	require.NoError(t, err, "RECIPE_TEST_TENANT must be a UUID")

	cfg := &Config{
		Endpoint:  "http://localhost:9000",
		Region:    "us-east-1",
		Bucket:    "dsw",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "s3-test",
		Level: hclog.Debug,
	})

	a, err := NewAdapter(context.Background(), cfg, logger)
	require.NoError(t, err)

	data, err := a.Get(context.Background(), tenant, "documents/integration")
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	_, err = a.Get(context.Background(), tenant, "documents/"+uuid.NewString())
	assert.True(t, errors.Is(err, ErrObjectNotFound), "unexpected error: %v", err)
}
