// Package objectstore reads the binary payloads of the source deployment
// (template assets, questionnaire files and rendered documents) from an
// S3-compatible bucket or a local directory tree.
package objectstore

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config contains configuration for the S3 object store.
type Config struct {
	// S3 connection settings.
	Endpoint  string `hcl:"endpoint,optional"`   // Endpoint URL, e.g. a MinIO server. Empty uses AWS.
	Region    string `hcl:"region,optional"`     // Region (default: "us-east-1").
	Bucket    string `hcl:"bucket,optional"`     // Bucket holding the deployment's objects.
	Prefix    string `hcl:"prefix,optional"`     // Optional namespace prefix inside the bucket.
	AccessKey string `hcl:"access_key,optional"` // Access key ID.
	SecretKey string `hcl:"secret_key,optional"` // Secret access key.

	// TLS and timeouts.
	InsecureSkipVerify    bool `hcl:"insecure_skip_verify,optional"`    // Skip certificate verification (testing only).
	RequestTimeoutSeconds int  `hcl:"request_timeout_seconds,optional"` // Request timeout (default: 30).

	// VerifyBucket checks the bucket with HeadBucket when the store is
	// opened (default: true).
	VerifyBucket *bool `hcl:"verify_bucket,optional"`
}

// Validate validates the S3 configuration.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("s3 configuration is missing")
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Bucket, validation.Required),
		validation.Field(&c.RequestTimeoutSeconds, validation.Min(0)),
	)
}

// SetDefaults sets default values for optional configuration fields.
func (c *Config) SetDefaults() {
	if c.Region == "" {
		c.Region = "us-east-1"
	}
	if c.RequestTimeoutSeconds == 0 {
		c.RequestTimeoutSeconds = 30
	}
	if c.VerifyBucket == nil {
		verify := true
		c.VerifyBucket = &verify
	}
}
