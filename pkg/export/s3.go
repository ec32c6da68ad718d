package export

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/withhover/internal/errors"
)

// Environment variables read by NewS3Client.
const (
	EnvAccessKeyID     = "AWS_ACCESS_KEY_ID"
	EnvSecretAccessKey = "AWS_SECRET_ACCESS_KEY"
	EnvSessionToken    = "AWS_SESSION_TOKEN"
	EnvEndpoint        = "AWS_ENDPOINT_URL_S3"
)

// NewS3Client builds an S3 client for region from environment credentials.
func NewS3Client(region string) (*s3.Client, error) {
	return newS3Client(region, os.Getenv)
}

func newS3Client(region string, getenv func(string) string) (*s3.Client, error) {
	creds, err := credentialsFromEnv(getenv)
	if err != nil {
		return nil, err
	}

	opts := s3.Options{
		Region: region,
		Credentials: aws.NewCredentialsCache(aws.CredentialsProviderFunc(
			func(context.Context) (aws.Credentials, error) { return creds, nil },
		)),
	}
	if endpoint := getenv(EnvEndpoint); endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts), nil
}

func credentialsFromEnv(getenv func(string) string) (aws.Credentials, error) {
	creds := aws.Credentials{
		AccessKeyID:     getenv(EnvAccessKeyID),
		SecretAccessKey: getenv(EnvSecretAccessKey),
		SessionToken:    getenv(EnvSessionToken),
		Source:          "Environment",
	}
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return aws.Credentials{}, errors.New(errors.ExportNoCreds).
			WithDetail("%s and %s must be set", EnvAccessKeyID, EnvSecretAccessKey)
	}
	return creds, nil
}
