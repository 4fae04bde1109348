package s3

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/povarna/generative-ai-agents/guard-agent/internal/prompt"
)

// Client fetches prompt template overrides from an S3 bucket. It
// implements prompt.Fetcher.
type Client struct {
	client *awss3.Client
	bucket string
}

func NewClient(ctx context.Context, region string, bucket string) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}

	return &Client{
		client: awss3.NewFromConfig(cfg),
		bucket: bucket,
	}, nil
}

// Fetch reads the object body as UTF-8 text. A missing key maps onto
// prompt.ErrTemplateNotFound so callers can treat it as a configuration
// error; any other failure propagates as-is.
func (c *Client) Fetch(ctx context.Context, key string) (string, error) {
	output, err := c.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return "", fmt.Errorf("%w: key %q does not exist in bucket %q",
				prompt.ErrTemplateNotFound, key, c.bucket)
		}
		return "", fmt.Errorf("failed to load prompt template from s3://%s/%s: %w", c.bucket, key, err)
	}
	defer output.Body.Close()

	body, err := io.ReadAll(output.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read prompt template body: %w", err)
	}

	return string(body), nil
}
