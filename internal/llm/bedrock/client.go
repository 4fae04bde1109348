package bedrock

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

const (
	maxAttempts    = 5
	connectTimeout = 60 * time.Second
	// Model calls can run long; the read timeout covers the full response.
	readTimeout = 5 * time.Minute
)

type Client struct {
	Client  *bedrockruntime.Client
	ModelID string
}

// NewClient builds a Bedrock runtime client. Retry and timeout policy
// lives here on the transport: adaptive retries with up to 5 attempts.
// Nothing downstream retries on its own.
func NewClient(ctx context.Context, region string, modelID string) (*Client, error) {
	httpClient := awshttp.NewBuildableClient().
		WithDialerOptions(func(d *net.Dialer) {
			d.Timeout = connectTimeout
		}).
		WithTimeout(readTimeout)

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithRetryMode(aws.RetryModeAdaptive),
		config.WithRetryMaxAttempts(maxAttempts),
		config.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}

	bedrockClient := bedrockruntime.NewFromConfig(cfg)

	return &Client{
		Client:  bedrockClient,
		ModelID: modelID,
	}, nil
}
