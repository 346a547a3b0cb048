package s3

import (
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
)

type Option func(*Client)

func WithRegion(region string) Option {
	return func(c *Client) {
		c.region = region
	}
}

// WithEndpoint points the client at an S3 compatible endpoint
// (MinIO, LocalStack) and switches to path style addressing.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

func WithClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func WithConfig(config aws.Config) Option {
	return func(c *Client) {
		c.config = &config
	}
}
