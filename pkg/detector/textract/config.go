package textract

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

// WithJobTag labels submitted jobs, e.g. to correlate completion notifications.
func WithJobTag(tag string) Option {
	return func(c *Client) {
		c.tag = tag
	}
}

// WithNotification publishes job completion to an SNS topic using the given role.
func WithNotification(topicARN, roleARN string) Option {
	return func(c *Client) {
		c.topicARN = topicARN
		c.roleARN = roleARN
	}
}

// WithOutput additionally persists raw results to a bucket owned by the caller.
func WithOutput(bucket, prefix string) Option {
	return func(c *Client) {
		c.outputBucket = bucket
		c.outputPrefix = prefix
	}
}

func WithKMSKey(key string) Option {
	return func(c *Client) {
		c.kmsKey = key
	}
}
