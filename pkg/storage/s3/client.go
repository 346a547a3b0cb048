package s3

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/adrianliechti/docscan/pkg/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

var _ storage.Provider = (*Client)(nil)

type Client struct {
	region   string
	endpoint string

	client *http.Client
	config *aws.Config

	s3 *s3.Client
}

func New(ctx context.Context, options ...Option) (*Client, error) {
	c := &Client{}

	for _, option := range options {
		option(c)
	}

	if c.client == nil {
		c.client = &http.Client{
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		}
	}

	if c.config == nil {
		var loadOptions []func(*config.LoadOptions) error

		if c.region != "" {
			loadOptions = append(loadOptions, config.WithRegion(c.region))
		}

		cfg, err := config.LoadDefaultConfig(ctx, loadOptions...)

		if err != nil {
			return nil, err
		}

		c.config = &cfg
	}

	c.s3 = s3.NewFromConfig(*c.config, func(o *s3.Options) {
		o.HTTPClient = c.client

		if c.region != "" {
			o.Region = c.region
		}

		if c.endpoint != "" {
			o.BaseEndpoint = aws.String(c.endpoint)
			o.UsePathStyle = true
		}
	})

	return c, nil
}

func (c *Client) Metadata(ctx context.Context, bucket, key string) (*storage.Metadata, error) {
	resp, err := c.s3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})

	if err != nil {
		return nil, convertError(err)
	}

	return &storage.Metadata{
		ContentType:   aws.ToString(resp.ContentType),
		ContentLength: aws.ToInt64(resp.ContentLength),

		ETag:         aws.ToString(resp.ETag),
		VersionID:    aws.ToString(resp.VersionId),
		LastModified: aws.ToTime(resp.LastModified),
	}, nil
}

func (c *Client) Object(ctx context.Context, bucket, key string, options *storage.ObjectOptions) (*storage.Object, error) {
	if options == nil {
		options = new(storage.ObjectOptions)
	}

	req := &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}

	if options.Version != "" {
		req.VersionId = aws.String(options.Version)
	}

	resp, err := c.s3.GetObject(ctx, req)

	if err != nil {
		return nil, convertError(err)
	}

	return &storage.Object{
		Bucket: bucket,
		Key:    key,

		Version:     aws.ToString(resp.VersionId),
		ContentType: aws.ToString(resp.ContentType),
		Content:     resp.Body,
	}, nil
}

func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

func convertError(err error) error {
	var apiErr smithy.APIError

	if !errors.As(err, &apiErr) {
		return err
	}

	switch apiErr.ErrorCode() {
	case "NotFound", "NoSuchKey", "NoSuchBucket":
		return fmt.Errorf("%w: %w", storage.ErrNotFound, err)

	case "Forbidden", "AccessDenied":
		return fmt.Errorf("%w: %w", storage.ErrAccessDenied, err)
	}

	return err
}
