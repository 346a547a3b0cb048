package textract

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/adrianliechti/docscan/pkg/detector"

	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/aws/smithy-go"
)

var _ detector.Provider = (*Client)(nil)

// maxResults is the largest page GetDocumentTextDetection returns.
const maxResults = 1000

type Client struct {
	region   string
	endpoint string

	tag    string
	kmsKey string

	topicARN string
	roleARN  string

	outputBucket string
	outputPrefix string

	client *http.Client
	config *aws.Config

	textract *textract.Client
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

	c.textract = textract.NewFromConfig(*c.config, func(o *textract.Options) {
		o.HTTPClient = c.client

		if c.region != "" {
			o.Region = c.region
		}

		if c.endpoint != "" {
			o.BaseEndpoint = aws.String(c.endpoint)
		}
	})

	return c, nil
}

func (c *Client) Start(ctx context.Context, input detector.Document) (string, error) {
	req := &textract.StartDocumentTextDetectionInput{
		DocumentLocation: &types.DocumentLocation{
			S3Object: &types.S3Object{
				Bucket: aws.String(input.Bucket),
				Name:   aws.String(input.Key),
			},
		},

		ClientRequestToken: aws.String(uuid.NewString()),
	}

	if input.Version != "" {
		req.DocumentLocation.S3Object.Version = aws.String(input.Version)
	}

	if c.tag != "" {
		req.JobTag = aws.String(c.tag)
	}

	if c.kmsKey != "" {
		req.KMSKeyId = aws.String(c.kmsKey)
	}

	if c.topicARN != "" {
		req.NotificationChannel = &types.NotificationChannel{
			SNSTopicArn: aws.String(c.topicARN),
			RoleArn:     aws.String(c.roleARN),
		}
	}

	if c.outputBucket != "" {
		req.OutputConfig = &types.OutputConfig{
			S3Bucket: aws.String(c.outputBucket),
		}

		if c.outputPrefix != "" {
			req.OutputConfig.S3Prefix = aws.String(c.outputPrefix)
		}
	}

	resp, err := c.textract.StartDocumentTextDetection(ctx, req)

	if err != nil {
		return "", convertError(err)
	}

	id := aws.ToString(resp.JobId)

	if id == "" {
		return "", errors.New("missing job id")
	}

	return id, nil
}

func (c *Client) Get(ctx context.Context, id string, options *detector.GetOptions) (*detector.Result, error) {
	if options == nil {
		options = new(detector.GetOptions)
	}

	req := &textract.GetDocumentTextDetectionInput{
		JobId: aws.String(id),
	}

	if options.NextToken != "" {
		req.NextToken = aws.String(options.NextToken)
	}

	if options.MaxResults > 0 {
		req.MaxResults = aws.Int32(int32(min(options.MaxResults, maxResults)))
	}

	resp, err := c.textract.GetDocumentTextDetection(ctx, req)

	if err != nil {
		return nil, convertError(err)
	}

	result := &detector.Result{
		Status:        detector.Status(resp.JobStatus),
		StatusMessage: aws.ToString(resp.StatusMessage),

		NextToken: aws.ToString(resp.NextToken),
	}

	if resp.DocumentMetadata != nil {
		result.Pages = int(aws.ToInt32(resp.DocumentMetadata.Pages))
	}

	for _, b := range resp.Blocks {
		result.Blocks = append(result.Blocks, detector.Block{
			ID:   aws.ToString(b.Id),
			Type: detector.BlockType(b.BlockType),

			Page: int(aws.ToInt32(b.Page)),
			Text: aws.ToString(b.Text),

			Confidence: float64(aws.ToFloat32(b.Confidence)),
		})
	}

	return result, nil
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
	case "InvalidS3ObjectException":
		return fmt.Errorf("%w: %w", detector.ErrInvalidObject, err)

	case "InvalidJobIdException":
		return fmt.Errorf("%w: %w", detector.ErrInvalidJob, err)
	}

	return err
}
