package azure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/adrianliechti/docscan/pkg/detector"
	"github.com/adrianliechti/docscan/pkg/storage"
)

var _ detector.Provider = &Client{}

// Client runs Document Intelligence analyze operations. The operation
// URL returned on submission serves as the job id.
type Client struct {
	client  *http.Client
	storage storage.Provider

	url   string
	token string
	model string
}

func New(url string, storage storage.Provider, options ...Option) (*Client, error) {
	if url == "" {
		return nil, errors.New("invalid url")
	}

	if storage == nil {
		return nil, errors.New("missing storage")
	}

	c := &Client{
		storage: storage,

		url:   url,
		model: "prebuilt-read",
	}

	for _, option := range options {
		option(c)
	}

	if c.client == nil {
		c.client = &http.Client{
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		}
	}

	return c, nil
}

func (c *Client) Start(ctx context.Context, input detector.Document) (string, error) {
	obj, err := c.storage.Object(ctx, input.Bucket, input.Key, &storage.ObjectOptions{
		Version: input.Version,
	})

	if err != nil {
		return "", fmt.Errorf("%w: %w", detector.ErrInvalidObject, err)
	}

	defer obj.Content.Close()

	u, _ := url.Parse(strings.TrimRight(c.url, "/") + "/documentintelligence/documentModels/" + c.model + ":analyze")

	query := u.Query()
	query.Set("api-version", "2024-11-30")

	u.RawQuery = query.Encode()

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), obj.Content)
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.token)

	resp, err := c.client.Do(req)

	if err != nil {
		return "", err
	}

	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnsupportedMediaType {
		return "", fmt.Errorf("%w: %w", detector.ErrInvalidObject, convertError(resp))
	}

	if resp.StatusCode != http.StatusAccepted {
		return "", convertError(resp)
	}

	operationURL := resp.Header.Get("Operation-Location")

	if operationURL == "" {
		return "", errors.New("missing operation location")
	}

	return operationURL, nil
}

func (c *Client) Get(ctx context.Context, id string, options *detector.GetOptions) (*detector.Result, error) {
	if !strings.HasPrefix(id, strings.TrimRight(c.url, "/")+"/") {
		return nil, detector.ErrInvalidJob
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, id, nil)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.token)

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %w", detector.ErrInvalidJob, convertError(resp))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	var operation AnalyzeOperation

	if err := json.NewDecoder(resp.Body).Decode(&operation); err != nil {
		return nil, err
	}

	result := &detector.Result{
		Status: toStatus(operation.Status),
	}

	if operation.Error != nil {
		result.StatusMessage = operation.Error.Message
	}

	if operation.Status != OperationStatusSucceeded || operation.Result == nil {
		return result, nil
	}

	result.Pages = len(operation.Result.Pages)

	for _, page := range operation.Result.Pages {
		result.Blocks = append(result.Blocks, detector.Block{
			Type: detector.BlockTypePage,
			Page: page.PageNumber,
		})

		for _, line := range page.Lines {
			result.Blocks = append(result.Blocks, detector.Block{
				Type: detector.BlockTypeLine,
				Page: page.PageNumber,
				Text: line.Content,
			})
		}

		for _, word := range page.Words {
			result.Blocks = append(result.Blocks, detector.Block{
				Type: detector.BlockTypeWord,
				Page: page.PageNumber,
				Text: word.Content,

				Confidence: word.Confidence * 100,
			})
		}
	}

	return result, nil
}

func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

func toStatus(s OperationStatus) detector.Status {
	switch s {
	case OperationStatusNotStarted, OperationStatusRunning:
		return detector.StatusInProgress

	case OperationStatusSucceeded:
		return detector.StatusSucceeded

	case OperationStatusFailed:
		return detector.StatusFailed
	}

	return detector.Status(strings.ToUpper(string(s)))
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	if len(data) == 0 {
		return errors.New(http.StatusText(resp.StatusCode))
	}

	return errors.New(string(data))
}
