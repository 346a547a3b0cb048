package azure_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adrianliechti/docscan/pkg/detector"
	"github.com/adrianliechti/docscan/pkg/detector/azure"
	"github.com/adrianliechti/docscan/pkg/processor"
	"github.com/adrianliechti/docscan/pkg/storage"

	"github.com/stretchr/testify/require"
)

type mockStorage struct {
	content []byte
	err     error

	versions []string
}

func (m *mockStorage) Metadata(ctx context.Context, bucket, key string) (*storage.Metadata, error) {
	return &storage.Metadata{ContentType: "application/pdf"}, m.err
}

func (m *mockStorage) Object(ctx context.Context, bucket, key string, options *storage.ObjectOptions) (*storage.Object, error) {
	if options != nil {
		m.versions = append(m.versions, options.Version)
	}

	if m.err != nil {
		return nil, m.err
	}

	return &storage.Object{
		Bucket: bucket,
		Key:    key,

		ContentType: "application/pdf",
		Content:     io.NopCloser(bytes.NewReader(m.content)),
	}, nil
}

func TestLifecycle(t *testing.T) {
	var uploaded []byte
	var polls int

	var server *httptest.Server

	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/documentintelligence/documentModels/prebuilt-read:analyze":
			uploaded, _ = io.ReadAll(r.Body)

			w.Header().Set("Operation-Location", server.URL+"/documentintelligence/documentModels/prebuilt-read/analyzeResults/op-1")
			w.WriteHeader(http.StatusAccepted)

		case r.Method == http.MethodGet && r.URL.Path == "/documentintelligence/documentModels/prebuilt-read/analyzeResults/op-1":
			polls++

			if polls == 1 {
				json.NewEncoder(w).Encode(map[string]any{"status": "running"})
				return
			}

			json.NewEncoder(w).Encode(map[string]any{
				"status": "succeeded",
				"analyzeResult": map[string]any{
					"pages": []map[string]any{
						{
							"pageNumber": 1,
							"lines":      []map[string]any{{"content": "Invoice 42"}},
							"words":      []map[string]any{{"content": "Invoice", "confidence": 0.98}, {"content": "42", "confidence": 0.95}},
						},
					},
				},
			})

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	defer server.Close()

	s := &mockStorage{content: []byte("%PDF")}

	c, err := azure.New(server.URL, s, azure.WithToken("secret"))
	require.NoError(t, err)

	ctx := context.Background()

	id, err := c.Start(ctx, detector.Document{Bucket: "inbox", Key: "invoice.pdf", Version: "v3"})
	require.NoError(t, err)
	require.Equal(t, "%PDF", string(uploaded))
	require.Equal(t, []string{"v3"}, s.versions)

	result, err := c.Get(ctx, id, nil)
	require.NoError(t, err)
	require.Equal(t, detector.StatusInProgress, result.Status)

	result, err = c.Get(ctx, id, nil)
	require.NoError(t, err)
	require.Equal(t, detector.StatusSucceeded, result.Status)
	require.Empty(t, result.NextToken)

	require.Len(t, result.Blocks, 4)
	require.Equal(t, detector.BlockTypePage, result.Blocks[0].Type)
	require.Equal(t, detector.Block{Type: detector.BlockTypeLine, Page: 1, Text: "Invoice 42"}, result.Blocks[1])
	require.Equal(t, "Invoice", result.Blocks[2].Text)
	require.InDelta(t, 98.0, result.Blocks[2].Confidence, 0.001)
}

func TestGetFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status": "failed",
			"error":  map[string]any{"code": "InvalidContent", "message": "The file is corrupted or format is unsupported."},
		})
	}))

	defer server.Close()

	c, err := azure.New(server.URL, &mockStorage{})
	require.NoError(t, err)

	result, err := c.Get(context.Background(), server.URL+"/documentintelligence/documentModels/prebuilt-read/analyzeResults/op-2", nil)
	require.NoError(t, err)

	require.Equal(t, detector.StatusFailed, result.Status)
	require.Contains(t, result.StatusMessage, "format is unsupported")
	require.Empty(t, result.Blocks)
}

func TestStartMissingObject(t *testing.T) {
	c, err := azure.New("http://localhost:1", &mockStorage{err: storage.ErrNotFound})
	require.NoError(t, err)

	_, err = c.Start(context.Background(), detector.Document{Bucket: "inbox", Key: "gone.pdf"})

	require.ErrorIs(t, err, detector.ErrInvalidObject)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetForeignJob(t *testing.T) {
	c, err := azure.New("http://localhost:1", &mockStorage{})
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "https://elsewhere.example.com/op", nil)

	require.ErrorIs(t, err, detector.ErrInvalidJob)
}

type recordingTransport struct {
	http.RoundTripper

	closed int
}

func (t *recordingTransport) CloseIdleConnections() {
	t.closed++
}

func TestClose(t *testing.T) {
	transport := &recordingTransport{RoundTripper: http.DefaultTransport}

	c, err := azure.New("http://localhost:1", &mockStorage{}, azure.WithClient(&http.Client{Transport: transport}))
	require.NoError(t, err)

	var _ io.Closer = c

	clients := &processor.Clients{
		Storage:  &mockStorage{},
		Detector: c,
	}

	require.NoError(t, clients.Close())
	require.Equal(t, 1, transport.closed)
}
