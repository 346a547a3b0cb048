package s3_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adrianliechti/docscan/pkg/storage"
	"github.com/adrianliechti/docscan/pkg/storage/s3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *s3.Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := s3.New(context.Background(),
		s3.WithEndpoint(server.URL),
		s3.WithConfig(aws.Config{
			Region:      "us-east-1",
			Credentials: aws.AnonymousCredentials{},
		}),
	)

	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	return c
}

func TestMetadata(t *testing.T) {
	var gotMethod, gotPath string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("ETag", `"abc123"`)
		w.Header().Set("x-amz-version-id", "v1")
		w.WriteHeader(http.StatusOK)
	})

	meta, err := c.Metadata(context.Background(), "inbox", "scans/invoice.pdf")
	require.NoError(t, err)

	require.Equal(t, http.MethodHead, gotMethod)
	require.Equal(t, "/inbox/scans/invoice.pdf", gotPath)

	require.Equal(t, "application/pdf", meta.ContentType)
	require.Equal(t, `"abc123"`, meta.ETag)
	require.Equal(t, "v1", meta.VersionID)
}

func TestMetadataNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Metadata(context.Background(), "inbox", "missing.pdf")

	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestMetadataForbidden(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := c.Metadata(context.Background(), "inbox", "secret.pdf")

	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrAccessDenied)
}

func TestObject(t *testing.T) {
	var gotMethod string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method

		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("png-bytes"))
	})

	obj, err := c.Object(context.Background(), "inbox", "scan.png", nil)
	require.NoError(t, err)

	defer obj.Content.Close()

	data, err := io.ReadAll(obj.Content)
	require.NoError(t, err)

	require.Equal(t, http.MethodGet, gotMethod)
	require.Equal(t, "inbox", obj.Bucket)
	require.Equal(t, "scan.png", obj.Key)
	require.Equal(t, "image/png", obj.ContentType)
	require.Equal(t, "png-bytes", string(data))
}

func TestObjectNoSuchKey(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`))
	})

	_, err := c.Object(context.Background(), "inbox", "missing.png", nil)

	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestObjectVersion(t *testing.T) {
	var gotVersion string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotVersion = r.URL.Query().Get("versionId")

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("x-amz-version-id", "v3")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("%PDF"))
	})

	obj, err := c.Object(context.Background(), "inbox", "scan.pdf", &storage.ObjectOptions{Version: "v3"})
	require.NoError(t, err)

	defer obj.Content.Close()

	require.Equal(t, "v3", gotVersion)
	require.Equal(t, "v3", obj.Version)
}
