package s3_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/adrianliechti/docscan/pkg/storage"
	"github.com/adrianliechti/docscan/pkg/storage/s3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestLocalStack(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	ctx := context.Background()

	server, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		Started: true,

		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "localstack/localstack:3.8",
			ExposedPorts: []string{"4566/tcp"},

			Env: map[string]string{
				"SERVICES": "s3",
			},

			WaitingFor: wait.ForHTTP("/_localstack/health").WithPort("4566/tcp"),
		},
	})

	require.NoError(t, err)
	t.Cleanup(func() { testcontainers.TerminateContainer(server) })

	endpoint, err := server.PortEndpoint(ctx, "4566/tcp", "http")
	require.NoError(t, err)

	cfg := aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("test", "test", ""),
	}

	admin := awss3.NewFromConfig(cfg, func(o *awss3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	_, err = admin.CreateBucket(ctx, &awss3.CreateBucketInput{
		Bucket: aws.String("inbox"),
	})

	require.NoError(t, err)

	_, err = admin.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String("inbox"),
		Key:         aws.String("scans/receipt.pdf"),
		Body:        bytes.NewReader([]byte("%PDF-1.4")),
		ContentType: aws.String("application/pdf"),
	})

	require.NoError(t, err)

	c, err := s3.New(ctx, s3.WithEndpoint(endpoint), s3.WithConfig(cfg))
	require.NoError(t, err)

	defer c.Close()

	meta, err := c.Metadata(ctx, "inbox", "scans/receipt.pdf")
	require.NoError(t, err)

	require.Equal(t, "application/pdf", meta.ContentType)
	require.Equal(t, int64(8), meta.ContentLength)

	_, err = c.Metadata(ctx, "inbox", "scans/missing.pdf")
	require.ErrorIs(t, err, storage.ErrNotFound)
}
