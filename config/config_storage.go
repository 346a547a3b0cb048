package config

import (
	"context"
	"errors"
	"strings"

	"github.com/adrianliechti/docscan/pkg/otel"
	"github.com/adrianliechti/docscan/pkg/storage"
	"github.com/adrianliechti/docscan/pkg/storage/s3"
)

type storageConfig struct {
	Type string `yaml:"type"`

	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`

	Proxy *proxyConfig `yaml:"proxy"`
}

func (cfg *Config) registerStorage(f *configFile) error {
	switch strings.ToLower(f.Storage.Type) {
	case "", "s3":
		cfg.storage = f.Storage
		cfg.storage.Type = "s3"

	default:
		return errors.New("invalid storage type: " + f.Storage.Type)
	}

	return nil
}

func (cfg *Config) createStorage(ctx context.Context) (storage.Provider, error) {
	client, err := cfg.storage.Proxy.proxyClient()

	if err != nil {
		return nil, err
	}

	options := []s3.Option{
		s3.WithClient(client),
	}

	if cfg.storage.Region != "" {
		options = append(options, s3.WithRegion(cfg.storage.Region))
	}

	if cfg.storage.Endpoint != "" {
		options = append(options, s3.WithEndpoint(cfg.storage.Endpoint))
	}

	s, err := s3.New(ctx, options...)

	if err != nil {
		return nil, err
	}

	return otel.NewStorage(cfg.storage.Type, s), nil
}
