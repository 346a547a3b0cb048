package config

import (
	"context"
	"errors"
	"strings"

	"github.com/adrianliechti/docscan/pkg/detector"
	"github.com/adrianliechti/docscan/pkg/detector/azure"
	"github.com/adrianliechti/docscan/pkg/detector/textract"
	"github.com/adrianliechti/docscan/pkg/limiter"
	"github.com/adrianliechti/docscan/pkg/otel"
	"github.com/adrianliechti/docscan/pkg/storage"
)

type detectorConfig struct {
	Type string `yaml:"type"`

	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`
	Model string `yaml:"model"`

	Tag    string `yaml:"tag"`
	KMSKey string `yaml:"kms_key"`

	SNSTopic string `yaml:"sns_topic"`
	SNSRole  string `yaml:"sns_role"`

	OutputBucket string `yaml:"output_bucket"`
	OutputPrefix string `yaml:"output_prefix"`

	Proxy *proxyConfig `yaml:"proxy"`

	Limit *int `yaml:"limit"`
}

func (cfg *Config) registerDetector(f *configFile) error {
	c := f.Detector

	switch strings.ToLower(c.Type) {
	case "", "textract":
		c.Type = "textract"

		if c.SNSTopic != "" && c.SNSRole == "" {
			return errors.New("detector sns_topic requires sns_role")
		}

	case "azure":
		c.Type = "azure"

		if c.URL == "" {
			return errors.New("azure detector requires url")
		}

	default:
		return errors.New("invalid detector type: " + c.Type)
	}

	if c.Limit != nil && *c.Limit <= 0 {
		return errors.New("invalid detector limit")
	}

	cfg.detector = c

	return nil
}

func (cfg *Config) createDetector(ctx context.Context, s storage.Provider) (detector.Provider, error) {
	var d detector.Provider
	var err error

	switch cfg.detector.Type {
	case "azure":
		d, err = azureDetector(cfg.detector, s)

	default:
		d, err = textractDetector(ctx, cfg.detector)
	}

	if err != nil {
		return nil, err
	}

	if _, ok := d.(limiter.Detector); !ok {
		d = limiter.NewDetector(createLimiter(cfg.detector.Limit), d)
	}

	if _, ok := d.(otel.Detector); !ok {
		d = otel.NewDetector(cfg.detector.Type, d)
	}

	return d, nil
}

func textractDetector(ctx context.Context, cfg detectorConfig) (detector.Provider, error) {
	client, err := cfg.Proxy.proxyClient()

	if err != nil {
		return nil, err
	}

	options := []textract.Option{
		textract.WithClient(client),
	}

	if cfg.Region != "" {
		options = append(options, textract.WithRegion(cfg.Region))
	}

	if cfg.Endpoint != "" {
		options = append(options, textract.WithEndpoint(cfg.Endpoint))
	}

	if cfg.Tag != "" {
		options = append(options, textract.WithJobTag(cfg.Tag))
	}

	if cfg.KMSKey != "" {
		options = append(options, textract.WithKMSKey(cfg.KMSKey))
	}

	if cfg.SNSTopic != "" {
		options = append(options, textract.WithNotification(cfg.SNSTopic, cfg.SNSRole))
	}

	if cfg.OutputBucket != "" {
		options = append(options, textract.WithOutput(cfg.OutputBucket, cfg.OutputPrefix))
	}

	return textract.New(ctx, options...)
}

func azureDetector(cfg detectorConfig, s storage.Provider) (detector.Provider, error) {
	client, err := cfg.Proxy.proxyClient()

	if err != nil {
		return nil, err
	}

	options := []azure.Option{
		azure.WithClient(client),
	}

	if cfg.Token != "" {
		options = append(options, azure.WithToken(cfg.Token))
	}

	if cfg.Model != "" {
		options = append(options, azure.WithModel(cfg.Model))
	}

	return azure.New(cfg.URL, s, options...)
}
