package config

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"

	"github.com/adrianliechti/docscan/pkg/job"
	"github.com/adrianliechti/docscan/pkg/processor"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Address string

	Log LogConfig

	storage  storageConfig
	detector detectorConfig

	jobOptions []job.Option
}

// Parse reads the configuration file at path. An empty path yields the
// defaults: S3 storage and Textract detection in the ambient AWS region.
func Parse(path string) (*Config, error) {
	file := &configFile{}

	if path != "" {
		f, err := parseFile(path)

		if err != nil {
			return nil, err
		}

		file = f
	}

	c := &Config{
		Address: ":8080",
	}

	if err := c.registerServer(file); err != nil {
		return nil, err
	}

	if err := c.registerLog(file); err != nil {
		return nil, err
	}

	if err := c.registerStorage(file); err != nil {
		return nil, err
	}

	if err := c.registerDetector(file); err != nil {
		return nil, err
	}

	if err := c.registerJob(file); err != nil {
		return nil, err
	}

	return c, nil
}

type configFile struct {
	Server serverConfig `yaml:"server"`
	Log    logConfig    `yaml:"log"`

	Storage  storageConfig  `yaml:"storage"`
	Detector detectorConfig `yaml:"detector"`

	Job jobConfig `yaml:"job"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		if errors.Is(err, io.EOF) {
			return &config, nil
		}

		return nil, err
	}

	return &config, nil
}

type serverConfig struct {
	Address string `yaml:"address"`
}

func (cfg *Config) registerServer(f *configFile) error {
	if f.Server.Address != "" {
		cfg.Address = f.Server.Address
	}

	return nil
}

// JobOptions returns the controller settings from the job section.
func (cfg *Config) JobOptions() []job.Option {
	return cfg.jobOptions
}

// Clients creates the storage and detector clients for one invocation.
// The caller owns them and must close them.
func (cfg *Config) Clients(ctx context.Context) (*processor.Clients, error) {
	s, err := cfg.createStorage(ctx)

	if err != nil {
		return nil, err
	}

	d, err := cfg.createDetector(ctx, s)

	if err != nil {
		(&processor.Clients{Storage: s}).Close()
		return nil, err
	}

	return &processor.Clients{
		Storage:  s,
		Detector: d,
	}, nil
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil {
		return nil
	}

	return rate.NewLimiter(rate.Limit(*limit), *limit)
}
