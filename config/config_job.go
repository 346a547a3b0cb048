package config

import (
	"errors"
	"time"

	"github.com/adrianliechti/docscan/pkg/job"
)

// maxPageSize is the largest page Textract returns.
const maxPageSize = 1000

type jobConfig struct {
	Interval string `yaml:"interval"`
	MaxWait  string `yaml:"max_wait"`

	PageSize int `yaml:"page_size"`
}

func (cfg *Config) registerJob(f *configFile) error {
	var options []job.Option

	if f.Job.Interval != "" {
		interval, err := time.ParseDuration(f.Job.Interval)

		if err != nil {
			return err
		}

		if interval <= 0 {
			return errors.New("invalid job interval: " + f.Job.Interval)
		}

		options = append(options, job.WithInterval(interval))
	}

	if f.Job.MaxWait != "" {
		wait, err := time.ParseDuration(f.Job.MaxWait)

		if err != nil {
			return err
		}

		if wait < 0 {
			return errors.New("invalid job max_wait: " + f.Job.MaxWait)
		}

		options = append(options, job.WithMaxWait(wait))
	}

	if f.Job.PageSize < 0 || f.Job.PageSize > maxPageSize {
		return errors.New("invalid job page_size")
	}

	if f.Job.PageSize > 0 {
		options = append(options, job.WithPageSize(f.Job.PageSize))
	}

	cfg.jobOptions = options

	return nil
}
