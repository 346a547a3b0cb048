package config

import (
	"net/http"
	"net/url"
)

type proxyConfig struct {
	URL string `yaml:"url"`
}

func (cfg *proxyConfig) proxyTransport() (*http.Transport, error) {
	tr := http.DefaultTransport.(*http.Transport).Clone()

	if cfg == nil || cfg.URL == "" {
		return tr, nil
	}

	proxyURL, err := url.Parse(cfg.URL)

	if err != nil {
		return nil, err
	}

	tr.Proxy = http.ProxyURL(proxyURL)

	return tr, nil
}

// proxyClient returns a client with its own transport, so closing its idle
// connections does not affect other invocations.
func (cfg *proxyConfig) proxyClient() (*http.Client, error) {
	transport, err := cfg.proxyTransport()

	if err != nil {
		return nil, err
	}

	return &http.Client{
		Transport: transport,
	}, nil
}
