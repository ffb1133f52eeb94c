package utils

import (
	"crypto/tls"
	"net/http"
	"time"
)

type HTTPClientConfig struct {
	Timeout   time.Duration
	KATimeout time.Duration
	VerifySSL bool
	UserAgent string
	Headers   map[string]string
}

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
	SetHeader(key, value string)
}

type GrabHTTPClient struct {
	client *http.Client
	config HTTPClientConfig
}

func NewGrabHTTPClient(cfg HTTPClientConfig) *GrabHTTPClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.KATimeout == 0 {
		cfg.KATimeout = 60 * time.Second
	}
	if cfg.Headers == nil {
		cfg.Headers = make(map[string]string)
	}
	for k, v := range defaultHeaders {
		if _, ok := cfg.Headers[k]; !ok {
			cfg.Headers[k] = v
		}
	}
	transport := &http.Transport{
		IdleConnTimeout:     cfg.KATimeout,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		MaxConnsPerHost:     0,
	}
	if !cfg.VerifySSL {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &GrabHTTPClient{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		config: cfg,
	}
}

func (g *GrabHTTPClient) SetHeader(key, value string) {
	g.config.Headers[key] = value
}

func (g *GrabHTTPClient) Do(req *http.Request) (*http.Response, error) {
	if g.config.UserAgent != "" {
		req.Header.Set("User-Agent", g.config.UserAgent)
	} else {
		req.Header.Set("User-Agent", DefaultUserAgent)
	}
	for k, v := range g.config.Headers {
		req.Header.Set(k, v)
	}
	return g.client.Do(req)
}
