package tool

import (
	"net/http"
	"time"
)

var (
	DefaultTimeout       = 30 * time.Second
	ConnectionHttpClient *http.Client
)

func init() {
	ConnectionHttpClient = NewHTTPClient()
}

// NewHTTPClient creates the HTTP client used for outgoing API calls (Flickr).
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: DefaultTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        50,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

func GetHttpClient() *http.Client {
	return ConnectionHttpClient
}
