package utils

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/patrickmn/go-cache"
)

const (
	fetchCacheExpiration = 30 * time.Minute
	fetchCacheCleanup    = time.Hour
)

// NewRestyClient builds the client shared by the scraper and the image fetcher.
// Requests are bounded by timeout and never retried.
func NewRestyClient(timeout time.Duration, userAgent string) *resty.Client {
	client := resty.New()
	client.SetTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: timeout,
		}).DialContext,
		TLSHandshakeTimeout: timeout,
	})
	client.SetTimeout(timeout).
		SetRetryCount(0).
		SetLogger(disableLogger{}).
		SetHeader("Accept-Charset", "utf-8").
		SetHeader("User-Agent", userAgent)
	return client
}

// RestyFetcher implements model.Fetcher over HTTP. Successful bodies are kept
// in memory so a cover shared by the novel and a volume is downloaded once.
type RestyFetcher struct {
	client  *resty.Client
	referer string
	cache   *cache.Cache
}

func NewRestyFetcher(client *resty.Client, referer string) *RestyFetcher {
	return &RestyFetcher{
		client:  client,
		referer: referer,
		cache:   cache.New(fetchCacheExpiration, fetchCacheCleanup),
	}
}

func (f *RestyFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if data, ok := f.cache.Get(url); ok {
		return data.([]byte), nil
	}

	req := f.client.R().SetContext(ctx)
	if f.referer != "" {
		req.SetHeader("Referer", f.referer)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", url, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("failed to get %s: %v", url, resp.Status())
	}

	data := resp.Body()
	f.cache.Set(url, data, cache.DefaultExpiration)
	return data, nil
}

type disableLogger struct{}

func (d disableLogger) Errorf(string, ...interface{}) {}
func (d disableLogger) Warnf(string, ...interface{})  {}
func (d disableLogger) Debugf(string, ...interface{}) {}
