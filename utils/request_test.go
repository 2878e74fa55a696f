package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRestyFetcher_Fetch(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Header.Get("Referer") != "https://docln.net" {
			t.Errorf("missing referer header: %q", r.Header.Get("Referer"))
		}
		if r.URL.Path == "/missing.jpg" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("image-bytes"))
	}))
	defer server.Close()

	fetcher := NewRestyFetcher(NewRestyClient(5*time.Second, "test-agent"), "https://docln.net")

	for i := 0; i < 2; i++ {
		data, err := fetcher.Fetch(context.Background(), server.URL+"/cover.jpg")
		if err != nil {
			t.Fatalf("failed to fetch: %v", err)
		}
		if string(data) != "image-bytes" {
			t.Fatalf("unexpected body: %q", data)
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("expected cached second fetch, server was hit %d times", hits.Load())
	}

	if _, err := fetcher.Fetch(context.Background(), server.URL+"/missing.jpg"); err == nil {
		t.Fatalf("expected error for 404")
	}
}
