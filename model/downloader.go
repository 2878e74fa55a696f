package model

import "context"

// Fetcher retrieves the raw bytes behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Source scrapes a novel listing and the paragraphs of single chapters.
type Source interface {
	GetNovel(ctx context.Context, novelId int) (*Novel, error)
	GetChapter(ctx context.Context, chapter *Chapter) ([]string, error)
}
