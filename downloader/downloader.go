package downloader

import (
	"context"
	"fmt"
	"os"
	"time"

	"docln-downloader/config"
	"docln-downloader/downloader/docln"
	"docln-downloader/epub"
	"docln-downloader/model"
	"docln-downloader/text"
	"docln-downloader/utils"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Downloader runs one conversion job per novel: scrape, render into a
// working tree, assemble and archive.
type Downloader struct {
	cfg     *config.Config
	source  model.Source
	fetcher model.Fetcher
	writer  *epub.Writer
}

func New(cfg *config.Config, source model.Source, fetcher model.Fetcher) *Downloader {
	return &Downloader{
		cfg:     cfg,
		source:  source,
		fetcher: fetcher,
		writer:  epub.NewWriter(cfg.Language),
	}
}

// DownloadNovel downloads a novel from docln.net and returns the path of the
// created epub.
func DownloadNovel(ctx context.Context, cfg *config.Config, novelId int) (string, error) {
	client := utils.NewRestyClient(cfg.Timeout, cfg.UserAgent)
	d := New(cfg, docln.New(cfg, client), utils.NewRestyFetcher(client, cfg.BaseURL+"/"))
	return d.Download(ctx, novelId)
}

// Download fetches the listing, renders every reachable chapter and packs the
// result. Chapters that cannot be fetched are left out. When ctx is cancelled
// no further request is made and whatever was rendered so far is still packed.
func (d *Downloader) Download(ctx context.Context, novelId int) (string, error) {
	log.Info("Downloading novel", "id", novelId)

	novel, err := d.source.GetNovel(ctx, novelId)
	if err != nil {
		return "", fmt.Errorf("failed to get novel info: %w", err)
	}
	log.Info("Got novel", "title", novel.Title, "author", novel.Author, "volumes", len(novel.Volumes))

	root := epub.WorkDir(d.cfg.OutputPath, novelId)
	if err := os.RemoveAll(root); err != nil {
		return "", fmt.Errorf("failed to clean working directory: %w", err)
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return "", fmt.Errorf("failed to create working directory: %w", err)
	}

	resolver := epub.NewResolver(root, d.fetcher)
	if err := d.resolveCovers(ctx, resolver, novel); err != nil {
		return "", err
	}

	limiter := newLimiter(d.cfg.ChapterDelay)
	for i, volume := range novel.Volumes {
		if err := d.downloadVolume(ctx, resolver, limiter, i+1, volume); err != nil {
			return "", fmt.Errorf("failed to download volume %s: %w", volume.Title, err)
		}
	}
	if ctx.Err() != nil {
		log.Warn("Download interrupted, packing rendered chapters", "err", ctx.Err())
	}

	if d.cfg.Text {
		if err := text.PackNovelToText(novel, d.cfg.OutputPath); err != nil {
			return "", fmt.Errorf("failed to export text: %w", err)
		}
	}

	savePath, err := epub.PackNovelToEpub(novel, root, d.writer)
	if err != nil {
		return "", err
	}
	return savePath, nil
}

func (d *Downloader) resolveCovers(ctx context.Context, resolver *epub.Resolver, novel *model.Novel) error {
	asset, err := resolver.Resolve(ctx, novel.CoverUrl, epub.NovelCover())
	if err != nil && !epub.IsFetchError(err) {
		return fmt.Errorf("failed to save cover: %w", err)
	}
	if err != nil {
		log.Warn("Failed to download cover", "err", err)
	}
	if asset != nil {
		novel.CoverPath = asset.Path
	}

	for i, volume := range novel.Volumes {
		asset, err := resolver.Resolve(ctx, volume.CoverUrl, epub.VolumeCover(i+1, volume.Title))
		if err != nil && !epub.IsFetchError(err) {
			return fmt.Errorf("failed to save cover of %s: %w", volume.Title, err)
		}
		if err != nil {
			log.Warn("Failed to download volume cover", "volume", volume.Title, "err", err)
		}
		if asset != nil {
			volume.CoverPath = asset.Path
		}
	}
	return nil
}

// downloadVolume fetches the chapters of one volume, at most
// cfg.Concurrency at a time. Only filesystem failures abort the volume.
func (d *Downloader) downloadVolume(ctx context.Context, resolver *epub.Resolver, limiter *rate.Limiter, volumeNo int, volume *model.Volume) error {
	log.Info("Downloading volume", "title", volume.Title, "chapters", len(volume.Chapters))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(d.cfg.Concurrency)

	for i, chapter := range volume.Chapters {
		if egCtx.Err() != nil {
			break
		}
		chapter := chapter
		chapterNo := i + 1
		eg.Go(func() error {
			if err := limiter.Wait(egCtx); err != nil {
				return nil
			}
			return d.downloadChapter(egCtx, resolver, volumeNo, chapterNo, chapter)
		})
	}

	return eg.Wait()
}

func (d *Downloader) downloadChapter(ctx context.Context, resolver *epub.Resolver, volumeNo, chapterNo int, chapter *model.Chapter) error {
	fragments, err := d.source.GetChapter(ctx, chapter)
	if err != nil {
		log.Warn("Skipping chapter", "title", chapter.Title, "err", err)
		return nil
	}

	if err := epub.BuildChapter(ctx, resolver, volumeNo, chapterNo, chapter, fragments); err != nil {
		return err
	}
	log.Info("Downloaded chapter", "title", chapter.Title, "illustrations", len(chapter.Illustrations))
	return nil
}

// newLimiter spaces chapter requests by delay; zero disables spacing.
func newLimiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}
