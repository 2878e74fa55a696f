package docln

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"docln-downloader/config"
	"docln-downloader/model"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
)

var (
	ErrTitleNotFound   = errors.New("novel title not found")
	ErrAuthorNotFound  = errors.New("novel author not found")
	ErrContentNotFound = errors.New("chapter content not found")
)

// UnknownVolumeTitle names volumes whose listing entry has no title.
const UnknownVolumeTitle = "Tập không tên"

const (
	authorLabel      = "Tác giả:"
	illustratorLabel = "Họa sĩ:"
)

var backgroundURL = regexp.MustCompile(`url\(\s*['"]?([^'")]+?)['"]?\s*\)`)

// Docln reads novel listings and chapters from docln.net.
type Docln struct {
	cfg    *config.Config
	client *resty.Client
}

func New(cfg *config.Config, client *resty.Client) *Docln {
	return &Docln{cfg: cfg, client: client}
}

func (d *Docln) GetNovel(ctx context.Context, novelId int) (*model.Novel, error) {
	novelUrl := d.cfg.NovelURL(novelId)
	log.Info("Getting novel", "id", novelId, "url", novelUrl)

	body, err := d.get(ctx, novelUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to get novel info: %w", err)
	}

	novel, err := ParseNovel(bytes.NewReader(body), novelUrl)
	if err != nil {
		return nil, err
	}
	novel.Id = novelId
	return novel, nil
}

func (d *Docln) GetChapter(ctx context.Context, chapter *model.Chapter) ([]string, error) {
	log.Debug("Getting chapter", "title", chapter.Title, "url", chapter.Url)

	body, err := d.get(ctx, chapter.Url)
	if err != nil {
		return nil, fmt.Errorf("failed to get chapter: %w", err)
	}
	return ParseChapter(bytes.NewReader(body))
}

func (d *Docln) get(ctx context.Context, url string) ([]byte, error) {
	resp, err := d.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%s: %v", url, resp.Status())
	}
	return resp.Body(), nil
}

// ParseNovel reads a listing page. Relative chapter and image URLs are
// resolved against novelUrl.
func ParseNovel(r io.Reader, novelUrl string) (*model.Novel, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	base, err := url.Parse(novelUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse novel url: %w", err)
	}

	novel := &model.Novel{Url: novelUrl}

	novel.Title = strings.TrimSpace(doc.Find("span.series-name > a").First().Text())
	if novel.Title == "" {
		return nil, ErrTitleNotFound
	}

	doc.Find("div.info-item").Each(func(i int, s *goquery.Selection) {
		name := s.Find("span.info-name").First().Text()
		value := strings.TrimSpace(s.Find("span.info-value > a").First().Text())
		switch {
		case strings.Contains(name, authorLabel):
			novel.Author = value
		case strings.Contains(name, illustratorLabel):
			novel.Illustrator = value
		}
	})
	if novel.Author == "" {
		return nil, ErrAuthorNotFound
	}

	summary := []string{}
	doc.Find("div.summary-content > p").Each(func(i int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			summary = append(summary, text)
		}
	})
	novel.Summary = strings.Join(summary, "\n")

	novel.CoverUrl = resolveURL(base, styleImageURL(doc.Find("div.content.img-in-ratio").First()))

	doc.Find("section#list-vol ol.list-volume li").Each(func(i int, s *goquery.Selection) {
		volumeId := strings.TrimPrefix(strings.TrimSpace(s.AttrOr("data-scrollto", "")), "#")
		if volumeId == "" {
			return
		}
		title := strings.TrimSpace(s.Find("span.list_vol-title").First().Text())
		if title == "" {
			title = UnknownVolumeTitle
		}

		volume := &model.Volume{Title: title, VolumeId: volumeId}
		section := doc.Find("header").FilterFunction(func(_ int, h *goquery.Selection) bool {
			return h.AttrOr("id", "") == volumeId
		}).First().Parent()
		if section.Length() > 0 {
			volume.CoverUrl = resolveURL(base, styleImageURL(section.Find("div.volume-cover div.content.img-in-ratio").First()))
			volume.Chapters = parseChapters(section, base)
		}
		novel.Volumes = append(novel.Volumes, volume)
	})

	doc.Find("div.series-gernes > a").Each(func(i int, s *goquery.Selection) {
		if tag := strings.TrimSpace(s.Text()); tag != "" {
			novel.Tags = append(novel.Tags, tag)
		}
	})

	return novel, nil
}

func parseChapters(section *goquery.Selection, base *url.URL) []*model.Chapter {
	chapters := []*model.Chapter{}
	section.Find("ul.list-chapters").First().Find("li").Each(func(i int, s *goquery.Selection) {
		name := s.Find("div.chapter-name").First()
		link := name.Find("a").First()
		title := strings.TrimSpace(link.Text())
		href := strings.TrimSpace(link.AttrOr("href", ""))
		if title == "" || href == "" {
			return
		}
		chapters = append(chapters, &model.Chapter{
			Title:            title,
			Url:              resolveURL(base, href),
			HasIllustrations: name.Find("i").Length() > 0,
		})
	})
	return chapters
}

// ParseChapter returns the outer HTML of every paragraph of the chapter body.
func ParseChapter(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	content := doc.Find("div#chapter-content").First()
	if content.Length() == 0 {
		return nil, ErrContentNotFound
	}

	paragraphs := []string{}
	var parseErr error
	content.Find("p").EachWithBreak(func(i int, s *goquery.Selection) bool {
		html, err := goquery.OuterHtml(s)
		if err != nil {
			parseErr = fmt.Errorf("failed to render paragraph: %w", err)
			return false
		}
		paragraphs = append(paragraphs, html)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return paragraphs, nil
}

// styleImageURL extracts the image of a background-image: url('…') style.
func styleImageURL(s *goquery.Selection) string {
	match := backgroundURL.FindStringSubmatch(s.AttrOr("style", ""))
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}

func resolveURL(base *url.URL, ref string) string {
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
