package epub

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"docln-downloader/model"
	"docln-downloader/template"

	"github.com/a-h/templ"
	"github.com/charmbracelet/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Stylesheet as seen from a content document.
var stylesheetRef = fromDocument(StyleFile)

// ResolveFunc stores the seq-th illustration of a chapter found at src.
type ResolveFunc func(ctx context.Context, src string, seq int) (*Asset, error)

// RewriteIllustrations points every <img> of the fragments at a local copy.
// Fragments without images are returned untouched. Sequence numbers only
// advance on success; an image whose fetch fails keeps its remote src.
func RewriteIllustrations(ctx context.Context, fragments []string, resolve ResolveFunc) ([]string, []*Asset, error) {
	out := make([]string, 0, len(fragments))
	assets := []*Asset{}
	seq := 1

	for _, fragment := range fragments {
		if !strings.Contains(strings.ToLower(fragment), "<img") {
			out = append(out, fragment)
			continue
		}

		nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
			Type:     html.ElementNode,
			Data:     "body",
			DataAtom: atom.Body,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse paragraph: %w", err)
		}

		var visit func(n *html.Node) error
		visit = func(n *html.Node) error {
			if n.Type == html.ElementNode && n.DataAtom == atom.Img {
				src := attr(n, "src")
				if src == "" {
					src = attr(n, "data-src")
				}
				if src != "" {
					asset, err := resolve(ctx, src, seq)
					if err != nil {
						if !IsFetchError(err) {
							return err
						}
						log.Warn("Keeping remote illustration", "url", src, "err", err)
					} else if asset != nil {
						setAttr(n, "src", asset.Ref)
						removeAttr(n, "data-src")
						if attr(n, "alt") == "" {
							setAttr(n, "alt", fmt.Sprintf("illustration %03d", seq))
						}
						assets = append(assets, asset)
						seq++
					}
				}
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if err := visit(c); err != nil {
					return err
				}
			}
			return nil
		}

		b := strings.Builder{}
		for _, n := range nodes {
			if err := visit(n); err != nil {
				return nil, nil, err
			}
			if err := html.Render(&b, n); err != nil {
				return nil, nil, fmt.Errorf("failed to render paragraph: %w", err)
			}
		}
		out = append(out, b.String())
	}

	return out, assets, nil
}

// BuildChapter renders a chapter into text/volume_VVV/chapter_CCC.xhtml and
// records the result on chapter. Every chapter is scanned for images; the
// HasIllustrations hint from the listing only affects logging.
func BuildChapter(ctx context.Context, r *Resolver, volume, chapterNo int, chapter *model.Chapter, fragments []string) error {
	base, _ := url.Parse(chapter.Url)
	resolve := func(ctx context.Context, src string, seq int) (*Asset, error) {
		return r.Resolve(ctx, absoluteURL(base, src), Illustration(volume, chapterNo, seq))
	}
	paragraphs, assets, err := RewriteIllustrations(ctx, fragments, resolve)
	if err != nil {
		return err
	}
	if len(assets) > 0 && !chapter.HasIllustrations {
		log.Debug("Found illustrations in unflagged chapter", "title", chapter.Title, "count", len(assets))
	}

	docPath := ChapterDocPath(volume, chapterNo)
	component := template.ContentXHTML(chapter.Title, stylesheetRef, strings.Join(paragraphs, "\n"))
	if err := renderFile(oebpsPath(r.Root(), docPath), component); err != nil {
		return fmt.Errorf("failed to write chapter %s: %w", chapter.Title, err)
	}

	chapter.ContentPath = docPath
	chapter.Paragraphs = paragraphs
	chapter.Illustrations = make([]string, 0, len(assets))
	for _, asset := range assets {
		chapter.Illustrations = append(chapter.Illustrations, asset.Path)
	}
	return nil
}

// BuildVolumeCover renders the cover page of a volume whose cover was stored.
func BuildVolumeCover(root string, volumeNo int, volume *model.Volume) error {
	if volume.CoverPath == "" {
		return nil
	}
	component := template.CoverXHTML(volume.Title, stylesheetRef, fromDocument(volume.CoverPath))
	if err := renderFile(oebpsPath(root, VolumeCoverDocPath(volumeNo)), component); err != nil {
		return fmt.Errorf("failed to write volume cover %s: %w", volume.Title, err)
	}
	return nil
}

// renderFile writes a finished document. Rendering is not tied to the job
// context so a chapter fetched before cancellation still lands on disk.
func renderFile(fullPath string, component templ.Component) error {
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	file, err := os.Create(fullPath)
	if err != nil {
		return err
	}
	if err := component.Render(context.Background(), file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func absoluteURL(base *url.URL, src string) string {
	if base == nil || !base.IsAbs() {
		return src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return src
	}
	return base.ResolveReference(ref).String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Key != key {
			attrs = append(attrs, a)
		}
	}
	n.Attr = attrs
}
