package epub

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"docln-downloader/model"
	"docln-downloader/utils"

	"github.com/charmbracelet/log"
)

// DefaultImageExt is used when a URL carries no usable extension.
const DefaultImageExt = "jpg"

// PlaceholderPatterns mark cover URLs that stand for "no image".
var PlaceholderPatterns = []string{"nocover"}

type AssetKind int

const (
	NovelCoverAsset AssetKind = iota
	VolumeCoverAsset
	IllustrationAsset
)

// AssetTarget says where a downloaded image belongs in the package.
type AssetTarget struct {
	Kind    AssetKind
	Volume  int    // 卷序号, 从 1 开始
	Chapter int    // 章序号, 从 1 开始
	Seq     int    // 章内插图序号, 从 1 开始
	Title   string // 卷标题
}

func NovelCover() AssetTarget {
	return AssetTarget{Kind: NovelCoverAsset}
}

func VolumeCover(volume int, title string) AssetTarget {
	return AssetTarget{Kind: VolumeCoverAsset, Volume: volume, Title: title}
}

func Illustration(volume, chapter, seq int) AssetTarget {
	return AssetTarget{Kind: IllustrationAsset, Volume: volume, Chapter: chapter, Seq: seq}
}

// Path returns the OEBPS-relative location of the asset. Volume covers are
// named after the volume but kept in their own volume directory, so two
// volumes with the same title never overwrite each other.
func (t AssetTarget) Path(ext string) string {
	switch t.Kind {
	case NovelCoverAsset:
		return path.Join(ImagesDir, "cover."+ext)
	case VolumeCoverAsset:
		name := utils.SafeFileName(t.Title)
		if name == "" {
			name = "cover"
		}
		return path.Join(ImagesDir, volumeDir(t.Volume), name+"."+ext)
	default:
		return path.Join(IllustrationDir(t.Volume, t.Chapter), fmt.Sprintf("%03d.%s", t.Seq, ext))
	}
}

// Asset is an image stored in the working tree.
type Asset struct {
	Path      string // OEBPS 内相对路径, 也是 manifest href
	Ref       string // 内容文档中引用的路径
	MediaType string
}

// Resolver downloads remote images into the package working tree.
type Resolver struct {
	root    string
	fetcher model.Fetcher
}

func NewResolver(root string, fetcher model.Fetcher) *Resolver {
	return &Resolver{root: root, fetcher: fetcher}
}

func (r *Resolver) Root() string {
	return r.root
}

// Resolve fetches remoteURL and stores it at the target's path. It returns
// nil and no error for placeholder URLs. Transport failures come back as
// *FetchError and leave nothing behind; filesystem failures are returned as is.
func (r *Resolver) Resolve(ctx context.Context, remoteURL string, target AssetTarget) (*Asset, error) {
	remoteURL = strings.TrimSpace(remoteURL)
	if remoteURL == "" || IsPlaceholder(remoteURL) {
		log.Debug("Skipping placeholder image", "url", remoteURL)
		return nil, nil
	}

	ext := ImageExt(remoteURL)
	rel := target.Path(ext)

	if err := ctx.Err(); err != nil {
		return nil, &FetchError{URL: remoteURL, Err: err}
	}
	data, err := r.fetcher.Fetch(ctx, remoteURL)
	if err != nil {
		return nil, &FetchError{URL: remoteURL, Err: err}
	}

	fullPath := oebpsPath(r.root, rel)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write image: %w", err)
	}
	log.Debug("Saved image", "url", remoteURL, "path", rel)

	return &Asset{
		Path:      rel,
		Ref:       fromDocument(rel),
		MediaType: ImageMediaType(ext),
	}, nil
}

func IsPlaceholder(remoteURL string) bool {
	for _, pattern := range PlaceholderPatterns {
		if strings.Contains(remoteURL, pattern) {
			return true
		}
	}
	return false
}

// ImageExt takes the extension from the URL path, ignoring query and
// fragment. Anything that is not a known image extension becomes jpg.
func ImageExt(remoteURL string) string {
	p := remoteURL
	if u, err := url.Parse(remoteURL); err == nil {
		p = u.Path
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
	if !isImageExt(ext) {
		return DefaultImageExt
	}
	return ext
}

func ImageMediaType(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "svg":
		return "image/svg+xml"
	case "bmp":
		return "image/bmp"
	default:
		return "image/jpeg"
	}
}

func isImageExt(ext string) bool {
	switch ext {
	case "jpg", "jpeg", "png", "gif", "webp", "svg", "bmp":
		return true
	}
	return false
}

func isImageFile(name string) bool {
	return isImageExt(strings.ToLower(strings.TrimPrefix(path.Ext(name), ".")))
}
