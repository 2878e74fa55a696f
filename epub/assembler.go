package epub

import (
	"fmt"
	"os"
	"path"
	"strings"

	"docln-downloader/model"
)

type UnitKind int

const (
	VolumeCoverUnit UnitKind = iota
	ChapterUnit
)

// Unit is one content document in reading order.
type Unit struct {
	ID        string
	Href      string
	MediaType string
	Kind      UnitKind
	Volume    int // 卷序号, 从 1 开始
	Seq       int // 卷内序号, 封面为 0
	Title     string
}

// NavNode is an entry of the table of contents.
type NavNode struct {
	Label    string
	Target   string
	Children []*NavNode
}

// Package is everything the package document and the NCX are written from.
type Package struct {
	Novel    *model.Novel
	Units    []*Unit
	Manifest []model.ManifestItem
	Spine    []string
	Nav      []*NavNode
	Guide    []model.GuideItem
}

const (
	NCXID        = "ncx"
	StyleID      = "style"
	CoverImageID = "cover-image"
)

func UnitID(volume, seq int) string {
	return fmt.Sprintf("chapter%d_%d", volume, seq)
}

func VolumeCoverImageID(volume int) string {
	return fmt.Sprintf("volume%d-cover", volume)
}

func IllustrationID(volume, chapter int, name string) string {
	return fmt.Sprintf("vol%d_chap%d_img%s", volume, chapter, strings.TrimSuffix(name, path.Ext(name)))
}

// Assemble derives manifest, spine and navigation from the novel and the
// images present under root. Only chapters with a rendered document take part;
// a volume without any of them keeps its cover page in the spine but gets no
// navigation entry.
func Assemble(novel *model.Novel, root string) (*Package, error) {
	pkg := &Package{Novel: novel}

	pkg.addItem(NCXID, NCXFile, MediaTypeNCX)
	pkg.addItem(StyleID, StyleFile, MediaTypeCSS)
	if novel.CoverPath != "" {
		pkg.addItem(CoverImageID, novel.CoverPath, ImageMediaType(path.Ext(novel.CoverPath)))
	}
	for i, volume := range novel.Volumes {
		if volume.CoverPath != "" {
			pkg.addItem(VolumeCoverImageID(i+1), volume.CoverPath, ImageMediaType(path.Ext(volume.CoverPath)))
		}
	}

	for i, volume := range novel.Volumes {
		for j, chapter := range volume.Chapters {
			if !chapter.Rendered() {
				continue
			}
			images, err := scanIllustrations(root, i+1, j+1)
			if err != nil {
				return nil, err
			}
			for _, image := range images {
				pkg.addItem(IllustrationID(i+1, j+1, path.Base(image)), image, ImageMediaType(path.Ext(image)))
			}
		}
	}

	for i, volume := range novel.Volumes {
		volumeNo := i + 1

		var cover *Unit
		if volume.CoverPath != "" {
			cover = &Unit{
				ID:        UnitID(volumeNo, 0),
				Href:      VolumeCoverDocPath(volumeNo),
				MediaType: MediaTypeXHTML,
				Kind:      VolumeCoverUnit,
				Volume:    volumeNo,
				Title:     volume.Title,
			}
			pkg.Units = append(pkg.Units, cover)
		}

		chapters := []*Unit{}
		for j, chapter := range volume.Chapters {
			if !chapter.Rendered() {
				continue
			}
			chapters = append(chapters, &Unit{
				ID:        UnitID(volumeNo, j+1),
				Href:      chapter.ContentPath,
				MediaType: MediaTypeXHTML,
				Kind:      ChapterUnit,
				Volume:    volumeNo,
				Seq:       j + 1,
				Title:     chapter.Title,
			})
		}
		pkg.Units = append(pkg.Units, chapters...)

		if len(chapters) == 0 {
			continue
		}
		node := &NavNode{Label: volume.Title, Target: chapters[0].Href}
		if cover != nil {
			node.Target = cover.Href
		}
		for _, unit := range chapters {
			node.Children = append(node.Children, &NavNode{Label: unit.Title, Target: unit.Href})
		}
		pkg.Nav = append(pkg.Nav, node)
	}

	for _, unit := range pkg.Units {
		pkg.addItem(unit.ID, unit.Href, unit.MediaType)
		pkg.Spine = append(pkg.Spine, unit.ID)
	}

	if novel.CoverPath != "" {
		pkg.Guide = append(pkg.Guide, model.GuideItem{Type: "cover", Title: "Cover", Link: novel.CoverPath})
	}
	if len(pkg.Units) > 0 {
		pkg.Guide = append(pkg.Guide, model.GuideItem{Type: "text", Title: novel.Title, Link: pkg.Units[0].Href})
	}

	if err := pkg.Validate(); err != nil {
		return nil, err
	}
	return pkg, nil
}

// Validate checks that manifest ids are unique and that spine and navigation
// only point at manifest entries.
func (p *Package) Validate() error {
	hrefs := make(map[string]bool, len(p.Manifest))
	ids := make(map[string]bool, len(p.Manifest))
	for _, item := range p.Manifest {
		if ids[item.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, item.ID)
		}
		ids[item.ID] = true
		hrefs[item.Link] = true
	}

	seen := make(map[string]bool, len(p.Spine))
	for _, id := range p.Spine {
		if !ids[id] {
			return fmt.Errorf("%w: %s", ErrDanglingSpineRef, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: %s", ErrDuplicateSpineRef, id)
		}
		seen[id] = true
	}

	var checkNav func(nodes []*NavNode) error
	checkNav = func(nodes []*NavNode) error {
		for _, node := range nodes {
			if !hrefs[node.Target] {
				return fmt.Errorf("%w: %s", ErrDanglingNavigation, node.Target)
			}
			if err := checkNav(node.Children); err != nil {
				return err
			}
		}
		return nil
	}
	return checkNav(p.Nav)
}

func (p *Package) addItem(id, href, mediaType string) {
	p.Manifest = append(p.Manifest, model.ManifestItem{ID: id, Link: href, Media: mediaType})
}

// scanIllustrations lists the images stored for one chapter, sorted by name.
func scanIllustrations(root string, volume, chapter int) ([]string, error) {
	dir := IllustrationDir(volume, chapter)
	entries, err := os.ReadDir(oebpsPath(root, dir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read illustrations: %w", err)
	}

	images := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !isImageFile(entry.Name()) {
			continue
		}
		images = append(images, path.Join(dir, entry.Name()))
	}
	return images, nil
}
