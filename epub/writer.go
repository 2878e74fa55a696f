package epub

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"docln-downloader/model"
	"docln-downloader/template"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const (
	DefaultLanguage  = "vi"
	DefaultPublisher = "docln-downloader"
	BookIDName       = "BookId"
)

// identifierNamespace scopes the derived book identifiers, so the same novel
// always gets the same urn:uuid.
var identifierNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://docln.net/"))

func BookIdentifier(novelId int) string {
	return "urn:uuid:" + uuid.NewSHA1(identifierNamespace, []byte(strconv.Itoa(novelId))).String()
}

// Writer serializes an assembled Package into the fixed EPUB 2 files.
type Writer struct {
	Language  string
	Publisher string
	Generator string
	Now       func() time.Time
}

func NewWriter(language string) *Writer {
	if language == "" {
		language = DefaultLanguage
	}
	return &Writer{
		Language:  language,
		Publisher: DefaultPublisher,
		Generator: DefaultPublisher,
		Now:       time.Now,
	}
}

// Write produces mimetype, META-INF/container.xml, OEBPS/content.opf,
// OEBPS/toc.ncx and the stylesheet under root.
func (w *Writer) Write(pkg *Package, root string) error {
	if err := pkg.Validate(); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(root, MimetypeFile), []byte(Mimetype), 0644); err != nil {
		return fmt.Errorf("failed to write mimetype: %w", err)
	}

	if err := renderFile(filepath.Join(root, filepath.FromSlash(ContainerFile)), template.ContainerXML(path.Join(OEBPSDir, PackageFile))); err != nil {
		return fmt.Errorf("failed to write container.xml: %w", err)
	}
	if err := renderFile(oebpsPath(root, PackageFile), template.ContentOPF(w.PackageDocument(pkg))); err != nil {
		return fmt.Errorf("failed to write content.opf: %w", err)
	}
	if err := renderFile(oebpsPath(root, NCXFile), template.TocNCX(w.TocNCX(pkg))); err != nil {
		return fmt.Errorf("failed to write toc.ncx: %w", err)
	}

	stylePath := oebpsPath(root, StyleFile)
	if err := os.MkdirAll(filepath.Dir(stylePath), 0755); err != nil {
		return fmt.Errorf("failed to create styles directory: %w", err)
	}
	if err := os.WriteFile(stylePath, []byte(template.StyleCSS), 0644); err != nil {
		return fmt.Errorf("failed to write style.css: %w", err)
	}

	log.Debug("Wrote package files", "root", root, "units", len(pkg.Units))
	return nil
}

func (w *Writer) PackageDocument(pkg *Package) *model.PackageDocument {
	novel := pkg.Novel

	metadata := model.DublinCoreMetadata{
		XmlnsDC:  model.NamespaceDC,
		XmlnsOPF: model.NamespaceOPF,
		Identifiers: []model.DCIdentifier{
			{Value: BookIdentifier(novel.Id), ID: BookIDName, Scheme: "UUID"},
		},
		Titles:     []model.DCTitle{{Value: novel.Title}},
		Languages:  []model.DCLanguage{{Value: w.Language}},
		Publishers: []model.DCPublisher{{Value: w.Publisher}},
		Dates:      []model.DCDate{{Value: w.Now().Format("2006-01-02")}},
		Metas: []model.DublinCoreMeta{
			{Name: "generator", Content: w.Generator},
		},
	}
	if novel.Author != "" {
		metadata.Creators = []model.DCCreator{{Value: novel.Author, Role: "aut"}}
	}
	if novel.Illustrator != "" {
		metadata.Contributors = []model.DCContributor{{Value: novel.Illustrator, Role: "ill"}}
	}
	for _, tag := range novel.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			metadata.Subjects = append(metadata.Subjects, model.DCSubject{Value: tag})
		}
	}
	if novel.Summary != "" {
		metadata.Descriptions = []model.DCDescription{{Value: novel.Summary}}
	}
	if novel.CoverPath != "" {
		metadata.Metas = append(metadata.Metas, model.DublinCoreMeta{Name: "cover", Content: CoverImageID})
	}

	doc := &model.PackageDocument{
		Version:          "2.0",
		Xmlns:            model.NamespaceOPF,
		UniqueIdentifier: BookIDName,
		Metadata:         metadata,
		Manifest:         model.Manifest{Items: pkg.Manifest},
		Spine:            model.Spine{Toc: NCXID},
	}
	for _, id := range pkg.Spine {
		doc.Spine.Items = append(doc.Spine.Items, model.SpineItem{IDref: id})
	}
	if len(pkg.Guide) > 0 {
		doc.Guide = &model.Guide{Items: pkg.Guide}
	}
	return doc
}

// TocNCX numbers nav points in document order, parents before children,
// starting at 1.
func (w *Writer) TocNCX(pkg *Package) *model.TocNCX {
	depth := 1
	for _, node := range pkg.Nav {
		if len(node.Children) > 0 {
			depth = 2
			break
		}
	}

	order := 0
	return &model.TocNCX{
		Xmlns:   model.NamespaceNCX,
		Version: "2005-1",
		Head: model.TocNCXHead{Meta: []model.TocNCXHeadMeta{
			{Name: "dtb:uid", Content: BookIdentifier(pkg.Novel.Id)},
			{Name: "dtb:depth", Content: strconv.Itoa(depth)},
			{Name: "dtb:totalPageCount", Content: "0"},
			{Name: "dtb:maxPageNumber", Content: "0"},
		}},
		DocTitle: pkg.Novel.Title,
		NavMap:   model.NavMap{Points: navPoints(pkg.Nav, &order)},
	}
}

func navPoints(nodes []*NavNode, order *int) []*model.NavPoint {
	points := make([]*model.NavPoint, 0, len(nodes))
	for _, node := range nodes {
		*order++
		point := &model.NavPoint{
			Id:        fmt.Sprintf("navPoint%d", *order),
			PlayOrder: *order,
			Label:     node.Label,
			Content:   model.NavPointContent{Src: node.Target},
		}
		point.NavPoints = navPoints(node.Children, order)
		points = append(points, point)
	}
	return points
}
