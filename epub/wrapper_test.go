package epub

import (
	"archive/zip"
	"path/filepath"
	"testing"
)

func TestPackNovelToEpub(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "epub_1234")
	novel := scenarioNovel(t, root)

	savePath, err := PackNovelToEpub(novel, root, fixedWriter())
	if err != nil {
		t.Fatalf("PackNovelToEpub() error = %v", err)
	}
	if filepath.Base(savePath) != "docln_1234.epub" {
		t.Errorf("savePath = %q", savePath)
	}

	reader, err := zip.OpenReader(savePath)
	if err != nil {
		t.Fatal(err)
	}
	defer reader.Close()

	names := map[string]bool{}
	for _, f := range reader.File {
		names[f.Name] = true
	}
	for _, want := range []string{
		"mimetype",
		"META-INF/container.xml",
		"OEBPS/content.opf",
		"OEBPS/toc.ncx",
		"OEBPS/styles/style.css",
		"OEBPS/text/volume_001/chapter_000.xhtml",
		"OEBPS/text/volume_001/chapter_001.xhtml",
		"OEBPS/text/volume_002/chapter_001.xhtml",
		"OEBPS/images/volume_001/chapter_001/001.jpg",
	} {
		if !names[want] {
			t.Errorf("archive missing %s", want)
		}
	}
	if names["OEBPS/text/volume_002/chapter_000.xhtml"] {
		t.Errorf("cover page written for volume without cover")
	}
	if reader.File[0].Name != "mimetype" {
		t.Errorf("first entry = %s", reader.File[0].Name)
	}
}
