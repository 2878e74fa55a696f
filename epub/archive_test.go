package epub

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestArchiveName(t *testing.T) {
	tests := map[string]string{
		"out/epub_1234":  "docln_1234.epub",
		"out/epub_1234/": "docln_1234.epub",
		"novel":          "docln_novel.epub",
	}
	for root, want := range tests {
		if got := ArchiveName(root); got != want {
			t.Errorf("ArchiveName(%q) = %q, want %q", root, got, want)
		}
	}
}

func TestArchive(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "epub_42")
	files := map[string]string{
		"mimetype":                                Mimetype,
		"META-INF/container.xml":                  "<container/>",
		"OEBPS/content.opf":                       "<package/>",
		"OEBPS/text/volume_001/chapter_001.xhtml": "<html/>",
		"OEBPS/images/cover.jpg":                  "jpeg",
	}
	for name, content := range files {
		writeTestFile(t, filepath.Join(root, filepath.FromSlash(name)), content)
	}

	savePath, err := Archive(root)
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if savePath != filepath.Join(parent, "docln_42.epub") {
		t.Errorf("savePath = %q", savePath)
	}
	if exists(root) {
		t.Errorf("working tree not removed")
	}

	reader, err := zip.OpenReader(savePath)
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	defer reader.Close()

	first := reader.File[0]
	if first.Name != "mimetype" || first.Method != zip.Store {
		t.Fatalf("first entry = %s (method %d), want stored mimetype", first.Name, first.Method)
	}
	if first.Flags&0x8 != 0 {
		t.Errorf("mimetype written with a data descriptor")
	}

	got := map[string]string{}
	for _, f := range reader.File {
		if strings.Contains(f.Name, `\`) {
			t.Errorf("entry %q uses backslashes", f.Name)
		}
		if _, dup := got[f.Name]; dup {
			t.Errorf("duplicate entry %s", f.Name)
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read %s: %v", f.Name, err)
		}
		got[f.Name] = string(data)
	}
	if len(got) != len(files) {
		t.Errorf("archive has %d entries, want %d", len(got), len(files))
	}
	for name, content := range files {
		if got[name] != content {
			t.Errorf("%s = %q, want %q", name, got[name], content)
		}
	}
}

func TestArchive_MissingMimetype(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "epub_7")
	writeTestFile(t, filepath.Join(root, "OEBPS", "content.opf"), "<package/>")

	savePath, err := Archive(root)
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	reader, err := zip.OpenReader(savePath)
	if err != nil {
		t.Fatal(err)
	}
	defer reader.Close()

	rc, err := reader.File[0].Open()
	if err != nil {
		t.Fatal(err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if reader.File[0].Name != "mimetype" || string(data) != Mimetype {
		t.Errorf("first entry = %s %q", reader.File[0].Name, data)
	}
}

func TestArchive_FailureKeepsTree(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "epub_9")
	writeTestFile(t, filepath.Join(root, "mimetype"), Mimetype)
	// A directory in the way of the archive makes creation fail.
	if err := os.MkdirAll(filepath.Join(parent, "docln_9.epub", "busy"), 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := Archive(root); err == nil {
		t.Fatal("expected error")
	}
	if !exists(filepath.Join(root, "mimetype")) {
		t.Errorf("working tree removed after failure")
	}
}

func TestArchive_MissingRoot(t *testing.T) {
	parent := t.TempDir()
	if _, err := Archive(filepath.Join(parent, "epub_1")); err == nil {
		t.Fatal("expected error")
	}
	if exists(filepath.Join(parent, "docln_1.epub")) {
		t.Errorf("archive created for missing tree")
	}
}

func TestArchive_RelativeRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "epub_9")
	writeTestFile(t, filepath.Join(root, "mimetype"), Mimetype)
	writeTestFile(t, filepath.Join(root, "OEBPS", "a.txt"), "a")
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(root); err != nil {
		t.Fatalf("failed to chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	savePath, err := Archive(".")
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if filepath.Base(savePath) != "docln_9.epub" {
		t.Errorf("savePath = %q, want docln_9.epub", savePath)
	}
	if !exists(filepath.Join(parent, "docln_9.epub")) {
		t.Fatalf("archive not created next to the working tree")
	}
	if exists(root) {
		t.Errorf("working tree not removed")
	}

	reader, err := zip.OpenReader(filepath.Join(parent, "docln_9.epub"))
	if err != nil {
		t.Fatal(err)
	}
	defer reader.Close()
	for _, f := range reader.File {
		if strings.HasSuffix(f.Name, ArchiveExt) {
			t.Errorf("archive contains %s", f.Name)
		}
	}
	if len(reader.File) != 2 {
		t.Errorf("archive has %d entries, want 2", len(reader.File))
	}
}
