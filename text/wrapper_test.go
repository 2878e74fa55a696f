package text

import (
	"os"
	"path/filepath"
	"testing"

	"docln-downloader/model"
)

func TestChapterText(t *testing.T) {
	chapter := &model.Chapter{
		Title: "Chương 1",
		Paragraphs: []string{
			`<p>Đoạn &amp; một</p>`,
			`<p><img src="../../images/volume_001/chapter_001/001.jpg" alt="illustration 001"/></p>`,
			`<p>  Đoạn <b>hai</b>  </p>`,
		},
	}
	got, err := ChapterText(chapter)
	if err != nil {
		t.Fatalf("ChapterText() error = %v", err)
	}
	if want := "Đoạn & một\nĐoạn hai\n"; got != want {
		t.Errorf("ChapterText() = %q, want %q", got, want)
	}
}

func TestPackNovelToText(t *testing.T) {
	output := t.TempDir()
	novel := &model.Novel{
		Title: "Truyện: thử",
		Volumes: []*model.Volume{
			{
				Title: "Tập 1",
				Chapters: []*model.Chapter{
					{Title: "Mở đầu", ContentPath: "text/volume_001/chapter_001.xhtml", Paragraphs: []string{"<p>A</p>"}},
					{Title: "Lỗi"},
					{Title: "Kết/thúc", ContentPath: "text/volume_001/chapter_003.xhtml", Paragraphs: []string{"<p>B</p>"}},
				},
			},
			{Title: "Tập 2", Chapters: []*model.Chapter{{Title: "Lỗi"}}},
		},
	}

	if err := PackNovelToText(novel, output); err != nil {
		t.Fatalf("PackNovelToText() error = %v", err)
	}

	volumeDir := filepath.Join(output, "Truyện_ thử", "Tập 1")
	entries, err := os.ReadDir(volumeDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Name() != "001-Mở đầu.txt" || entries[1].Name() != "002-Kết_thúc.txt" {
		t.Errorf("unexpected files: %v", entries)
	}
	data, err := os.ReadFile(filepath.Join(volumeDir, "002-Kết_thúc.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "B\n" {
		t.Errorf("content = %q", data)
	}
	if _, err := os.Stat(filepath.Join(output, "Truyện_ thử", "Tập 2")); !os.IsNotExist(err) {
		t.Errorf("directory created for volume without rendered chapters")
	}
}
