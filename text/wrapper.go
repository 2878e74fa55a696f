package text

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"docln-downloader/model"
	"docln-downloader/utils"

	"github.com/PuerkitoBio/goquery"
)

// PackNovelToText writes every rendered chapter as plain text below
// <outputPath>/<novel>/<volume>/.
func PackNovelToText(novel *model.Novel, outputPath string) error {
	outputPath = filepath.Join(outputPath, utils.CleanDirName(novel.Title))
	for _, volume := range novel.Volumes {
		if err := PackVolumeToText(volume, outputPath); err != nil {
			return err
		}
	}
	return nil
}

func PackVolumeToText(volume *model.Volume, outputPath string) error {
	chapters := volume.RenderedChapters()
	if len(chapters) == 0 {
		return nil
	}

	outputPath = filepath.Join(outputPath, utils.CleanDirName(volume.Title))
	err := os.RemoveAll(outputPath)
	if err != nil {
		return fmt.Errorf("failed to remove output directory: %w", err)
	}
	err = os.MkdirAll(outputPath, 0755)
	if err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for i, chapter := range chapters {
		chapterPath := filepath.Join(outputPath, fmt.Sprintf("%03d-%s.txt", i+1, utils.CleanDirName(chapter.Title)))
		content, err := ChapterText(chapter)
		if err != nil {
			return err
		}
		err = os.WriteFile(chapterPath, []byte(content), 0644)
		if err != nil {
			return fmt.Errorf("failed to write chapter file: %w", err)
		}
	}
	return nil
}

// ChapterText strips markup and images from the rendered paragraphs, one
// paragraph per line.
func ChapterText(chapter *model.Chapter) (string, error) {
	lines := make([]string, 0, len(chapter.Paragraphs))
	for _, paragraph := range chapter.Paragraphs {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(paragraph))
		if err != nil {
			return "", fmt.Errorf("failed to parse chapter %s: %w", chapter.Title, err)
		}
		doc.Find("img").Remove()
		if line := strings.TrimSpace(doc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n") + "\n", nil
}
