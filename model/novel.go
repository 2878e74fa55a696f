package model

type Chapter struct {
	Title            string
	Url              string
	HasIllustrations bool
	// ContentPath is the OEBPS-relative path of the rendered content document.
	// Empty when the chapter could not be fetched or rendered.
	ContentPath   string
	Illustrations []string
	Paragraphs    []string
}

// Rendered reports whether the chapter made it into the working tree.
func (c *Chapter) Rendered() bool {
	return c.ContentPath != ""
}

type Volume struct {
	Title     string
	VolumeId  string
	CoverUrl  string
	CoverPath string
	Chapters  []*Chapter
}

// RenderedChapters returns the chapters that survived fetching, in reading order.
func (v *Volume) RenderedChapters() []*Chapter {
	chapters := make([]*Chapter, 0, len(v.Chapters))
	for _, chapter := range v.Chapters {
		if chapter.Rendered() {
			chapters = append(chapters, chapter)
		}
	}
	return chapters
}

type Novel struct {
	Id          int
	Url         string
	Title       string
	Author      string
	Illustrator string
	Summary     string
	Tags        []string
	CoverUrl    string
	CoverPath   string
	Volumes     []*Volume
}
