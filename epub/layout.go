package epub

import (
	"fmt"
	"path"
	"path/filepath"
)

// Package working tree layout. Paths below OEBPS use forward slashes because
// they double as manifest hrefs.
const (
	MimetypeFile  = "mimetype"
	Mimetype      = "application/epub+zip"
	ContainerFile = "META-INF/container.xml"
	OEBPSDir      = "OEBPS"
	PackageFile   = "content.opf"
	NCXFile       = "toc.ncx"
	StyleFile     = "styles/style.css"
	ImagesDir     = "images"
	TextDir       = "text"

	WorkDirPrefix = "epub_"
	ArchivePrefix = "docln_"
	ArchiveExt    = ".epub"
)

const (
	MediaTypeXHTML = "application/xhtml+xml"
	MediaTypeNCX   = "application/x-dtbncx+xml"
	MediaTypeCSS   = "text/css"
)

// Content documents live two levels below OEBPS (text/volume_NNN/).
const documentToOEBPS = "../../"

// WorkDir is the package working tree of one novel below output.
func WorkDir(output string, novelId int) string {
	return filepath.Join(output, fmt.Sprintf("%s%d", WorkDirPrefix, novelId))
}

func volumeDir(volume int) string {
	return fmt.Sprintf("volume_%03d", volume)
}

// ChapterDocPath is the OEBPS-relative path of a content document. Volume and
// chapter are 1-based ordinals, chapter 0 is reserved for the volume cover.
func ChapterDocPath(volume, chapter int) string {
	return path.Join(TextDir, volumeDir(volume), fmt.Sprintf("chapter_%03d.xhtml", chapter))
}

func VolumeCoverDocPath(volume int) string {
	return ChapterDocPath(volume, 0)
}

// IllustrationDir holds the numbered inline images of one chapter.
func IllustrationDir(volume, chapter int) string {
	return path.Join(ImagesDir, volumeDir(volume), fmt.Sprintf("chapter_%03d", chapter))
}

// fromDocument rewrites an OEBPS-relative path into the frame of a content document.
func fromDocument(p string) string {
	return documentToOEBPS + p
}

// oebpsPath maps an OEBPS-relative path onto the working tree.
func oebpsPath(root, p string) string {
	return filepath.Join(root, OEBPSDir, filepath.FromSlash(p))
}
