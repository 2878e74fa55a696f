package epub

import (
	"archive/zip"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// ArchiveName maps a working tree epub_<id> onto docln_<id>.epub.
func ArchiveName(root string) string {
	name := strings.TrimPrefix(filepath.Base(filepath.Clean(root)), WorkDirPrefix)
	return ArchivePrefix + name + ArchiveExt
}

// Archive zips the working tree into its parent directory and removes the
// tree afterwards. mimetype is always the first entry and stored
// uncompressed. On failure the partial archive is removed and the tree kept.
// A relative root such as "." is resolved against the working directory first.
func Archive(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	root = abs
	savePath := filepath.Join(filepath.Dir(root), ArchiveName(root))

	if err := writeArchive(root, savePath); err != nil {
		return "", fmt.Errorf("failed to pack epub: %w", err)
	}
	log.Info("Created epub", "path", savePath)

	if err := os.RemoveAll(root); err != nil {
		log.Warn("Failed to clean working directory", "dir", root, "err", err)
	}
	return savePath, nil
}

func writeArchive(root, savePath string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}

	zipFile, err := os.Create(savePath)
	if err != nil {
		return err
	}
	if err := writeZip(zipFile, root); err != nil {
		zipFile.Close()
		if removeErr := os.Remove(savePath); removeErr != nil {
			log.Warn("Failed to remove partial archive", "path", savePath, "err", removeErr)
		}
		return err
	}
	if err := zipFile.Close(); err != nil {
		os.Remove(savePath)
		return err
	}
	return nil
}

func writeZip(w io.Writer, root string) error {
	zipWriter := zip.NewWriter(w)
	if err := addMimetype(zipWriter, root); err != nil {
		zipWriter.Close()
		return err
	}
	if err := addDirContentToZip(zipWriter, root); err != nil {
		zipWriter.Close()
		return err
	}
	return zipWriter.Close()
}

// addMimetype writes the mimetype entry without a data descriptor so its
// content sits at a fixed offset.
func addMimetype(zipWriter *zip.Writer, root string) error {
	data, err := os.ReadFile(filepath.Join(root, MimetypeFile))
	if errors.Is(err, fs.ErrNotExist) {
		data = []byte(Mimetype)
	} else if err != nil {
		return err
	}

	writer, err := zipWriter.CreateRaw(&zip.FileHeader{
		Name:               MimetypeFile,
		Method:             zip.Store,
		CRC32:              crc32.ChecksumIEEE(data),
		CompressedSize64:   uint64(len(data)),
		UncompressedSize64: uint64(len(data)),
	})
	if err != nil {
		return err
	}
	_, err = writer.Write(data)
	return err
}

func addDirContentToZip(zipWriter *zip.Writer, root string) error {
	return filepath.WalkDir(root, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(root, filePath)
		if err != nil {
			return err
		}
		if relPath == MimetypeFile {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(relPath)
		header.Method = zip.Deflate

		writer, err := zipWriter.CreateHeader(header)
		if err != nil {
			return err
		}
		file, err := os.Open(filePath)
		if err != nil {
			return err
		}
		defer file.Close()
		_, err = io.Copy(writer, file)
		return err
	})
}
