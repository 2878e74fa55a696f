package epub

import (
	"fmt"

	"docln-downloader/model"
)

// PackNovelToEpub turns a populated working tree into docln_<id>.epub next to
// it: structure is assembled from what was rendered, volume cover pages and
// package files are written, then the tree is archived.
func PackNovelToEpub(novel *model.Novel, root string, writer *Writer) (string, error) {
	pkg, err := Assemble(novel, root)
	if err != nil {
		return "", fmt.Errorf("failed to assemble package: %w", err)
	}

	for _, unit := range pkg.Units {
		if unit.Kind != VolumeCoverUnit {
			continue
		}
		if err := BuildVolumeCover(root, unit.Volume, novel.Volumes[unit.Volume-1]); err != nil {
			return "", err
		}
	}

	if err := writer.Write(pkg, root); err != nil {
		return "", fmt.Errorf("failed to write package: %w", err)
	}

	return Archive(root)
}
