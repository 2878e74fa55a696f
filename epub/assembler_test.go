package epub

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"docln-downloader/model"
)

// scenarioNovel lays out two volumes: the first has a cover and two chapters,
// the second of which failed; the second volume has no cover and one chapter.
func scenarioNovel(t *testing.T, root string) *model.Novel {
	t.Helper()
	oebps := filepath.Join(root, OEBPSDir)
	writeTestFile(t, filepath.Join(oebps, "images", "cover.jpg"), "cover")
	writeTestFile(t, filepath.Join(oebps, "images", "volume_001", "Tập_1.png"), "v1")
	writeTestFile(t, filepath.Join(oebps, "images", "volume_001", "chapter_001", "001.jpg"), "i1")
	writeTestFile(t, filepath.Join(oebps, "images", "volume_001", "chapter_001", "002.png"), "i2")
	writeTestFile(t, filepath.Join(oebps, "images", "volume_001", "chapter_001", "notes.txt"), "x")
	writeTestFile(t, filepath.Join(oebps, "images", "volume_001", "chapter_002", "001.jpg"), "stale")
	writeTestFile(t, filepath.Join(oebps, "text", "volume_001", "chapter_001.xhtml"), "c1")
	writeTestFile(t, filepath.Join(oebps, "text", "volume_002", "chapter_001.xhtml"), "c2")

	return &model.Novel{
		Id:          1234,
		Title:       "Tiểu thuyết",
		Author:      "Tác giả",
		Illustrator: "Họa sĩ",
		Summary:     "Dòng 1\nDòng 2",
		Tags:        []string{"Action", "Romance"},
		CoverPath:   "images/cover.jpg",
		Volumes: []*model.Volume{
			{
				Title:     "Tập 1",
				CoverPath: "images/volume_001/Tập_1.png",
				Chapters: []*model.Chapter{
					{Title: "Chương 1", ContentPath: "text/volume_001/chapter_001.xhtml"},
					{Title: "Chương 2"},
				},
			},
			{
				Title: "Tập 2",
				Chapters: []*model.Chapter{
					{Title: "Chương 1", ContentPath: "text/volume_002/chapter_001.xhtml"},
				},
			},
		},
	}
}

func manifestIDs(pkg *Package) []string {
	ids := []string{}
	for _, item := range pkg.Manifest {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestAssemble(t *testing.T) {
	root := t.TempDir()
	pkg, err := Assemble(scenarioNovel(t, root), root)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	wantSpine := []string{"chapter1_0", "chapter1_1", "chapter2_1"}
	if !reflect.DeepEqual(pkg.Spine, wantSpine) {
		t.Errorf("Spine = %v, want %v", pkg.Spine, wantSpine)
	}

	wantManifest := []string{
		"ncx", "style", "cover-image", "volume1-cover",
		"vol1_chap1_img001", "vol1_chap1_img002",
		"chapter1_0", "chapter1_1", "chapter2_1",
	}
	if !reflect.DeepEqual(manifestIDs(pkg), wantManifest) {
		t.Errorf("Manifest = %v, want %v", manifestIDs(pkg), wantManifest)
	}

	media := map[string]string{}
	for _, item := range pkg.Manifest {
		media[item.ID] = item.Media
	}
	if media["vol1_chap1_img002"] != "image/png" || media["cover-image"] != "image/jpeg" || media["chapter1_1"] != MediaTypeXHTML {
		t.Errorf("unexpected media types: %v", media)
	}

	if len(pkg.Nav) != 2 {
		t.Fatalf("got %d nav nodes, want 2", len(pkg.Nav))
	}
	first, second := pkg.Nav[0], pkg.Nav[1]
	if first.Label != "Tập 1" || first.Target != "text/volume_001/chapter_000.xhtml" || len(first.Children) != 1 {
		t.Errorf("first nav node = %+v", first)
	}
	if second.Label != "Tập 2" || second.Target != "text/volume_002/chapter_001.xhtml" || len(second.Children) != 1 {
		t.Errorf("second nav node = %+v", second)
	}
	if first.Children[0].Target != "text/volume_001/chapter_001.xhtml" {
		t.Errorf("child target = %q", first.Children[0].Target)
	}

	wantGuide := []model.GuideItem{
		{Type: "cover", Title: "Cover", Link: "images/cover.jpg"},
		{Type: "text", Title: "Tiểu thuyết", Link: "text/volume_001/chapter_000.xhtml"},
	}
	if !reflect.DeepEqual(pkg.Guide, wantGuide) {
		t.Errorf("Guide = %v", pkg.Guide)
	}
}

func TestAssemble_CoverOnlyVolume(t *testing.T) {
	root := t.TempDir()
	novel := &model.Novel{
		Id:    1,
		Title: "N",
		Volumes: []*model.Volume{
			{Title: "Tập 1", CoverPath: "images/volume_001/Tập_1.jpg", Chapters: []*model.Chapter{{Title: "lỗi"}}},
		},
	}

	pkg, err := Assemble(novel, root)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if !reflect.DeepEqual(pkg.Spine, []string{"chapter1_0"}) {
		t.Errorf("Spine = %v", pkg.Spine)
	}
	if len(pkg.Nav) != 0 {
		t.Errorf("cover-only volume got a nav node: %+v", pkg.Nav[0])
	}
}

func TestAssemble_Empty(t *testing.T) {
	pkg, err := Assemble(&model.Novel{Id: 1, Title: "N"}, t.TempDir())
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if len(pkg.Spine) != 0 || len(pkg.Nav) != 0 || len(pkg.Guide) != 0 {
		t.Errorf("expected empty structure, got %+v", pkg)
	}
	if !reflect.DeepEqual(manifestIDs(pkg), []string{"ncx", "style"}) {
		t.Errorf("Manifest = %v", manifestIDs(pkg))
	}
}

func TestPackageValidate(t *testing.T) {
	item := func(id, href string) model.ManifestItem {
		return model.ManifestItem{ID: id, Link: href, Media: MediaTypeXHTML}
	}

	tests := []struct {
		name string
		pkg  *Package
		want error
	}{
		{
			name: "valid",
			pkg: &Package{
				Manifest: []model.ManifestItem{item("a", "a.xhtml")},
				Spine:    []string{"a"},
				Nav:      []*NavNode{{Label: "A", Target: "a.xhtml"}},
			},
		},
		{
			name: "duplicate id",
			pkg:  &Package{Manifest: []model.ManifestItem{item("a", "a.xhtml"), item("a", "b.xhtml")}},
			want: ErrDuplicateID,
		},
		{
			name: "dangling spine",
			pkg:  &Package{Manifest: []model.ManifestItem{item("a", "a.xhtml")}, Spine: []string{"b"}},
			want: ErrDanglingSpineRef,
		},
		{
			name: "duplicate spine",
			pkg:  &Package{Manifest: []model.ManifestItem{item("a", "a.xhtml")}, Spine: []string{"a", "a"}},
			want: ErrDuplicateSpineRef,
		},
		{
			name: "dangling nav",
			pkg: &Package{
				Manifest: []model.ManifestItem{item("a", "a.xhtml")},
				Nav:      []*NavNode{{Label: "A", Target: "a.xhtml", Children: []*NavNode{{Label: "B", Target: "b.xhtml"}}}},
			},
			want: ErrDanglingNavigation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pkg.Validate()
			if tt.want == nil && err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}
