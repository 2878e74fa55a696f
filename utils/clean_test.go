package utils

import "testing"

func TestCleanDirName(t *testing.T) {
	tests := map[string]string{
		"Tập 1: Khởi đầu":   "Tập 1_ Khởi đầu",
		"  a/b\\c?  ":       "a_b_c_",
		"plain":             "plain",
		"<tag>|\"quoted\"*": "_tag___quoted__",
	}
	for input, want := range tests {
		if got := CleanDirName(input); got != want {
			t.Errorf("CleanDirName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSafeFileName(t *testing.T) {
	tests := map[string]string{
		"Tập 1 - Khởi đầu": "Tập_1___Khởi_đầu",
		"Volume 2":         "Volume_2",
		"Side-story (Ex)":  "Side_story__Ex_",
		"第三卷":              "第三卷",
		"":                 "",
	}
	for input, want := range tests {
		if got := SafeFileName(input); got != want {
			t.Errorf("SafeFileName(%q) = %q, want %q", input, got, want)
		}
	}
}
