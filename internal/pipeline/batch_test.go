package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadURLFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "urls.txt")
	content := "https://youtu.be/a\n\n  https://youtu.be/b  \n\t\nhttps://youtu.be/c"
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	urls, err := ReadURLFile(p)
	if err != nil {
		t.Fatalf("ReadURLFile error: %v", err)
	}
	want := []string{"https://youtu.be/a", "https://youtu.be/b", "https://youtu.be/c"}
	if len(urls) != len(want) {
		t.Fatalf("urls = %v, want %v", urls, want)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("urls[%d] = %q, want %q", i, urls[i], want[i])
		}
	}
}

func TestReadURLFile_BlankOnly(t *testing.T) {
	p := filepath.Join(t.TempDir(), "urls.txt")
	if err := os.WriteFile(p, []byte("\n\n   \n\t\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	urls, err := ReadURLFile(p)
	if err != nil {
		t.Fatalf("ReadURLFile error: %v", err)
	}
	if urls == nil || len(urls) != 0 {
		t.Errorf("urls = %v, want empty non-nil slice", urls)
	}
}

func TestReadURLFile_Missing(t *testing.T) {
	if _, err := ReadURLFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("missing file: want error, got nil")
	}
}
