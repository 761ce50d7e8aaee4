package content_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lessonmark/lessonmark/internal/content"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLessonFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "topics", "syntax", "2.md"), "b")
	writeFile(t, filepath.Join(root, "topics", "syntax", "1.md"), "a")
	writeFile(t, filepath.Join(root, "topics", "types", "1.md"), "c")
	writeFile(t, filepath.Join(root, "topics", "syntax", "index.json"), "{}")

	tree, err := content.NewTree(root, 0)
	if err != nil {
		t.Fatal(err)
	}
	refs, err := tree.LessonFiles()
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 3 {
		t.Fatalf("len(refs) = %d, want 3 (index.json must be skipped)", len(refs))
	}
	if refs[0].TopicID != "syntax" || refs[0].LessonID != "1" {
		t.Errorf("refs[0] = %+v, want syntax/1 first", refs[0])
	}
	if refs[2].TopicID != "types" {
		t.Errorf("refs[2] = %+v, want types last", refs[2])
	}
}

func TestReadLesson(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "topics", "syntax", "1.md"), "hello\n")
	tree, err := content.NewTree(root, 0)
	if err != nil {
		t.Fatal(err)
	}
	src, err := tree.ReadLesson("syntax", "1")
	if err != nil || src != "hello\n" {
		t.Fatalf("ReadLesson() = %q, %v", src, err)
	}
	if _, err := tree.ReadLesson("syntax", "404"); !os.IsNotExist(err) {
		t.Errorf("missing lesson error = %v, want not-exist", err)
	}
}

func TestReadLesson_SizeCap(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "topics", "syntax", "1.md"), strings.Repeat("x", 100))
	tree, err := content.NewTree(root, 10)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tree.ReadLesson("syntax", "1"); err == nil {
		t.Fatal("expected size cap error")
	}
}

func TestOpen_NoRootEscape(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "topics", "syntax", "logo.png"), "img")
	outside := filepath.Join(filepath.Dir(root), "secret.txt")
	writeFile(t, outside, "secret")
	t.Cleanup(func() { os.Remove(outside) })

	tree, err := content.NewTree(root, 0)
	if err != nil {
		t.Fatal(err)
	}
	if f, err := tree.Open("topics/syntax/logo.png"); err != nil {
		t.Errorf("Open(asset) error = %v", err)
	} else {
		f.Close()
	}
	if f, err := tree.Open("../secret.txt"); err == nil {
		f.Close()
		t.Error("Open(../secret.txt) must not escape the root")
	}
}
