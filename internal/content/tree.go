package content

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// LessonExt is the fixed extension for lesson markup files.
const LessonExt = ".md"

var ErrNotUTF8 = errors.New("content: lesson file is not valid UTF-8")

// Tree gives read access to a content tree on disk. All I/O lives here;
// the lesson parser itself never touches the filesystem.
type Tree struct {
	root      string
	maxLesson int64
}

func NewTree(root string, maxLesson int64) (*Tree, error) {
	if root == "" {
		root = "./content"
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("content root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content root %s is not a directory", root)
	}
	if maxLesson <= 0 {
		maxLesson = 1 << 20
	}
	return &Tree{root: root, maxLesson: maxLesson}, nil
}

func (t *Tree) Root() string { return t.root }

// LessonPath maps a topic/lesson id pair to its markup file.
func (t *Tree) LessonPath(topicID, lessonID string) string {
	return filepath.Join(t.root, "topics", filepath.Clean(topicID), filepath.Clean(lessonID)+LessonExt)
}

// ReadLesson returns the raw UTF-8 text of one lesson file, capped at the
// configured size so a corrupt or hostile file cannot balloon memory.
func (t *Tree) ReadLesson(topicID, lessonID string) (string, error) {
	return t.readCapped(t.LessonPath(topicID, lessonID))
}

// ReadFile reads any file under the tree root with the same size cap.
func (t *Tree) ReadFile(path string) (string, error) {
	return t.readCapped(path)
}

func (t *Tree) readCapped(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.Size() > t.maxLesson {
		return "", fmt.Errorf("%s: file exceeds %d bytes", path, t.maxLesson)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%s: %w", path, ErrNotUTF8)
	}
	return string(raw), nil
}

// Open serves an asset (images, video) from the tree for HTTP passthrough.
func (t *Tree) Open(key string) (io.ReadCloser, error) {
	clean := filepath.Clean("/" + key) // no escaping the root
	return os.Open(filepath.Join(t.root, clean))
}

// LessonRef identifies one lesson file found on disk.
type LessonRef struct {
	TopicID  string
	LessonID string
	Path     string
}

// LessonFiles lists every topics/*/*.md file, sorted by path so batch runs
// are deterministic.
func (t *Tree) LessonFiles() ([]LessonRef, error) {
	pattern := filepath.Join(t.root, "topics", "*", "*"+LessonExt)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	refs := make([]LessonRef, 0, len(matches))
	for _, m := range matches {
		dir, file := filepath.Split(m)
		refs = append(refs, LessonRef{
			TopicID:  filepath.Base(filepath.Clean(dir)),
			LessonID: strings.TrimSuffix(file, LessonExt),
			Path:     m,
		})
	}
	return refs, nil
}
