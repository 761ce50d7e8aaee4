package structure

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads a whole content-tree index from root:
//
//	courses/index.json            -> course id list
//	courses/{id}/index.json       -> course
//	courses/{id}/{level}.json     -> level
//	topics/index.json             -> topic id list
//	topics/{id}/index.json        -> topic (with lesson metadata)
//	authors.json                  -> authors
//
// Each file is schema-checked before decoding. Load does not touch the
// lesson markup files themselves; that is the parser's caller's job.
func Load(root string) (*Structure, error) {
	courses, err := loadCourses(root)
	if err != nil {
		return nil, err
	}
	var levels []Level
	for _, c := range courses {
		for _, levelID := range c.Levels {
			lvl, err := loadLevel(root, c.ID, levelID)
			if err != nil {
				return nil, err
			}
			levels = append(levels, lvl)
		}
	}
	topics, err := loadTopics(root)
	if err != nil {
		return nil, err
	}
	authors, err := loadAuthors(root)
	if err != nil {
		return nil, err
	}
	return &Structure{Courses: courses, Levels: levels, Topics: topics, Authors: authors}, nil
}

func readIndex(path, schema string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := validateSchema(schema, raw, path); err != nil {
		return nil, err
	}
	return raw, nil
}

func loadCourses(root string) ([]Course, error) {
	path := filepath.Join(root, "courses", "index.json")
	raw, err := readIndex(path, coursesIndexSchema)
	if err != nil {
		return nil, err
	}
	var idx struct {
		Courses []string `json:"courses"`
	}
	if err := json.Unmarshal(raw, &idx); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	courses := make([]Course, 0, len(idx.Courses))
	for _, id := range idx.Courses {
		c, err := loadCourse(root, id)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, nil
}

func loadCourse(root, id string) (Course, error) {
	path := filepath.Join(root, "courses", id, "index.json")
	raw, err := readIndex(path, courseSchema)
	if err != nil {
		return Course{}, err
	}
	var c Course
	if err := json.Unmarshal(raw, &c); err != nil {
		return Course{}, fmt.Errorf("decode %s: %w", path, err)
	}
	c.ID = id
	return c, nil
}

func loadLevel(root, courseID, levelID string) (Level, error) {
	path := filepath.Join(root, "courses", courseID, levelID+".json")
	raw, err := readIndex(path, levelSchema)
	if err != nil {
		return Level{}, err
	}
	var l Level
	if err := json.Unmarshal(raw, &l); err != nil {
		return Level{}, fmt.Errorf("decode %s: %w", path, err)
	}
	l.ID = levelID
	l.CourseID = courseID
	return l, nil
}

func loadTopics(root string) ([]Topic, error) {
	path := filepath.Join(root, "topics", "index.json")
	raw, err := readIndex(path, topicsIndexSchema)
	if err != nil {
		return nil, err
	}
	var idx struct {
		Topics []string `json:"topics"`
	}
	if err := json.Unmarshal(raw, &idx); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	topics := make([]Topic, 0, len(idx.Topics))
	for _, id := range idx.Topics {
		t, err := loadTopic(root, id)
		if err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, nil
}

func loadTopic(root, id string) (Topic, error) {
	path := filepath.Join(root, "topics", id, "index.json")
	raw, err := readIndex(path, topicSchema)
	if err != nil {
		return Topic{}, err
	}
	var t Topic
	if err := json.Unmarshal(raw, &t); err != nil {
		return Topic{}, fmt.Errorf("decode %s: %w", path, err)
	}
	t.ID = id
	for i := range t.Lessons {
		t.Lessons[i].TopicID = id
	}
	return t, nil
}

func loadAuthors(root string) ([]Author, error) {
	path := filepath.Join(root, "authors.json")
	raw, err := readIndex(path, authorsSchema)
	if err != nil {
		return nil, err
	}
	var authors []Author
	if err := json.Unmarshal(raw, &authors); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return authors, nil
}
