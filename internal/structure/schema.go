package structure

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// JSON Schemas for the index documents. Validation happens before decoding
// so malformed files are reported with field paths instead of zero values.

const coursesIndexSchema = `{
  "type": "object",
  "required": ["courses"],
  "properties": {
    "courses": {"type": "array", "items": {"type": "string"}}
  }
}`

const courseSchema = `{
  "type": "object",
  "required": ["name", "levels", "image", "video", "desc", "language", "scope"],
  "properties": {
    "name": {"type": "string"},
    "levels": {"type": "array", "items": {"type": "string"}},
    "image": {"type": "string"},
    "video": {"type": "string"},
    "desc": {"type": "string"},
    "language": {"type": "string"},
    "scope": {"type": "string"}
  }
}`

const levelSchema = `{
  "type": "object",
  "required": ["name", "desc", "ranges"],
  "properties": {
    "name": {"type": "string"},
    "desc": {"type": "string"},
    "ranges": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["topicId", "lessonStart", "lessonEnd"],
        "properties": {
          "topicId": {"type": "string"},
          "lessonStart": {"type": "integer"},
          "lessonEnd": {"type": "integer"}
        }
      }
    }
  }
}`

const topicsIndexSchema = `{
  "type": "object",
  "required": ["topics"],
  "properties": {
    "topics": {"type": "array", "items": {"type": "string"}}
  }
}`

const topicSchema = `{
  "type": "object",
  "required": ["name", "desc", "lessons"],
  "properties": {
    "name": {"type": "string"},
    "desc": {"type": "string"},
    "lessons": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "title", "authorId", "duration"],
        "properties": {
          "id": {"type": "string"},
          "title": {"type": "string"},
          "authorId": {"type": "string"},
          "duration": {"type": "integer"},
          "prerequisites": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["lessonId", "topicId"],
              "properties": {
                "lessonId": {"type": "string"},
                "topicId": {"type": "string"}
              }
            }
          }
        }
      }
    }
  }
}`

const authorsSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "order", "desc"],
    "properties": {
      "id": {"type": "string"},
      "name": {"type": "string"},
      "order": {"type": "integer"},
      "twitter": {"type": "string"},
      "github": {"type": "string"},
      "desc": {"type": "string"}
    }
  }
}`

func validateSchema(schema string, doc []byte, path string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if !result.Valid() {
		var b strings.Builder
		for i, desc := range result.Errors() {
			if i > 0 {
				b.WriteString("; ")
			}
			b.WriteString(desc.String())
		}
		return fmt.Errorf("%s: schema violation: %s", path, b.String())
	}
	return nil
}
