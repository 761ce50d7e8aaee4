package structure

// Plain declarative data: these mirror the index.json layouts of a content
// tree one-to-one and are never mutated after loading.

type Course struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Levels   []string `json:"levels"`
	Image    string   `json:"image"`
	Video    string   `json:"video"`
	Desc     string   `json:"desc"`
	Language string   `json:"language"`
	Scope    string   `json:"scope"`
}

type TopicRange struct {
	TopicID     string `json:"topicId"`
	LessonStart int    `json:"lessonStart"`
	LessonEnd   int    `json:"lessonEnd"`
}

type Level struct {
	ID       string       `json:"id"`
	CourseID string       `json:"courseId"`
	Name     string       `json:"name"`
	Desc     string       `json:"desc"`
	Ranges   []TopicRange `json:"ranges"`
}

type Prerequisite struct {
	LessonID string `json:"lessonId"`
	TopicID  string `json:"topicId"`
}

type LessonMeta struct {
	ID            string         `json:"id"`
	TopicID       string         `json:"topicId"`
	Title         string         `json:"title"`
	AuthorID      string         `json:"authorId"`
	Duration      int            `json:"duration"`
	Prerequisites []Prerequisite `json:"prerequisites,omitempty"`
}

type Topic struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Desc    string       `json:"desc"`
	Lessons []LessonMeta `json:"lessons"`
}

type Author struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Order   int    `json:"order"`
	Twitter string `json:"twitter,omitempty"`
	GitHub  string `json:"github,omitempty"`
	Desc    string `json:"desc"`
}

// Structure is the fully loaded course tree index.
type Structure struct {
	Courses []Course
	Levels  []Level
	Topics  []Topic
	Authors []Author
}

func (s *Structure) Course(id string) (Course, bool) {
	for _, c := range s.Courses {
		if c.ID == id {
			return c, true
		}
	}
	return Course{}, false
}

func (s *Structure) Level(courseID, levelID string) (Level, bool) {
	for _, l := range s.Levels {
		if l.CourseID == courseID && l.ID == levelID {
			return l, true
		}
	}
	return Level{}, false
}

func (s *Structure) Topic(id string) (Topic, bool) {
	for _, t := range s.Topics {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}

func (s *Structure) Author(id string) (Author, bool) {
	for _, a := range s.Authors {
		if a.ID == id {
			return a, true
		}
	}
	return Author{}, false
}
