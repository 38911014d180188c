package types

// Course level values.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Course price values.
const (
	PriceFree = "free"
	PricePaid = "paid"
)

// Course is an e-learning course with an ordered curriculum.
type Course struct {
	// ID is the backend identifier of the course.
	ID string `json:"_id"`

	// Title is the course name.
	Title string `json:"title"`

	// Level is one of beginner, intermediate, advanced.
	Level string `json:"level"`

	// Price is either free or paid.
	Price string `json:"price"`

	// Curriculum is the ordered list of sections.
	Curriculum []Section `json:"curriculum"`
}

// Section groups lessons inside a course.
type Section struct {
	Title   string   `json:"title"`
	Lessons []Lesson `json:"lessons"`
}

// Lesson is a single video lesson.
type Lesson struct {
	Title    string `json:"title"`
	Duration string `json:"duration,omitempty"`
	VideoURL string `json:"videoUrl,omitempty"`
}

// Lessons flattens the curriculum in order.
func (c Course) Lessons() []Lesson {
	var lessons []Lesson
	for _, section := range c.Curriculum {
		lessons = append(lessons, section.Lessons...)
	}
	return lessons
}

// Enrollment is the (course, candidate) relation.
type Enrollment struct {
	CourseID         string   `json:"courseId"`
	CandidateID      string   `json:"candidateId"`
	CompletedLessons []string `json:"completedLessons"`
	Completed        bool     `json:"completed"`
}
