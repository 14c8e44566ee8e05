package catalog

// Lecture represents a single published catalog entry as returned by the
// lecture service. All fields are display-formatted strings; the client
// never parses durations, dates or view counts.
type Lecture struct {
	Slug          string       `json:"slug"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Duration      string       `json:"duration"`
	Image         string       `json:"image"`
	PublishedDate string       `json:"publishedDate"`
	Views         string       `json:"views"`
	AISummary     string       `json:"aiSummary"`
	KeyConcepts   []KeyConcept `json:"keyConcepts"`
}

// KeyConcept marks a notable moment within a lecture.
type KeyConcept struct {
	Title     string `json:"title"`
	Timestamp string `json:"timestamp"`
}

// HasConcept reports whether the lecture has a key concept with the given title.
func (l *Lecture) HasConcept(title string) bool {
	for _, kc := range l.KeyConcepts {
		if kc.Title == title {
			return true
		}
	}
	return false
}
