package models

// Project represents a portfolio project shown on the public site
type Project struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Year        string   `json:"year"`
	Location    string   `json:"location"`
	Area        string   `json:"area"`
	Services    []string `json:"services,omitempty"`
	Images      []string `json:"images"`
}

// NextProjectID returns max(id)+1 over the collection, starting at 1.
func NextProjectID(projects []Project) int {
	next := 1
	for _, p := range projects {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return next
}
