package models

// TeamMember represents a studio member on the about page
type TeamMember struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Image string `json:"image,omitempty"`
}

// NextTeamMemberID returns max(id)+1 over the collection, starting at 1.
func NextTeamMemberID(members []TeamMember) int {
	next := 1
	for _, m := range members {
		if m.ID >= next {
			next = m.ID + 1
		}
	}
	return next
}
