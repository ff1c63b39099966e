package models

// User is the staff profile returned by the upstream _current endpoint.
// The dashboard never persists users; the record lives for the duration of a
// dashboard session.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}
