package model

// User is the "current user" of a session.
type User struct {
	FullName string `json:"fullName"`
	Email    string `json:"email,omitempty"`
}
