package entity

// User represents a registered account. The password hash never leaves
// the server.
type User struct {
	ID           int    `json:"id"`
	Firstname    string `json:"firstname"`
	Lastname     string `json:"lastname"`
	School       string `json:"school,omitempty"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}
