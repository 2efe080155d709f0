package domain

// User is the authenticated account's profile. Fetched from the backend,
// never mutated locally.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
