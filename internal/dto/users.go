package dto

// User is the public profile returned by GET /users/me.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
