package user

// User is a registered member of the sharing platform.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Update holds optional fields for a partial user update. Nil means
// "leave unchanged".
type Update struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}
