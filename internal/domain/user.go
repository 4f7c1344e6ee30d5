package domain

// User is a profile as served by the events API. Password is write-only:
// it is sent on registration and never expected back.
type User struct {
	ID       int64   `json:"id,omitempty"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Avatar   string  `json:"avatar"` // data URI or URL
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Password string  `json:"password,omitempty"`
	Me       bool    `json:"me,omitempty"`
}

// Sanitized returns a copy without the password.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
