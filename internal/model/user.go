package model

// A User represents a database record.
type User struct {
	Base `msgpack:",inline" storm:"inline"`

	Name     string `json:"name"  msgpack:"name"`
	Email    string `json:"email" msgpack:"email" storm:"unique"`
	Password string `json:"-"     msgpack:"password,omitempty"`

	// Unix timestamp of the last password change, used to revoke older tokens.
	PasswordUpdatedAt int64 `json:"-" msgpack:"password_updated_at"`
}

// NewUser returns a new user with default params.
func NewUser() *User {
	return &User{}
}
