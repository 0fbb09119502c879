package serializer

import "github.com/rohit0033/notes-taking-app/internal/model"

// User serializes the given user to the authentication API response format.
func User(u *model.User) map[string]any {
	return map[string]any{
		"_id":   u.ID,
		"name":  u.Name,
		"email": u.Email,
	}
}
