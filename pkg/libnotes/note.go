package libnotes

import "time"

// Note types known by the server.
const (
	TypeText  = "text"
	TypeAudio = "audio"
)

type (
	// A Note is a single entry of the user's collection.
	Note struct {
		ID         string     `json:"_id"`
		UserID     string     `json:"userId"`
		Title      string     `json:"title"`
		Content    string     `json:"content"`
		Type       string     `json:"type"`
		IsFavorite bool       `json:"isFavorite"`
		Image      string     `json:"image,omitempty"`
		Images     []string   `json:"images,omitempty"`
		Audio      string     `json:"audio,omitempty"`
		CreatedAt  *time.Time `json:"createdAt,omitempty"`
		UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
	}

	// A User is the public shape of an account.
	User struct {
		ID    string `json:"_id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	// An Account is the response of a successful signup or login.
	Account struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}

	// A Transcription is the response of the transcription endpoint.
	Transcription struct {
		Success       bool   `json:"success"`
		Transcription string `json:"transcription"`
		AudioFile     string `json:"audioFile"`
	}

	// CreateNoteParams are the fields of a new note.
	CreateNoteParams struct {
		Title   string `json:"title,omitempty"`
		Content string `json:"content"`
		Type    string `json:"type,omitempty"`
	}

	// UpdateNoteParams are the partial fields of a note update.
	// Nil pointers leave the server-side value untouched.
	UpdateNoteParams struct {
		Title      *string `json:"title,omitempty"`
		Content    *string `json:"content,omitempty"`
		IsFavorite *bool   `json:"isFavorite,omitempty"`
	}
)
