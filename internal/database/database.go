package database

import (
	"github.com/rohit0033/notes-taking-app/internal/model"
)

// A Client can interact with the database.
type Client interface {
	// Save inserts or updates the entry in database with the given model.
	Save(m model.Model) error
	// Close the database.
	Close() error
	// IsNotFound returns true if err is a not found error.
	IsNotFound(err error) bool

	// FindUser returns the user for the given id (UUID).
	FindUser(id string) (*model.User, error)
	// FindUserByMail returns the user for the given email.
	FindUserByMail(email string) (*model.User, error)

	// FindNote returns the note for the given id (UUID).
	FindNote(id string) (*model.Note, error)
	// FindNotesByUserID returns all the notes of the given user, newest first.
	FindNotesByUserID(userID string) ([]*model.Note, error)
	// FindFavoriteNotesByUserID returns the user's favorite notes, newest first.
	FindFavoriteNotesByUserID(userID string) ([]*model.Note, error)
	// DeleteNote deletes the note matching the given parameters.
	DeleteNote(id, userID string) error
}
