package service

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/rohit0033/notes-taking-app/internal/apierror"
	"github.com/rohit0033/notes-taking-app/internal/database"
	"github.com/rohit0033/notes-taking-app/internal/model"
	"github.com/rohit0033/notes-taking-app/internal/server/storage"
)

type (
	// A NoteService is the authoritative CRUD surface of the note collection.
	// Every operation validates ownership server-side.
	NoteService interface {
		List(user *model.User, favoriteOnly bool) ([]*model.Note, error)
		Create(user *model.User, params CreateNoteParams) (*model.Note, error)
		Update(user *model.User, id string, params UpdateNoteParams) (*model.Note, error)
		Delete(user *model.User, id string) error
		ToggleFavorite(user *model.User, id string) (*model.Note, error)
		AttachImage(user *model.User, id string, upload *Upload) (*model.Note, error)
	}

	// CreateNoteParams are used to create a note.
	CreateNoteParams struct {
		Title   string `json:"title" form:"title"`
		Content string `json:"content" form:"content"`
		Type    string `json:"type" form:"type"`
		Upload  *Upload
	}

	// UpdateNoteParams are the partial fields of a note update.
	// Nil pointers mean the field is left untouched.
	UpdateNoteParams struct {
		Title      *string `json:"title"`
		Content    *string `json:"content"`
		IsFavorite *bool   `json:"isFavorite"`
	}

	noteService struct {
		db    database.Client
		files storage.FileStore
	}
)

// NewNote returns a new NoteService.
func NewNote(db database.Client, files storage.FileStore) NoteService {
	return &noteService{
		db:    db,
		files: files,
	}
}

func (s *noteService) List(user *model.User, favoriteOnly bool) ([]*model.Note, error) {
	if favoriteOnly {
		return s.db.FindFavoriteNotesByUserID(user.ID)
	}
	return s.db.FindNotesByUserID(user.ID)
}

func (s *noteService) Create(user *model.User, params CreateNoteParams) (*model.Note, error) {
	note := model.NewNote()
	note.UserID = user.ID

	if title := strings.TrimSpace(params.Title); title != "" {
		note.Title = title
	}

	note.Content = strings.TrimSpace(params.Content)
	if note.Content == "" {
		return nil, apierror.Validation("Validation Error", map[string]string{
			"content": "Content is required",
		})
	}

	if params.Type != "" {
		if !model.ValidType(params.Type) {
			return nil, apierror.Validation("Validation Error", map[string]string{
				"type": "Type must be text or audio",
			})
		}
		note.Type = params.Type
	}

	// An optional upload is classified by the posted field and its declared
	// media type. Browsers often post blobs as application/octet-stream so
	// the field name takes precedence.
	if params.Upload != nil {
		url, err := s.files.Store(params.Upload.Field, params.Upload.Filename, params.Upload.Data)
		if err != nil {
			return nil, errors.Wrap(err, "could not store attachment")
		}

		if params.Upload.Field == "audio" || strings.HasPrefix(params.Upload.MIME, "audio/") {
			note.Audio = url
		} else {
			note.Images = append(note.Images, url)
			note.Image = url
		}
	}

	if err := s.db.Save(note); err != nil {
		return nil, errors.Wrap(err, "could not persist note")
	}
	return note, nil
}

func (s *noteService) Update(user *model.User, id string, params UpdateNoteParams) (*model.Note, error) {
	note, err := s.find(user, id)
	if err != nil {
		return nil, err
	}

	if params.Content != nil {
		content := strings.TrimSpace(*params.Content)
		if content == "" {
			return nil, apierror.Validation("Validation Error", map[string]string{
				"content": "Content is required",
			})
		}
		note.Content = content
	}

	if params.Title != nil {
		if title := strings.TrimSpace(*params.Title); title != "" {
			note.Title = title
		}
	}

	if params.IsFavorite != nil {
		note.IsFavorite = *params.IsFavorite
	}

	// Type is immutable after creation and is deliberately not merged.

	if err := s.db.Save(note); err != nil {
		return nil, errors.Wrap(err, "could not persist note")
	}
	return note, nil
}

func (s *noteService) Delete(user *model.User, id string) error {
	if _, err := s.find(user, id); err != nil {
		return err
	}

	return errors.Wrap(s.db.DeleteNote(id, user.ID), "could not delete note")
}

func (s *noteService) ToggleFavorite(user *model.User, id string) (*model.Note, error) {
	note, err := s.find(user, id)
	if err != nil {
		return nil, err
	}

	note.IsFavorite = !note.IsFavorite

	if err := s.db.Save(note); err != nil {
		return nil, errors.Wrap(err, "could not persist note")
	}
	return note, nil
}

func (s *noteService) AttachImage(user *model.User, id string, upload *Upload) (*model.Note, error) {
	if upload == nil {
		return nil, apierror.NewWithTagCode(400, "missing-file", "No image file provided")
	}

	note, err := s.find(user, id)
	if err != nil {
		return nil, err
	}

	url, err := s.files.Store(upload.Field, upload.Filename, upload.Data)
	if err != nil {
		return nil, errors.Wrap(err, "could not store attachment")
	}

	note.Images = append(note.Images, url)
	note.Image = url

	if err := s.db.Save(note); err != nil {
		return nil, errors.Wrap(err, "could not persist note")
	}
	return note, nil
}

// find fetches the note and checks its ownership.
// A foreign note renders the same NotFound as a missing one so its
// existence is not leaked to other accounts.
func (s *noteService) find(user *model.User, id string) (*model.Note, error) {
	note, err := s.db.FindNote(id)
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, apierror.NotFound("Note not found")
		}
		return nil, errors.Wrap(err, "could not get access to database")
	}

	if note.UserID != user.ID {
		return nil, apierror.NotFound("Note not found")
	}

	return note, nil
}
