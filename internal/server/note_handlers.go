package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rohit0033/notes-taking-app/internal/apierror"
	"github.com/rohit0033/notes-taking-app/internal/database"
	"github.com/rohit0033/notes-taking-app/internal/server/service"
	"github.com/rohit0033/notes-taking-app/internal/server/storage"
)

// note contains all note handlers.
type note struct {
	db    database.Client
	files storage.FileStore
}

///// List
////
//

// List returns the notes of the authenticated user, newest first.
// `?favorite=true` restricts the list to favorites.
func (h *note) List(c echo.Context) error {
	service := service.NewNote(h.db, h.files)

	notes, err := service.List(currentUser(c), c.QueryParam("favorite") == "true")
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, notes)
}

///// Create
////
//

// Create persists a new note. The body is either JSON or multipart form
// data carrying an optional attachment under the `file` field.
func (h *note) Create(c echo.Context) error {
	// Filter params
	var params service.CreateNoteParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.New("Could not get note params."))
	}

	upload, release, err := formUpload(c, "file")
	if err != nil {
		return err
	}
	defer release()
	params.Upload = upload

	service := service.NewNote(h.db, h.files)
	note, err := service.Create(currentUser(c), params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, note)
}

///// Update
////
//

// Update merges the given partial fields into the note.
func (h *note) Update(c echo.Context) error {
	// Filter params
	var params service.UpdateNoteParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.New("Could not get note params."))
	}

	service := service.NewNote(h.db, h.files)
	note, err := service.Update(currentUser(c), c.Param("id"), params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, note)
}

///// Delete
////
//

// Delete removes the note.
func (h *note) Delete(c echo.Context) error {
	service := service.NewNote(h.db, h.files)

	if err := service.Delete(currentUser(c), c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Note removed"})
}

///// ToggleFavorite
////
//

// ToggleFavorite flips the note's favorite flag.
func (h *note) ToggleFavorite(c echo.Context) error {
	service := service.NewNote(h.db, h.files)

	note, err := service.ToggleFavorite(currentUser(c), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, note)
}

///// AttachImage
////
//

// AttachImage stores the uploaded image and appends its public URL to the note.
func (h *note) AttachImage(c echo.Context) error {
	upload, release, err := formUpload(c, "file")
	if err != nil {
		return err
	}
	defer release()

	service := service.NewNote(h.db, h.files)
	note, err := service.AttachImage(currentUser(c), c.Param("id"), upload)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, note)
}

// formUpload extracts an optional multipart file from the request.
// The release function must be called once the upload has been consumed.
func formUpload(c echo.Context, field string) (*service.Upload, func(), error) {
	release := func() {}

	fh, err := c.FormFile(field)
	if err != nil {
		// Not a multipart request or no file provided.
		return nil, release, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, release, errors.Wrap(err, "could not open uploaded file")
	}

	return &service.Upload{
		Field:    field,
		Filename: fh.Filename,
		MIME:     fh.Header.Get("Content-Type"),
		Data:     f,
	}, func() { f.Close() }, nil
}
