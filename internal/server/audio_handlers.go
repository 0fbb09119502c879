package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rohit0033/notes-taking-app/internal/apierror"
	"github.com/rohit0033/notes-taking-app/internal/database"
	"github.com/rohit0033/notes-taking-app/internal/model"
	"github.com/rohit0033/notes-taking-app/internal/server/service"
	"github.com/rohit0033/notes-taking-app/internal/server/storage"
	"github.com/rohit0033/notes-taking-app/internal/transcribe"
)

// audio contains the voice note handlers.
type audio struct {
	db     database.Client
	files  storage.FileStore
	engine func() transcribe.Engine
}

///// Record
////
//

// Record stores an uploaded recording as an audio note.
func (h *audio) Record(c echo.Context) error {
	upload, release, err := formUpload(c, "audio")
	if err != nil {
		return err
	}
	defer release()

	if upload == nil {
		return apierror.NewWithTagCode(http.StatusBadRequest, "missing-file", "No audio file provided")
	}

	params := service.CreateNoteParams{
		Title:   c.FormValue("title"),
		Content: c.FormValue("content"),
		Type:    model.TypeAudio,
		Upload:  upload,
	}
	if params.Title == "" {
		params.Title = "Audio Note"
	}
	if params.Content == "" {
		params.Content = "Audio content"
	}

	service := service.NewNote(h.db, h.files)
	note, err := service.Create(currentUser(c), params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, note)
}

///// Transcribe
////
//

// Transcribe stores the uploaded recording and runs it through the
// recognition engine, returning the finalized transcript.
func (h *audio) Transcribe(c echo.Context) error {
	upload, release, err := formUpload(c, "audio")
	if err != nil {
		return err
	}
	defer release()

	if upload == nil {
		return apierror.NewWithTagCode(http.StatusBadRequest, "missing-file", "No audio file provided")
	}

	url, err := h.files.Store("audio", upload.Filename, upload.Data)
	if err != nil {
		return errors.Wrap(err, "could not store recording")
	}

	capturer := transcribe.NewCapturer(h.engine())
	if err := capturer.Start(c.Request().Context()); err != nil {
		if errors.Is(err, transcribe.ErrUnsupported) {
			return apierror.NewWithTagCode(http.StatusNotImplemented, "unsupported", "Transcription is not available.")
		}
		return errors.Wrap(err, "could not start transcription")
	}

	transcription, err := capturer.Stop()
	if err != nil {
		var engineErr *transcribe.EngineError
		if errors.As(err, &engineErr) {
			return apierror.NewWithTagCode(http.StatusUnprocessableEntity, engineErr.Code, "Transcription failed.")
		}
		return errors.Wrap(err, "could not finalize transcription")
	}

	return c.JSON(http.StatusOK, service.M{
		"success":       true,
		"transcription": transcription,
		"audioFile":     url,
	})
}
