package client

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rohit0033/notes-taking-app/pkg/libnotes"
)

// Record uploads a recording, transcribes it server-side and creates an
// audio note carrying the transcript.
func Record(filename string) error {
	cfg, err := Load()
	if err != nil {
		return errors.Wrap(err, "could not load config")
	}

	client, err := libnotes.NewDefaultClient(cfg.Endpoint)
	if err != nil {
		return errors.Wrap(err, "could not reach notes endpoint")
	}
	client.SetBearerToken(cfg.BearerToken)

	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "could not open recording")
	}
	defer f.Close()

	transcription, err := client.Transcribe(filepath.Base(filename), f)
	if err != nil {
		return errors.Wrap(err, "could not transcribe recording")
	}

	content := transcription.Transcription
	if content == "" {
		content = "Audio content"
	}

	note, err := client.CreateNote(libnotes.CreateNoteParams{
		Title:   "Audio Note",
		Content: content,
		Type:    libnotes.TypeAudio,
	})
	if err != nil {
		return errors.Wrap(err, "could not create note")
	}

	fmt.Println("Created", note.ID)
	fmt.Println("Audio stored at", transcription.AudioFile)
	return nil
}
