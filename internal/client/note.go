package client

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/rohit0033/notes-taking-app/pkg/libnotes"
)

// open loads the stored credentials and returns a refreshed store.
func open() (*Store, error) {
	cfg, err := Load()
	if err != nil {
		return nil, errors.Wrap(err, "could not load config")
	}

	client, err := libnotes.NewDefaultClient(cfg.Endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "could not reach notes endpoint")
	}
	client.SetBearerToken(cfg.BearerToken)

	store := NewStore(client)
	if err = store.Refresh(); err != nil {
		return nil, err
	}
	return store, nil
}

// ListNotes prints the notes matching the query, newest first.
func ListNotes(query string, favoriteOnly bool) error {
	store, err := open()
	if err != nil {
		return err
	}

	notes := store.List(query)
	if favoriteOnly {
		favorites := notes[:0]
		for _, note := range notes {
			if note.IsFavorite {
				favorites = append(favorites, note)
			}
		}
		notes = favorites
	}

	if len(notes) == 0 {
		fmt.Println("No notes found")
		return nil
	}

	for _, note := range notes {
		marker := " "
		if note.IsFavorite {
			marker = "*"
		}
		fmt.Printf("%s %s  [%s] %s\n", marker, note.ID, note.Type, note.Title)
	}
	return nil
}

// ShowNote prints a single note with its content and attachments.
func ShowNote(id string) error {
	store, err := open()
	if err != nil {
		return err
	}

	note := store.Get(id)
	if note == nil {
		return errors.Errorf("no note with id %s", id)
	}

	fmt.Printf("%s (%s)\n\n%s\n", note.Title, note.Type, note.Content)
	for _, image := range note.Images {
		fmt.Println("image:", image)
	}
	if note.Audio != "" {
		fmt.Println("audio:", note.Audio)
	}
	return nil
}

// NewNote creates a note from prompted title and content.
func NewNote() error {
	store, err := open()
	if err != nil {
		return err
	}

	title, err := readline.Line("Title: ")
	if err != nil {
		return errors.Wrap(err, "could not read title from stdin")
	}
	content, err := readline.Line("Content: ")
	if err != nil {
		return errors.Wrap(err, "could not read content from stdin")
	}

	note, err := store.Create(libnotes.CreateNoteParams{Title: title, Content: content})
	if err != nil {
		return err
	}

	fmt.Println("Created", note.ID)
	return nil
}

// EditNote updates the note with prompted fields. Empty answers keep the
// current values.
func EditNote(id string) error {
	store, err := open()
	if err != nil {
		return err
	}

	note := store.Get(id)
	if note == nil {
		return errors.Errorf("no note with id %s", id)
	}

	title, err := readline.Line(fmt.Sprintf("Title [%s]: ", note.Title))
	if err != nil {
		return errors.Wrap(err, "could not read title from stdin")
	}
	content, err := readline.Line("Content []: ")
	if err != nil {
		return errors.Wrap(err, "could not read content from stdin")
	}

	params := libnotes.UpdateNoteParams{}
	if title != "" {
		params.Title = &title
	}
	if content != "" {
		params.Content = &content
	}

	if _, err = store.Update(id, params); err != nil {
		return err
	}

	fmt.Println("Updated", id)
	return nil
}

// RemoveNote deletes the note.
func RemoveNote(id string) error {
	store, err := open()
	if err != nil {
		return err
	}

	if err = store.Remove(id); err != nil {
		return err
	}

	fmt.Println("Removed", id)
	return nil
}

// FavoriteNote flips the note's favorite flag.
func FavoriteNote(id string) error {
	store, err := open()
	if err != nil {
		return err
	}

	note, err := store.ToggleFavorite(id)
	if err != nil {
		return err
	}

	if note.IsFavorite {
		fmt.Println("Marked as favorite")
	} else {
		fmt.Println("Unmarked as favorite")
	}
	return nil
}

// AttachImage uploads an image file to the note.
func AttachImage(id, filename string) error {
	store, err := open()
	if err != nil {
		return err
	}

	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "could not open image file")
	}
	defer f.Close()

	note, err := store.AttachImage(id, filepath.Base(filename), f)
	if err != nil {
		return err
	}

	fmt.Println("Attached", note.Image)
	return nil
}
