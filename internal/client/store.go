package client

import (
	"encoding/base64"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/pkg/errors"
	"github.com/rohit0033/notes-taking-app/pkg/libnotes"
)

var (
	// ErrEmptyContent is returned when a note is created without content.
	ErrEmptyContent = errors.New("note content can't be empty")
	// ErrMissingID is returned when a mutation targets no note.
	ErrMissingID = errors.New("missing note id")
	// ErrCreateInFlight is returned when a creation is already running.
	// Creating a note is not idempotent so it must not be retried blindly.
	ErrCreateInFlight = errors.New("a note creation is already in flight")
)

// refetchDelay coalesces the cache refreshes triggered by a burst of
// mutations into a single fetch of the whole collection.
const refetchDelay = 500 * time.Millisecond

// A Store is the client-side cache of the user's note collection.
// Mutations are applied optimistically and reconciled with the server's
// responses, then the whole cached collection is invalidated so the next
// read reflects server truth. The full refetch sidesteps merge logic at
// the cost of an extra round trip.
type Store struct {
	mu       sync.Mutex
	client   libnotes.Client
	notes    []*libnotes.Note
	creating bool
	refetch  func(f func())
}

// NewStore returns an empty store backed by the given client.
func NewStore(client libnotes.Client) *Store {
	return &Store{
		client:  client,
		refetch: debounce.New(refetchDelay),
	}
}

// Refresh replaces the whole cache with the server's collection.
func (s *Store) Refresh() error {
	notes, err := s.client.Notes(false)
	if err != nil {
		return errors.Wrap(err, "could not fetch notes")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = notes
	return nil
}

// List returns the cached notes matching the query, newest first.
// The match is a case-insensitive substring search on title and content.
func (s *Store) List(query string) []*libnotes.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	if query == "" {
		return append([]*libnotes.Note{}, s.notes...)
	}

	query = strings.ToLower(query)
	var notes []*libnotes.Note
	for _, note := range s.notes {
		if strings.Contains(strings.ToLower(note.Title), query) ||
			strings.Contains(strings.ToLower(note.Content), query) {
			notes = append(notes, note)
		}
	}
	return notes
}

// Get returns the cached note with the given id.
func (s *Store) Get(id string) *libnotes.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(id)
}

// Creating reports whether a creation is currently in flight.
func (s *Store) Creating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creating
}

// Create persists a new note and prepends it to the cache.
func (s *Store) Create(params libnotes.CreateNoteParams) (*libnotes.Note, error) {
	if strings.TrimSpace(params.Content) == "" {
		return nil, ErrEmptyContent
	}

	s.mu.Lock()
	if s.creating {
		s.mu.Unlock()
		return nil, ErrCreateInFlight
	}
	s.creating = true
	s.mu.Unlock()

	note, err := s.client.CreateNote(params)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.creating = false
	if err != nil {
		return nil, errors.Wrap(err, "could not create note")
	}

	s.notes = append([]*libnotes.Note{note}, s.notes...)
	s.invalidate()
	return note, nil
}

// Update merges the given partial fields into the note.
func (s *Store) Update(id string, params libnotes.UpdateNoteParams) (*libnotes.Note, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	note, err := s.client.UpdateNote(id, params)
	if err != nil {
		return nil, errors.Wrap(err, "could not update note")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.replace(note)
	s.invalidate()
	return note, nil
}

// Remove deletes the note from the server and the cache.
func (s *Store) Remove(id string) error {
	if id == "" {
		return ErrMissingID
	}

	if err := s.client.DeleteNote(id); err != nil {
		return errors.Wrap(err, "could not delete note")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, note := range s.notes {
		if note.ID == id {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			break
		}
	}
	s.invalidate()
	return nil
}

// ToggleFavorite flips the note's favorite flag.
// The cache is flipped right away and reverted when the server disagrees.
func (s *Store) ToggleFavorite(id string) (*libnotes.Note, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	s.mu.Lock()
	if cached := s.find(id); cached != nil {
		cached.IsFavorite = !cached.IsFavorite
	}
	s.mu.Unlock()

	note, err := s.client.ToggleFavorite(id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if cached := s.find(id); cached != nil {
			cached.IsFavorite = !cached.IsFavorite
		}
		return nil, errors.Wrap(err, "could not toggle favorite")
	}

	s.replace(note)
	s.invalidate()
	return note, nil
}

// AttachImage uploads an image to the note. The cached note previews the
// image as an inline data URL until the upload resolves, then the server's
// version wins and a delayed refetch reconciles the whole collection.
func (s *Store) AttachImage(id, filename string, r io.Reader) (*libnotes.Note, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not read image")
	}

	s.mu.Lock()
	var previous string
	cached := s.find(id)
	if cached != nil {
		previous = cached.Image
		cached.Image = dataURL(filename, payload)
	}
	s.mu.Unlock()

	note, err := s.client.AttachImage(id, filename, strings.NewReader(string(payload)))

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if cached != nil {
			cached.Image = previous
		}
		return nil, errors.Wrap(err, "could not attach image")
	}

	s.replace(note)
	s.invalidate()
	return note, nil
}

// invalidate schedules a debounced refetch of the whole collection.
// It may be called with the lock held, the fetch happens on its own goroutine.
func (s *Store) invalidate() {
	s.refetch(func() {
		// A failed refetch keeps the optimistic cache, which is already
		// reconciled with the mutation response.
		_ = s.Refresh()
	})
}

// find must be called with the lock held.
func (s *Store) find(id string) *libnotes.Note {
	for _, note := range s.notes {
		if note.ID == id {
			return note
		}
	}
	return nil
}

// replace must be called with the lock held.
func (s *Store) replace(note *libnotes.Note) {
	for i, cached := range s.notes {
		if cached.ID == note.ID {
			s.notes[i] = note
			return
		}
	}
	s.notes = append([]*libnotes.Note{note}, s.notes...)
}

func dataURL(filename string, payload []byte) string {
	mediatype := mime.TypeByExtension(filepath.Ext(filename))
	if mediatype == "" {
		mediatype = "application/octet-stream"
	}
	return "data:" + mediatype + ";base64," + base64.StdEncoding.EncodeToString(payload)
}
