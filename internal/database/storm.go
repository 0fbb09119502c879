package database

import (
	"time"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/codec/msgpack"
	"github.com/asdine/storm/v3/q"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	"github.com/rohit0033/notes-taking-app/internal/model"
	"github.com/rohit0033/notes-taking-app/pkg/stormcodec"
)

type strm struct {
	db *storm.DB
}

// StormCodec is the default format used to store data in the database.
var StormCodec = storm.Codec(msgpack.Codec)

// StormCodecFromName returns the storm option for the given codec name.
// An empty name selects the default msgpack codec.
func StormCodecFromName(name string) (func(*storm.Options) error, error) {
	c, err := stormcodec.Lookup(name)
	if err != nil {
		return nil, err
	}
	return storm.Codec(c), nil
}

// StormInit initializes Storm database.
func StormInit(database string, options ...func(*storm.Options) error) error {
	db, err := storm.Open(database, stormOptions(options)...)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	if err := db.Init(&model.User{}); err != nil {
		return errors.Wrap(err, "could not init user index")
	}

	err = db.Init(&model.Note{})
	return errors.Wrap(err, "could not init note index")
}

// StormReIndex reindex Storm database.
func StormReIndex(database string, options ...func(*storm.Options) error) error {
	db, err := storm.Open(database, stormOptions(options)...)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	if err := db.ReIndex(&model.User{}); err != nil {
		return errors.Wrap(err, "could not reindex users")
	}

	err = db.ReIndex(&model.Note{})
	return errors.Wrap(err, "could not reindex notes")
}

// StormOpen returns a new Storm database connection.
func StormOpen(database string, options ...func(*storm.Options) error) (Client, error) {
	db, err := storm.Open(database, stormOptions(options)...)
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}

	return &strm{
		db: db,
	}, nil
}

func stormOptions(options []func(*storm.Options) error) []func(*storm.Options) error {
	if len(options) == 0 {
		return []func(*storm.Options) error{StormCodec}
	}
	return options
}

// Save inserts or updates the entry in database with the given model.
func (c *strm) Save(m model.Model) error {
	t := time.Now().UTC()
	m.SetUpdatedAt(t)

	if m.GetID() == "" {
		m.SetID(uuid.Must(uuid.NewV4()).String())
		m.SetCreatedAt(t)
	}

	return errors.Wrap(c.db.Save(m), "could not save the model")
}

// Close the database.
func (c *strm) Close() error {
	return c.db.Close()
}

// IsNotFound returns true if err is a not found error.
func (c *strm) IsNotFound(err error) bool {
	return errors.Cause(err) == storm.ErrNotFound
}

// FindUser returns the user for the given id (UUID).
func (c *strm) FindUser(id string) (*model.User, error) {
	var user model.User
	if err := c.db.One("ID", id, &user); err != nil {
		return nil, errors.Wrap(err, "find user by id")
	}
	return &user, nil
}

// FindUserByMail returns the user for the given email.
func (c *strm) FindUserByMail(email string) (*model.User, error) {
	var user model.User
	if err := c.db.One("Email", email, &user); err != nil {
		return nil, errors.Wrap(err, "find user by mail")
	}
	return &user, nil
}

// FindNote returns the note for the given id (UUID).
func (c *strm) FindNote(id string) (*model.Note, error) {
	var note model.Note
	if err := c.db.One("ID", id, &note); err != nil {
		return nil, errors.Wrap(err, "could not find note")
	}
	return &note, nil
}

// FindNotesByUserID returns all the notes of the given user, newest first.
func (c *strm) FindNotesByUserID(userID string) ([]*model.Note, error) {
	notes := make([]*model.Note, 0)
	err := c.db.Select(q.Eq("UserID", userID)).OrderBy("CreatedAt").Reverse().Find(&notes)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find notes by user id")
	}
	return notes, nil
}

// FindFavoriteNotesByUserID returns the user's favorite notes, newest first.
func (c *strm) FindFavoriteNotesByUserID(userID string) ([]*model.Note, error) {
	notes := make([]*model.Note, 0)
	err := c.db.Select(q.Eq("UserID", userID), q.Eq("IsFavorite", true)).OrderBy("CreatedAt").Reverse().Find(&notes)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find favorite notes by user id")
	}
	return notes, nil
}

// DeleteNote deletes the note matching the given parameters.
func (c *strm) DeleteNote(id, userID string) error {
	err := c.db.Select(q.Eq("ID", id), q.Eq("UserID", userID)).Delete(&model.Note{})
	return errors.Wrap(err, "could not delete note")
}
