package database_test

import (
	"os"
	"testing"
	"time"

	"github.com/rohit0033/notes-taking-app/internal/database"
	"github.com/rohit0033/notes-taking-app/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (database.Client, func()) {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "notes.*.db")
	require.NoError(t, err)
	filename := tmpfile.Name()
	tmpfile.Close()

	db, err := database.StormOpen(filename)
	require.NoError(t, err)

	return db, func() {
		db.Close()
		os.RemoveAll(filename)
	}
}

func TestStormSave(t *testing.T) {
	db, cleanup := setup(t)
	defer cleanup()

	note := model.NewNote()
	note.UserID = "0f807d12-d9e5-44e9-bba1-0287e929a93c"
	note.Content = "Buy milk"

	require.NoError(t, db.Save(note))
	assert.NotEmpty(t, note.ID)
	assert.NotNil(t, note.CreatedAt)
	assert.NotNil(t, note.UpdatedAt)

	created := *note.CreatedAt
	time.Sleep(10 * time.Millisecond)

	require.NoError(t, db.Save(note))
	assert.Equal(t, created, *note.CreatedAt)
	assert.True(t, note.UpdatedAt.After(created))
}

func TestStormFindNotesByUserID(t *testing.T) {
	db, cleanup := setup(t)
	defer cleanup()

	owner := "0f807d12-d9e5-44e9-bba1-0287e929a93c"
	for _, content := range []string{"first", "second", "third"} {
		note := model.NewNote()
		note.UserID = owner
		note.Content = content
		require.NoError(t, db.Save(note))
		time.Sleep(5 * time.Millisecond) // distinct CreatedAt for ordering
	}

	foreign := model.NewNote()
	foreign.UserID = "b329a187-ddf8-4e9b-960d-49c272a58794"
	foreign.Content = "not yours"
	require.NoError(t, db.Save(foreign))

	notes, err := db.FindNotesByUserID(owner)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "third", notes[0].Content) // newest first
	assert.Equal(t, "first", notes[2].Content)
}

func TestStormFindFavoriteNotesByUserID(t *testing.T) {
	db, cleanup := setup(t)
	defer cleanup()

	owner := "0f807d12-d9e5-44e9-bba1-0287e929a93c"

	note := model.NewNote()
	note.UserID = owner
	note.Content = "plain"
	require.NoError(t, db.Save(note))

	fav := model.NewNote()
	fav.UserID = owner
	fav.Content = "starred"
	fav.IsFavorite = true
	require.NoError(t, db.Save(fav))

	notes, err := db.FindFavoriteNotesByUserID(owner)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "starred", notes[0].Content)
}

func TestStormDeleteNote(t *testing.T) {
	db, cleanup := setup(t)
	defer cleanup()

	note := model.NewNote()
	note.UserID = "0f807d12-d9e5-44e9-bba1-0287e929a93c"
	note.Content = "Buy milk"
	require.NoError(t, db.Save(note))

	// Wrong owner does not delete anything.
	err := db.DeleteNote(note.ID, "b329a187-ddf8-4e9b-960d-49c272a58794")
	assert.True(t, db.IsNotFound(err))

	_, err = db.FindNote(note.ID)
	require.NoError(t, err)

	require.NoError(t, db.DeleteNote(note.ID, note.UserID))
	_, err = db.FindNote(note.ID)
	assert.True(t, db.IsNotFound(err))
}

func TestStormCodecFromName(t *testing.T) {
	for _, name := range []string{"", "msgpack", "cbor", "binc"} {
		option, err := database.StormCodecFromName(name)
		assert.NoError(t, err)
		assert.NotNil(t, option)
	}

	_, err := database.StormCodecFromName("bson")
	assert.Error(t, err)
}
