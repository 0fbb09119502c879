package libnotes_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rohit0033/notes-taking-app/pkg/libnotes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var params map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		require.Equal(t, "george.abitbol@nowhere.lan", params["email"])
		require.Equal(t, "password42", params["password"])

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"token":"jwt42","user":{"_id":"u1","name":"George","email":"george.abitbol@nowhere.lan"}}`)
	}))
	defer server.Close()

	client, err := libnotes.NewDefaultClient(server.URL)
	require.NoError(t, err)

	account, err := client.Login("george.abitbol@nowhere.lan", "password42")
	require.NoError(t, err)
	assert.Equal(t, "jwt42", account.Token)
	assert.Equal(t, "George", account.User.Name)
	assert.Equal(t, "jwt42", client.BearerToken())
}

func TestClientLoginError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"tag":"invalid-auth","message":"Invalid email or password."}}`)
	}))
	defer server.Close()

	client, err := libnotes.NewDefaultClient(server.URL)
	require.NoError(t, err)

	_, err = client.Login("george.abitbol@nowhere.lan", "nope")
	require.Error(t, err)

	apierr, ok := err.(*libnotes.APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apierr.StatusCode)
	assert.Equal(t, "invalid-auth", apierr.Err.Tag)
	assert.Equal(t, "Invalid email or password.", apierr.Error())
}

func TestClientNotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/notes", r.URL.Path)
		require.Equal(t, "Bearer jwt42", r.Header.Get("Authorization"))
		require.Equal(t, "true", r.URL.Query().Get("favorite"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"_id":"n1","title":"Groceries","content":"buy milk","type":"text","isFavorite":true}]`)
	}))
	defer server.Close()

	client, err := libnotes.NewDefaultClient(server.URL)
	require.NoError(t, err)
	client.SetBearerToken("jwt42")

	notes, err := client.Notes(true)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "n1", notes[0].ID)
	assert.True(t, notes[0].IsFavorite)
}

func TestClientCreateNote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/notes", r.URL.Path)

		var params map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		require.Equal(t, "buy milk", params["content"])
		_, hasTitle := params["title"]
		require.False(t, hasTitle)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"_id":"n1","title":"Untitled","content":"buy milk","type":"text"}`)
	}))
	defer server.Close()

	client, err := libnotes.NewDefaultClient(server.URL)
	require.NoError(t, err)
	client.SetBearerToken("jwt42")

	note, err := client.CreateNote(libnotes.CreateNoteParams{Content: "buy milk"})
	require.NoError(t, err)
	assert.Equal(t, "Untitled", note.Title)
}

func TestClientUpdateNotePartial(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/notes/n1", r.URL.Path)

		// Only the set pointer fields must travel.
		payload, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"isFavorite":true}`, string(payload))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"_id":"n1","isFavorite":true}`)
	}))
	defer server.Close()

	client, err := libnotes.NewDefaultClient(server.URL)
	require.NoError(t, err)
	client.SetBearerToken("jwt42")

	favorite := true
	note, err := client.UpdateNote("n1", libnotes.UpdateNoteParams{IsFavorite: &favorite})
	require.NoError(t, err)
	assert.True(t, note.IsFavorite)
}

func TestClientDeleteNote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/notes/n1", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"message":"Note removed"}`)
	}))
	defer server.Close()

	client, err := libnotes.NewDefaultClient(server.URL)
	require.NoError(t, err)
	client.SetBearerToken("jwt42")

	require.NoError(t, client.DeleteNote("n1"))
}

func TestClientAttachImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/notes/n1/image", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "sunset.png", header.Filename)

		payload, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "not-really-a-png", string(payload))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"_id":"n1","image":"http://notes.lan/uploads/file-1-XXXXXXXX.png"}`)
	}))
	defer server.Close()

	client, err := libnotes.NewDefaultClient(server.URL)
	require.NoError(t, err)
	client.SetBearerToken("jwt42")

	note, err := client.AttachImage("n1", "sunset.png", strings.NewReader("not-really-a-png"))
	require.NoError(t, err)
	assert.NotEmpty(t, note.Image)
}

func TestClientTranscribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/audio/transcribe", r.URL.Path)

		_, header, err := r.FormFile("audio")
		require.NoError(t, err)
		assert.Equal(t, "memo.webm", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":true,"transcription":"this is a note","audioFile":"http://notes.lan/uploads/audio-1-XXXXXXXX.webm"}`)
	}))
	defer server.Close()

	client, err := libnotes.NewDefaultClient(server.URL)
	require.NoError(t, err)
	client.SetBearerToken("jwt42")

	transcription, err := client.Transcribe("memo.webm", strings.NewReader("not-really-a-recording"))
	require.NoError(t, err)
	assert.True(t, transcription.Success)
	assert.Equal(t, "this is a note", transcription.Transcription)
}
