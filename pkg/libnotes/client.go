package libnotes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"

	"github.com/pkg/errors"
)

type (
	// A Client defines all interactions that can be performed on a notes server.
	Client interface {
		// Signup registers a new account and keeps its bearer token.
		Signup(name, email, password string) (*Account, error)
		// Login connects the Client to the notes server and keeps the bearer token.
		Login(email, password string) (*Account, error)
		// BearerToken returns the token used for authenticated requests.
		BearerToken() string
		// SetBearerToken sets the token used for authenticated requests.
		SetBearerToken(token string)
		// Notes returns the user's notes, newest first.
		Notes(favoriteOnly bool) ([]*Note, error)
		// CreateNote persists a new note.
		CreateNote(params CreateNoteParams) (*Note, error)
		// UpdateNote merges the given partial fields into the note.
		UpdateNote(id string, params UpdateNoteParams) (*Note, error)
		// DeleteNote removes the note.
		DeleteNote(id string) error
		// ToggleFavorite flips the note's favorite flag.
		ToggleFavorite(id string) (*Note, error)
		// AttachImage uploads an image and appends it to the note.
		AttachImage(id, filename string, r io.Reader) (*Note, error)
		// RecordAudio uploads a recording as a new audio note.
		RecordAudio(title, content, filename string, r io.Reader) (*Note, error)
		// Transcribe uploads a recording and returns its transcript.
		Transcribe(filename string, r io.Reader) (*Transcription, error)
	}

	p      map[string]any
	client struct {
		http     *http.Client
		endpoint string
		bearer   string
	}
)

// NewDefaultClient returns a new Client with default HTTP client.
func NewDefaultClient(endpoint string) (Client, error) {
	return NewClient(http.DefaultClient, endpoint)
}

// NewClient returns a new Client.
func NewClient(c *http.Client, endpoint string) (Client, error) {
	_, err := url.Parse(endpoint)
	return &client{endpoint: endpoint, http: c}, errors.Wrap(err, "could not parse endpoint")
}

func (c *client) BearerToken() string {
	return c.bearer
}

func (c *client) SetBearerToken(token string) {
	c.bearer = token
}

func (c *client) Signup(name, email, password string) (*Account, error) {
	return c.authenticate("/auth/signup", p{"name": name, "email": email, "password": password})
}

func (c *client) Login(email, password string) (*Account, error) {
	return c.authenticate("/auth/login", p{"email": email, "password": password})
}

func (c *client) authenticate(route string, params p) (*Account, error) {
	var account Account
	if err := c.do(http.MethodPost, route, params, &account); err != nil {
		return nil, err
	}

	c.bearer = account.Token
	return &account, nil
}

func (c *client) Notes(favoriteOnly bool) ([]*Note, error) {
	route := "/notes"
	if favoriteOnly {
		route += "?favorite=true"
	}

	var notes []*Note
	return notes, c.do(http.MethodGet, route, nil, &notes)
}

func (c *client) CreateNote(params CreateNoteParams) (*Note, error) {
	var note Note
	return &note, c.do(http.MethodPost, "/notes", params, &note)
}

func (c *client) UpdateNote(id string, params UpdateNoteParams) (*Note, error) {
	var note Note
	return &note, c.do(http.MethodPut, "/notes/"+id, params, &note)
}

func (c *client) DeleteNote(id string) error {
	return c.do(http.MethodDelete, "/notes/"+id, nil, nil)
}

func (c *client) ToggleFavorite(id string) (*Note, error) {
	var note Note
	return &note, c.do(http.MethodPatch, "/notes/"+id+"/favorite", nil, &note)
}

func (c *client) AttachImage(id, filename string, r io.Reader) (*Note, error) {
	var note Note
	return &note, c.upload(http.MethodPut, "/notes/"+id+"/image", "file", filename, r, nil, &note)
}

func (c *client) RecordAudio(title, content, filename string, r io.Reader) (*Note, error) {
	fields := map[string]string{}
	if title != "" {
		fields["title"] = title
	}
	if content != "" {
		fields["content"] = content
	}

	var note Note
	return &note, c.upload(http.MethodPost, "/audio/record", "audio", filename, r, fields, &note)
}

func (c *client) Transcribe(filename string, r io.Reader) (*Transcription, error) {
	var transcription Transcription
	return &transcription, c.upload(http.MethodPost, "/audio/transcribe", "audio", filename, r, nil, &transcription)
}

// do performs a JSON request and parses the response into v when not nil.
func (c *client) do(method, route string, params any, v any) error {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return errors.Wrap(err, "could not parse endpoint")
	}
	ref, err := url.Parse(route)
	if err != nil {
		return errors.Wrap(err, "could not parse route")
	}
	ref.Path = path.Join(u.Path, ref.Path)
	u = u.ResolveReference(ref)

	//
	// Build request
	var body io.Reader
	if params != nil {
		payload, err := json.Marshal(params)
		if err != nil {
			return errors.Wrap(err, "could not serialize params")
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, u.String(), body)
	if err != nil {
		return errors.Wrap(err, "could not build request")
	}
	req.Close = true
	req.Header.Add("Content-Type", "application/json")

	return c.perform(req, v)
}

// upload performs a multipart request carrying one file and optional fields.
func (c *client) upload(method, route, field, filename string, r io.Reader, fields map[string]string, v any) error {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return errors.Wrap(err, "could not parse endpoint")
	}
	u.Path = path.Join(u.Path, route)

	//
	// Build request
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return errors.Wrap(err, "could not write form field")
		}
	}

	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return errors.Wrap(err, "could not create form file")
	}
	if _, err := io.Copy(part, r); err != nil {
		return errors.Wrap(err, "could not buffer upload")
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "could not finalize form")
	}

	req, err := http.NewRequest(method, u.String(), &body)
	if err != nil {
		return errors.Wrap(err, "could not build request")
	}
	req.Close = true
	req.Header.Add("Content-Type", w.FormDataContentType())

	return c.perform(req, v)
}

func (c *client) perform(req *http.Request, v any) error {
	req.Header.Add("Accept", "application/json")
	if c.bearer != "" {
		req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.bearer))
	}

	//
	// Perform request
	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "could not perform request")
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return parseAPIError(res.Body, res.StatusCode)
	}

	//
	// Process response
	if v == nil {
		return nil
	}
	dec := json.NewDecoder(res.Body)
	return errors.Wrap(dec.Decode(v), "could not parse response")
}
