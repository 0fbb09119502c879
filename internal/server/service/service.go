package service

import "io"

// M is an arbitrary map.
type M map[string]any

// An Upload is a file received as multipart form data.
type Upload struct {
	// Field is the multipart field the file was posted under.
	Field    string
	Filename string
	MIME     string
	Data     io.Reader
}
