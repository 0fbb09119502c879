package model

const (
	// TypeText is the kind of a typed note.
	TypeText = "text"
	// TypeAudio is the kind of a note created from a voice transcript.
	TypeAudio = "audio"

	// DefaultTitle is used when a note is created without a title.
	DefaultTitle = "Untitled"
)

// A Note represents a database record and the rendered API response.
type Note struct {
	Base `msgpack:",inline" storm:"inline"`

	UserID     string `json:"userId"     msgpack:"user_id" storm:"index"`
	Title      string `json:"title"      msgpack:"title"`
	Content    string `json:"content"    msgpack:"content"`
	Type       string `json:"type"       msgpack:"type"`
	IsFavorite bool   `json:"isFavorite" msgpack:"is_favorite" storm:"index"`

	// Image mirrors the last element of Images as a convenience for clients.
	Image  string   `json:"image,omitempty"  msgpack:"image,omitempty"`
	Images []string `json:"images,omitempty" msgpack:"images,omitempty"`
	Audio  string   `json:"audio,omitempty"  msgpack:"audio,omitempty"`
}

// NewNote returns a new note with default params.
func NewNote() *Note {
	return &Note{
		Title: DefaultTitle,
		Type:  TypeText,
	}
}

// ValidType returns true when t is a known note type.
func ValidType(t string) bool {
	return t == TypeText || t == TypeAudio
}
