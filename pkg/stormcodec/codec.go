// Package stormcodec exposes the serialization formats supported by the
// notes database, keyed by the name used in the server configuration.
package stormcodec

import (
	"bytes"

	"github.com/asdine/storm/v3/codec"
	"github.com/asdine/storm/v3/codec/msgpack"
	"github.com/pkg/errors"
	ucodec "github.com/ugorji/go/codec"
)

// Lookup returns the codec registered under the given name.
// An empty name selects msgpack.
func Lookup(name string) (codec.MarshalUnmarshaler, error) {
	switch name {
	case "", "msgpack":
		return msgpack.Codec, nil
	case "cbor":
		return ugorjiCodec{name: "cbor", handle: new(ucodec.CborHandle)}, nil
	case "binc":
		return ugorjiCodec{name: "binc", handle: new(ucodec.BincHandle)}, nil
	}
	return nil, errors.Errorf("unknown database codec: %s", name)
}

// ugorjiCodec adapts a go/codec handle to storm's codec interface.
type ugorjiCodec struct {
	name   string
	handle ucodec.Handle
}

func (c ugorjiCodec) Marshal(v any) ([]byte, error) {
	var b bytes.Buffer
	err := ucodec.NewEncoder(&b, c.handle).Encode(v)
	if err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (c ugorjiCodec) Unmarshal(b []byte, v any) error {
	return ucodec.NewDecoder(bytes.NewReader(b), c.handle).Decode(v)
}

func (c ugorjiCodec) Name() string {
	return c.name
}
