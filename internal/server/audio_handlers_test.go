package server_test

import (
	"net/http"
	"testing"

	"github.com/appleboy/gofight/v2"
	"github.com/rohit0033/notes-taking-app/internal/transcribe"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fastjson"
)

func TestRequestAudioRecord(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()

	user := createUser(ioc)
	header := authorization(ioc, user)

	params := gofight.D{"title": "Standup"}
	r.POST("/audio/record").SetHeader(header).SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"missing-file","message":"No audio file provided"}}`, r.Body.String())
	})

	file := []gofight.UploadFile{
		{Path: "memo.webm", Name: "audio", Content: []byte("not-really-a-recording")},
	}

	r.POST("/audio/record").SetHeader(header).SetFileFromPath(file).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusCreated, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)

		assert.Equal(t, "Audio Note", string(v.Get("title").GetStringBytes()))
		assert.Equal(t, "Audio content", string(v.Get("content").GetStringBytes()))
		assert.Equal(t, "audio", string(v.Get("type").GetStringBytes()))
		assert.Regexp(t, `^http://notes\.lan/uploads/audio-\d+-\w{8}\.webm$`, string(v.Get("audio").GetStringBytes()))
	})

	r.POST("/audio/record").SetHeader(header).SetFileFromPath(file, gofight.H{"title": "Standup", "content": "recap"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusCreated, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)

		assert.Equal(t, "Standup", string(v.Get("title").GetStringBytes()))
		assert.Equal(t, "recap", string(v.Get("content").GetStringBytes()))
	})
}

func TestRequestAudioTranscribe(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()

	user := createUser(ioc)
	header := authorization(ioc, user)

	file := []gofight.UploadFile{
		{Path: "memo.webm", Name: "audio", Content: []byte("not-really-a-recording")},
	}

	r.POST("/audio/transcribe").SetHeader(header).SetFileFromPath(file).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)

		assert.True(t, v.Get("success").GetBool())
		assert.Equal(t, "this is a note", string(v.Get("transcription").GetStringBytes()))
		assert.Regexp(t, `^http://notes\.lan/uploads/audio-\d+-\w{8}\.webm$`, string(v.Get("audioFile").GetStringBytes()))
	})
}

func TestRequestAudioTranscribePerRequestEngine(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()

	// Engines hold per-stream state, sharing one instance across requests
	// would let a request stop another request's stream.
	engines := 0
	ioc.Engine = func() transcribe.Engine {
		engines++
		return transcribe.NewMockEngine("this is a note")
	}
	engine = rebuild(ioc)

	user := createUser(ioc)
	header := authorization(ioc, user)

	file := []gofight.UploadFile{
		{Path: "memo.webm", Name: "audio", Content: []byte("not-really-a-recording")},
	}

	for i := 0; i < 2; i++ {
		r.POST("/audio/transcribe").SetHeader(header).SetFileFromPath(file).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusOK, r.Code)

			v, err := fastjson.Parse(r.Body.String())
			assert.NoError(t, err)
			assert.Equal(t, "this is a note", string(v.Get("transcription").GetStringBytes()))
		})
	}

	assert.Equal(t, 2, engines)
}

func TestRequestAudioTranscribeUnsupported(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()

	ioc.Engine = func() transcribe.Engine {
		return &transcribe.MockEngine{StartErr: transcribe.ErrUnsupported}
	}
	engine = rebuild(ioc)

	user := createUser(ioc)
	header := authorization(ioc, user)

	file := []gofight.UploadFile{
		{Path: "memo.webm", Name: "audio", Content: []byte("not-really-a-recording")},
	}

	r.POST("/audio/transcribe").SetHeader(header).SetFileFromPath(file).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotImplemented, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"unsupported","message":"Transcription is not available."}}`, r.Body.String())
	})
}
