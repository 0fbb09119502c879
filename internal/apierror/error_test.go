package apierror_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/rohit0033/notes-taking-app/internal/apierror"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := apierror.New("anything")

	assert.Equal(t, "anything", err.Error())
	assert.Equal(t, http.StatusInternalServerError, apierror.StatusCode(err))

	payload, merr := json.Marshal(err)
	assert.NoError(t, merr)
	assert.JSONEq(t, `{"error":{"message":"anything"}}`, string(payload))
}

func TestNewWithTagCode(t *testing.T) {
	err := apierror.NotFound("Note not found")

	assert.Equal(t, "Note not found", err.Error())
	assert.Equal(t, "not-found", err.Tag())
	assert.Equal(t, http.StatusNotFound, apierror.StatusCode(err))

	payload, merr := json.Marshal(err)
	assert.NoError(t, merr)
	assert.JSONEq(t, `{"error":{"tag":"not-found","message":"Note not found"}}`, string(payload))
}

func TestValidation(t *testing.T) {
	err := apierror.Validation("Validation Error", map[string]string{"content": "Content is required"})

	assert.Equal(t, http.StatusBadRequest, apierror.StatusCode(err))

	payload, merr := json.Marshal(err)
	assert.NoError(t, merr)
	assert.JSONEq(t, `{"error":{"tag":"validation","message":"Validation Error","fields":{"content":"Content is required"}}}`, string(payload))
}

func TestStatusCodeForeignError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, apierror.StatusCode(errors.New("boom")))
}
