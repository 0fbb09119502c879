package client

import (
	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/rohit0033/notes-taking-app/pkg/libnotes"
)

// Signup registers a new account on a notes server and stores the credentials.
func Signup() error {
	cfg := Config{}

	endpoint, err := readline.Line("Endpoint: ")
	if err != nil {
		return errors.Wrap(err, "could not read endpoint from stdin")
	}
	cfg.Endpoint = endpoint

	client, err := libnotes.NewDefaultClient(cfg.Endpoint)
	if err != nil {
		return errors.Wrap(err, "could not reach given endpoint")
	}

	name, err := readline.Line("Name: ")
	if err != nil {
		return errors.Wrap(err, "could not read name from stdin")
	}

	cfg.Email, err = readline.Line("Email: ")
	if err != nil {
		return errors.Wrap(err, "could not read email from stdin")
	}

	password, err := readline.Password("Password: ")
	if err != nil {
		return errors.Wrap(err, "could not read password from stdin")
	}

	if _, err = client.Signup(name, cfg.Email, string(password)); err != nil {
		return errors.Wrap(err, "could not signup")
	}
	cfg.BearerToken = client.BearerToken()

	return Save(cfg)
}
