package server

import (
	"github.com/rohit0033/notes-taking-app/internal/model"
	"github.com/rohit0033/notes-taking-app/internal/server/session"
)

// This file is only for test purpose and is only loaded by test framework.

// TokenFromUser returns a bearer token for the given user.
func TokenFromUser(ioc IOC, u *model.User) string {
	sessions := session.NewManager(ioc.Database, ioc.SigningKey, ioc.AccessTokenExpirationTime)

	token, err := sessions.Token(u)
	if err != nil {
		panic(err)
	}
	return token
}
