package server

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rohit0033/notes-taking-app/internal/apierror"
	"github.com/rohit0033/notes-taking-app/internal/database"
	"github.com/rohit0033/notes-taking-app/internal/server/service"
	"github.com/rohit0033/notes-taking-app/internal/server/session"
)

// auth contains all authentication handlers.
type auth struct {
	db       database.Client
	sessions session.Manager
}

///// Signup
////
//

// Signup handler is used to register a user and issue its first token.
func (h *auth) Signup(c echo.Context) error {
	// Filter params
	var params service.RegisterParams
	if err := c.Bind(&params); err != nil {
		log.Println("Could not get parameters:", err)
		return c.JSON(http.StatusBadRequest, apierror.New("Could not get signup params."))
	}

	service := service.NewUser(h.db, h.sessions)
	signup, err := service.Register(params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, signup)
}

///// Login
////
//

// Login authenticates a user and returns a bearer token.
func (h *auth) Login(c echo.Context) error {
	// Filter params
	var params service.LoginParams
	if err := c.Bind(&params); err != nil {
		log.Println("Could not get parameters:", err)
		return c.JSON(http.StatusBadRequest, apierror.New("Could not get credentials."))
	}

	if params.Email == "" || params.Password == "" {
		return c.JSON(http.StatusBadRequest, apierror.New("No email or password provided."))
	}

	service := service.NewUser(h.db, h.sessions)
	login, err := service.Login(params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, login)
}
