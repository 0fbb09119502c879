package service

import (
	"regexp"
	"strings"
	"time"

	argon2 "github.com/mdouchement/simple-argon2"
	"github.com/pkg/errors"
	"github.com/rohit0033/notes-taking-app/internal/apierror"
	"github.com/rohit0033/notes-taking-app/internal/database"
	"github.com/rohit0033/notes-taking-app/internal/model"
	"github.com/rohit0033/notes-taking-app/internal/server/serializer"
	"github.com/rohit0033/notes-taking-app/internal/server/session"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type (
	// A UserService handles account registration and authentication.
	UserService interface {
		Register(params RegisterParams) (M, error)
		Login(params LoginParams) (M, error)
	}

	// RegisterParams are used to register a user.
	RegisterParams struct {
		Name     string `json:"name" form:"name"`
		Email    string `json:"email" form:"email"`
		Password string `json:"password" form:"password"`
	}

	// LoginParams are used to login a user.
	LoginParams struct {
		Email    string `json:"email" form:"email"`
		Password string `json:"password" form:"password"`
	}

	userService struct {
		db       database.Client
		sessions session.Manager
	}
)

// NewUser returns a new UserService.
func NewUser(db database.Client, sessions session.Manager) UserService {
	return &userService{
		db:       db,
		sessions: sessions,
	}
}

func (s *userService) Register(params RegisterParams) (M, error) {
	if err := validateCredentials(params.Email, params.Password); err != nil {
		return nil, err
	}

	// Check if the email is free to use.
	u, err := s.db.FindUserByMail(params.Email)
	if err != nil && !s.db.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not get access to database")
	}
	if u != nil {
		return nil, apierror.Validation("This email is already registered.", map[string]string{
			"email": "This email is already registered.",
		})
	}

	// Initialize user
	user := model.NewUser()
	user.Name = strings.TrimSpace(params.Name)
	user.Email = params.Email

	// Crypt password
	user.Password, err = argon2.GenerateFromPasswordString(params.Password, argon2.Default)
	if err != nil {
		return nil, errors.Wrap(err, "could not store user password safe")
	}
	user.PasswordUpdatedAt = time.Now().Unix()

	// Persist the model
	if err := s.db.Save(user); err != nil {
		return nil, errors.Wrap(err, "could not persist user")
	}

	return s.authenticated(user)
}

func (s *userService) Login(params LoginParams) (M, error) {
	// Retrieve user
	user, err := s.db.FindUserByMail(params.Email)
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, apierror.Unauthorized("Invalid email or password.")
		}
		return nil, errors.Wrap(err, "could not get user")
	}

	// Verify password
	if err = argon2.CompareHashAndPasswordString(user.Password, params.Password); err != nil {
		if err == argon2.ErrMismatchedHashAndPassword {
			return nil, apierror.Unauthorized("Invalid email or password.")
		}
		return nil, errors.Wrap(err, "could not validate password")
	}

	return s.authenticated(user)
}

func (s *userService) authenticated(user *model.User) (M, error) {
	token, err := s.sessions.Token(user)
	if err != nil {
		return nil, err
	}

	return M{
		"token": token,
		"user":  serializer.User(user),
	}, nil
}

func validateCredentials(email, password string) error {
	fields := map[string]string{}

	if !emailRe.MatchString(email) {
		fields["email"] = "Valid email is required"
	}
	if len(password) < 6 {
		fields["password"] = "Password must be at least 6 characters"
	}

	if len(fields) > 0 {
		return apierror.Validation("Validation Error", fields)
	}
	return nil
}
