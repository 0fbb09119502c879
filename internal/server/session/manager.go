package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/rohit0033/notes-taking-app/internal/apierror"
	"github.com/rohit0033/notes-taking-app/internal/database"
	"github.com/rohit0033/notes-taking-app/internal/model"
)

const issuer = "github.com/rohit0033/notes-taking-app"

type (
	// A Manager issues and validates the bearer tokens of the API.
	Manager interface {
		// JWTSigningKey returns the key used to sign the tokens.
		JWTSigningKey() []byte
		// Token mints a bearer token for the given user.
		Token(u *model.User) (string, error)
		// UserFromToken returns the user authenticated by the given token.
		UserFromToken(token *jwt.Token) (*model.User, error)
	}

	manager struct {
		db         database.Client
		signingKey []byte
		tokenTTL   time.Duration
	}
)

// NewManager returns a new manager.
func NewManager(db database.Client, signingKey []byte, tokenTTL time.Duration) Manager {
	return &manager{
		db:         db,
		signingKey: signingKey,
		tokenTTL:   tokenTTL,
	}
}

func (m *manager) JWTSigningKey() []byte {
	return m.signingKey
}

func (m *manager) Token(u *model.User) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID,
		"iss":     issuer,
		"iat":     now.Unix(),
		"exp":     now.Add(m.tokenTTL).Unix(),
	})

	t, err := token.SignedString(m.signingKey)
	return t, errors.Wrap(err, "could not sign token")
}

func (m *manager) UserFromToken(token *jwt.Token) (*model.User, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		panic("token implementation has wrong type of claims")
	}

	id, ok := claims["user_id"].(string)
	if !ok {
		return nil, apierror.Unauthorized("Invalid login credentials.")
	}

	user, err := m.db.FindUser(id)
	if err != nil {
		if m.db.IsNotFound(err) {
			return nil, apierror.Unauthorized("Invalid login credentials.")
		}
		return nil, errors.Wrap(err, "could not get access to database")
	}

	// Tokens minted before the last password change are revoked.
	iat, err := token.Claims.GetIssuedAt()
	if err != nil || iat == nil {
		return nil, apierror.Unauthorized("Invalid login credentials.")
	}
	if iat.Unix() < user.PasswordUpdatedAt {
		return nil, apierror.Unauthorized("Revoked token.")
	}

	return user, nil
}
