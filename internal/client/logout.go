package client

import (
	"github.com/pkg/errors"
)

// Logout drops the stored credentials.
// The bearer token is stateless so there is nothing to revoke server-side,
// it simply expires.
func Logout() error {
	return errors.Wrap(Remove(), "could not remove credential file")
}
