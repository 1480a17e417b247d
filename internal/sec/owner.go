package sec

import (
	"errors"

	"github.com/stolasapp/courseware/internal/storage/db"
)

// ErrForbidden is returned by [Authorize] when the caller does not own the
// resource.
var ErrForbidden = errors.New("forbidden")

// Authorize allows a mutation only when user owns the resource identified by
// ownerID. A zero-value user (no authenticated identity) never owns anything.
//
// Callers check existence before Authorize, so a non-owner can learn that a
// resource exists. Courses are publicly readable, so nothing new is revealed.
func Authorize(user db.User, ownerID int64) error {
	if user.ID == 0 || user.ID != ownerID {
		return ErrForbidden
	}
	return nil
}
