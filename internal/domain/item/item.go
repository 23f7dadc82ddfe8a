package item

import (
	"time"

	"github.com/shareloop/service-sharing/internal/domain/user"
)

// Item is a thing listed in the catalog and offered for rent.
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

// Update holds optional fields for a partial item update. Nil means
// "leave unchanged".
type Update struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
	RequestID   *int64  `json:"requestId"`
}

// Comment is feedback left by a renter after a completed rental.
type Comment struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	ItemID  int64     `json:"-"`
	Author  user.User `json:"-"`
	Created time.Time `json:"created"`
}

// Request is a user's ask for an item that does not exist in the catalog yet.
type Request struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequestorID int64     `json:"requestorId"`
	Created     time.Time `json:"created"`
}
