package recognition

import (
	"time"

	"kudos/internal/domain/directory"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityPrivate Visibility = "PRIVATE"
)

func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate:
		return true
	default:
		return false
	}
}

// Recognition is immutable once created; there is no update or delete path.
// SenderID and RecipientID resolve to existing employees at creation time and
// are not re-validated afterwards.
type Recognition struct {
	ID          string     `json:"id"`
	SenderID    string     `json:"senderId"`
	RecipientID string     `json:"recipientId"`
	Message     string     `json:"message"`
	Visibility  Visibility `json:"visibility"`
	IsAnonymous bool       `json:"isAnonymous"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// View is a recognition as rendered for a specific viewer. The sender fields
// are omitted when the anonymity rule withholds them; SenderID stays populated
// on the underlying record regardless.
type View struct {
	ID          string              `json:"id"`
	SenderID    string              `json:"senderId,omitempty"`
	Sender      *directory.Employee `json:"sender,omitempty"`
	RecipientID string              `json:"recipientId"`
	Recipient   *directory.Employee `json:"recipient,omitempty"`
	Message     string              `json:"message"`
	Visibility  Visibility          `json:"visibility"`
	IsAnonymous bool                `json:"isAnonymous"`
	CreatedAt   time.Time           `json:"createdAt"`
}
