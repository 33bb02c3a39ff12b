package entities

import (
	"time"

	"github.com/google/uuid"
)

// CodeExpiry is how long a verification code stays redeemable.
const CodeExpiry = 10 * time.Minute

// VerificationCode is a short-lived numeric secret mailed to a user to prove
// mailbox ownership. Codes are scoped per user; issuing a new one deletes
// all earlier codes for the same user.
type VerificationCode struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Code      string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"created_at"`
}

// IsValid reports whether the code can still be redeemed at the given time.
func (c *VerificationCode) IsValid(now time.Time) bool {
	return !c.Used && now.Before(c.ExpiresAt)
}
