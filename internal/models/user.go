package models

import (
	"time"
)

// SubscriptionFree is the subscription status assigned to every new account.
// Signup responses report this constant directly instead of reading the
// record back from the store; keep the store default and this value in sync.
const SubscriptionFree = "free"

// UserRecord is the application-owned document tracking subscription and
// billing metadata for an identity-provider account. The primary key is the
// provider-assigned account ID.
type UserRecord struct {
	UserID             string `gorm:"primaryKey" json:"userId"`
	Email              string `gorm:"not null" json:"email"`
	SubscriptionStatus string `gorm:"not null;default:'free'" json:"subscriptionStatus"`

	// Billing fields are managed by the external billing integration and are
	// never mutated by this service.
	StripeCustomerID    *string    `json:"stripeCustomerId"`
	SubscriptionEndDate *time.Time `json:"subscriptionEndDate"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

// Summary is the condensed user shape returned by the signup and login
// endpoints.
type Summary struct {
	UserID             string `json:"userId"`
	Email              string `json:"email"`
	SubscriptionStatus string `json:"subscriptionStatus"`
}

// Summary returns the condensed representation of the record.
func (u *UserRecord) Summary() Summary {
	return Summary{
		UserID:             u.UserID,
		Email:              u.Email,
		SubscriptionStatus: u.SubscriptionStatus,
	}
}
