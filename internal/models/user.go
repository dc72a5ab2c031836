// Package models defines data structures and domain types.
package models

// NA is the placeholder rendered for absent string fields in
// display and export output. It is deliberately not an empty string so
// exports stay distinguishable from genuinely blank values.
const NA = "N/A"

// User represents a Gaia user account as stored in the document store.
// Accounts are created and mutated by the registration/billing system;
// this application only reads them.
type User struct {
	ID               string `bson:"id" json:"id"`
	Email            string `bson:"email" json:"email"`
	FirstName        string `bson:"firstName" json:"firstName"`
	LastName         string `bson:"lastName" json:"lastName"`
	Plan             string `bson:"plan" json:"plan"`
	IsVerified       bool   `bson:"is_verified" json:"is_verified"`
	IsSuspended      bool   `bson:"isSuspended" json:"isSuspended"`
	CreatedAt        string `bson:"createdAt" json:"createdAt"`
	AccountExpiresAt string `bson:"accountExpiresAt" json:"accountExpiresAt"`
	DailyRequests    int    `bson:"daily_requests" json:"daily_requests"`
	LastRequestDate  string `bson:"last_request_date" json:"last_request_date"`
	StripeCustomerID string `bson:"stripe_customer_id" json:"stripe_customer_id"`
}

// PlanOrUnknown returns the user's plan, normalizing an absent plan to
// the literal "unknown". A stored "unknown" string and an absent field
// are intentionally indistinguishable.
func (u *User) PlanOrUnknown() string {
	if u.Plan == "" {
		return "unknown"
	}
	return u.Plan
}

// FullName returns "First Last" with absent parts rendered as N/A.
func (u *User) FullName() string {
	return OrNA(u.FirstName) + " " + OrNA(u.LastName)
}

// OrNA renders an absent string field as the N/A placeholder.
// This is the single presentation-boundary defaulting step; record
// fields themselves keep their raw (possibly empty) values.
func OrNA(s string) string {
	if s == "" {
		return NA
	}
	return s
}

// YesNo renders a boolean flag for display and export.
func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
