package domain

import "time"

// OrganizationStatus is the lifecycle state of an organization account.
type OrganizationStatus string

const (
	StatusPending OrganizationStatus = "pending"
	StatusActive  OrganizationStatus = "active"
)

// Organization is the tenant account: it logs in, owns items and is the
// identity carried by bearer tokens.
type Organization struct {
	ID           string             `json:"id"`
	Name         string             `json:"organizationName"`
	AccountName  string             `json:"accountName"`
	Email        string             `json:"email"`
	PasswordHash string             `json:"-"`
	Status       OrganizationStatus `json:"status"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// Summary returns the public owner card embedded in item listings.
func (o *Organization) Summary() OrganizationSummary {
	return OrganizationSummary{ID: o.ID, Name: o.Name, AccountName: o.AccountName}
}

// Sanitized returns a copy without the password hash.
func (o *Organization) Sanitized() *Organization {
	clone := *o
	clone.PasswordHash = ""
	return &clone
}

// OrganizationSummary is the owner profile embedded in listed items.
type OrganizationSummary struct {
	ID          string `json:"id"`
	Name        string `json:"organizationName"`
	AccountName string `json:"accountName"`
}
