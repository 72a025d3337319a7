package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Disposition is how an organization shares an item.
type Disposition string

const (
	DispositionDonation Disposition = "Donation"
	DispositionLoan     Disposition = "Loan"
	DispositionSale     Disposition = "Sale"
)

// DefaultCondition is stored when the client does not describe the item's condition.
const DefaultCondition = "Good"

// Conditions offered by the client form. Other values are accepted as free text.
var Conditions = []string{"New", DefaultCondition, "Fair", "Poor"}

// ParseDisposition resolves a submitted disposition. Empty means Donation.
func ParseDisposition(s string) (Disposition, error) {
	switch Disposition(s) {
	case "":
		return DispositionDonation, nil
	case DispositionDonation, DispositionLoan, DispositionSale:
		return Disposition(s), nil
	}
	return "", Invalid("invalid disposition")
}

// Item is a listing owned by exactly one organization.
type Item struct {
	ID              string               `json:"id"`
	OwnerID         string               `json:"-"`
	Owner           *OrganizationSummary `json:"owner,omitempty"`
	Name            string               `json:"name"`
	Category        string               `json:"category"`
	Description     string               `json:"description"`
	Condition       string               `json:"condition"`
	Quantity        int64                `json:"quantity"`
	StorageLocation string               `json:"storageLocation"`
	PhotoURL        string               `json:"photoUrl"`
	ContactName     string               `json:"contactName"`
	ContactPhone    string               `json:"contactPhone"`
	Disposition     Disposition          `json:"disposition"`
	Price           float64              `json:"price"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// OwnedBy reports whether orgID is the item's owner.
func (i *Item) OwnedBy(orgID string) bool {
	return orgID != "" && i.OwnerID == orgID
}

// ParseQuantity accepts a whole, non-negative number that fits in an int64.
func ParseQuantity(raw string) (int64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f >= 1<<63 || f != math.Trunc(f) {
		return 0, Invalid("quantity must be a whole number greater than or equal to 0")
	}
	return int64(f), nil
}

// ParsePrice accepts any finite, non-negative number.
func ParsePrice(raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, Invalid("price must be a number greater than or equal to 0")
	}
	return f, nil
}

// ValidatePhone rejects a contact phone containing anything but 0-9.
func ValidatePhone(phone string) error {
	for _, r := range phone {
		if r < '0' || r > '9' {
			return Invalid("contact phone may only contain digits 0-9")
		}
	}
	return nil
}
