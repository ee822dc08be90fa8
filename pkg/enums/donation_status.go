package enums

import "fmt"

// DonationStatus tracks the lifecycle of a donor-submitted donation.
// Pending donations may transition once, to verified or cancelled; both of
// those states are terminal.
type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusVerified  DonationStatus = "verified"
	DonationStatusCancelled DonationStatus = "cancelled"
)

var validDonationStatuses = []DonationStatus{
	DonationStatusPending,
	DonationStatusVerified,
	DonationStatusCancelled,
}

// String implements fmt.Stringer.
func (d DonationStatus) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DonationStatus.
func (d DonationStatus) IsValid() bool {
	for _, candidate := range validDonationStatuses {
		if candidate == d {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition may leave this status.
func (d DonationStatus) IsTerminal() bool {
	return d == DonationStatusVerified || d == DonationStatusCancelled
}

// ParseDonationStatus converts raw input into a DonationStatus.
func ParseDonationStatus(value string) (DonationStatus, error) {
	for _, candidate := range validDonationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid donation status %q", value)
}
