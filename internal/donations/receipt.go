package donations

import (
	"strings"

	"github.com/google/uuid"
)

const receiptPrefix = "DON-"

// ReceiptNumber derives the ledger receipt from the donation id: the prefix
// plus the last eight hex characters, uppercased. Deterministic on purpose,
// so a donation can never yield two different receipts.
func ReceiptNumber(donationID uuid.UUID) string {
	hex := strings.ReplaceAll(donationID.String(), "-", "")
	return receiptPrefix + strings.ToUpper(hex[len(hex)-8:])
}
