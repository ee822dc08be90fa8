package enums

// OutboxEventType identifies the activity event recorded in the outbox table.
type OutboxEventType string

const (
	EventDonationVerified OutboxEventType = "donation.verified"
	EventDonationRejected OutboxEventType = "donation.rejected"
)

// IsValid reports whether the value is a known OutboxEventType.
func (t OutboxEventType) IsValid() bool {
	return t == EventDonationVerified || t == EventDonationRejected
}

// OutboxAggregateType names the entity an outbox event is attached to.
type OutboxAggregateType string

const (
	AggregateDonation OutboxAggregateType = "donation"
)
