// Package queue defines message payloads exchanged over the message broker.
package queue

// Actions carried in BookingEvent.Action.
const (
	ActionCreated   = "created"
	ActionApproved  = "approved"
	ActionCancelled = "cancelled"
)

// BookingEvent is published whenever a reservation changes state. It carries
// enough information for downstream consumers to log, notify, or feed
// analytics without querying the primary database. Date is "YYYY-MM-DD" and
// Time is the 24-hour "HH:MM" slot start, both in the venue's local time.
type BookingEvent struct {
	Action     string `json:"action"`
	BookingID  uint64 `json:"booking_id"`
	VenueID    uint64 `json:"venue_id"`
	VenueName  string `json:"venue_name"`
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	PartySize  int    `json:"party_size"`
	OccurredAt string `json:"occurred_at"`
}
