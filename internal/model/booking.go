package model

import (
	"time"

	"github.com/limoncello/reservation-api/internal/schedule"
)

// Booking is a reservation row in the `bookings` table. Date and time are
// stored separately (DATE + TIME columns); BookingTime is carried as a typed
// minute-of-day value instead of a string.
//
// Only rows with Active=true count toward window occupancy. Approving or
// cancelling a booking clears Active, removing it from the occupancy sum.
// The surrounding system enforces at most one active booking per
// (person, venue, date).
//
// Fields:
//  ID           – primary key identifier.
//  PersonID     – guest who booked.
//  VenueID      – venue being booked.
//  PartySize    – number of guests, positive.
//  BookingDate  – calendar date of the reservation.
//  BookingTime  – start time of day at minute granularity.
//  Observations – free-form notes from the guest, optional.
//  Active       – false once approved or cancelled.
//  Approved     – true once venue staff approved the booking.
//  CreatedAt    – creation timestamp.
type Booking struct {
	ID           uint64              // bookings.id
	PersonID     uint64              // bookings.person_id
	VenueID      uint64              // bookings.venue_id
	PartySize    int                 // bookings.party_size
	BookingDate  time.Time           // bookings.booking_date (date only)
	BookingTime  schedule.TimeOfDay  // bookings.booking_time
	Observations string              // bookings.observations (empty when null)
	Active       bool                // bookings.active
	Approved     bool                // bookings.approved
	CreatedAt    time.Time           // bookings.created_at
}

// StartsAt combines the date and time columns into one timestamp in the
// date's location.
func (b Booking) StartsAt() time.Time {
	return b.BookingTime.At(b.BookingDate)
}
