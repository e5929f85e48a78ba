package model

// Venue represents a bookable location as stored in the `venues`
// table. The availability engine only needs the ID; the contact
// fields are used when notifying the venue about its bookings.
//
// Fields:
//  ID      – primary key identifier.
//  Name    – display name of the venue.
//  Address – street address.
//  Phone   – contact phone number.
//  Email   – address that receives booking notifications.
type Venue struct {
	ID      uint64 // venues.id
	Name    string // venues.name
	Address string // venues.address
	Phone   string // venues.phone
	Email   string // venues.email
}
