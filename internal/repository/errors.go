// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific errors. For example, ErrVenueNotFound
// maps to a 404, while ErrDuplicateBooking signals that the person
// already holds an active booking at the venue for that date.
package repository

import "errors"

// ErrVenueNotFound is returned when a venue ID does not exist in the
// venues table. Handlers should translate this into an HTTP 404.
var ErrVenueNotFound = errors.New("venue not found")

// ErrPersonNotFound is returned when a person lookup matches no row.
var ErrPersonNotFound = errors.New("person not found")

// ErrBookingNotFound is returned when a booking lookup matches no row.
var ErrBookingNotFound = errors.New("booking not found")

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateBooking is returned when a person already has an active
// booking at the same venue on the same date. Handlers should
// translate this into an HTTP 409 response.
var ErrDuplicateBooking = errors.New("an active booking already exists for this person, venue and date")

// ErrDuplicatePerson is returned when inserting a person whose
// identification+email pair already exists.
var ErrDuplicatePerson = errors.New("person already exists")

// ErrUsernameExists is returned when a generated or requested username
// collides with an existing account.
var ErrUsernameExists = errors.New("username already exists")
