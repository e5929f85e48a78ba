package model

import "time"

// Person is a guest record in the `people` table. People exist
// independently of user accounts: walk-in booking requests create a
// person on the fly, while staff accounts always reference one.
// Name parts follow the two-given-names, two-surnames convention of
// the deployment locale; the second parts are nullable.
//
// Fields:
//  ID             – primary key identifier.
//  Identification – national ID document number.
//  FirstName      – first given name (stored upper case).
//  SecondName     – second given name, optional.
//  FirstLastName  – first surname (stored upper case).
//  SecondLastName – second surname, optional.
//  DateOfBirth    – birth date.
//  PhoneNumber    – contact phone, optional.
//  Email          – contact email (stored upper case, unique with Identification).
//  SendEmail      – whether the person opted into email notifications.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last modification timestamp.
type Person struct {
	ID             uint64    // people.id
	Identification string    // people.identification
	FirstName      string    // people.first_name
	SecondName     *string   // people.second_name (nullable)
	FirstLastName  string    // people.first_last_name
	SecondLastName *string   // people.second_last_name (nullable)
	DateOfBirth    time.Time // people.date_of_birth
	PhoneNumber    *string   // people.phone_number (nullable)
	Email          string    // people.email
	SendEmail      bool      // people.send_email
	CreatedAt      time.Time // people.created_at
	UpdatedAt      time.Time // people.updated_at
}

// FullName returns "FIRST FIRSTLAST", the form used in emails.
func (p Person) FullName() string {
	return p.FirstName + " " + p.FirstLastName
}
