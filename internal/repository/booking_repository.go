package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/limoncello/reservation-api/internal/model"
	"github.com/limoncello/reservation-api/internal/schedule"
)

// BookingRepo provides CRUD operations for bookings and the occupancy
// aggregation read used by the availability engine. Dates and times are
// stored in separate DATE and TIME columns holding venue-local wall-clock
// values; all range comparisons below are wall-clock comparisons.
type BookingRepo struct{ DB *sql.DB }

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

const bookingColumns = "id, person_id, venue_id, party_size, booking_date, booking_time, observations, active, approved, created_at"

const wallClock = "2006-01-02 15:04:05"

// SumPartySizes implements availability.OccupancyReader: it sums the party
// sizes of active bookings for the venue whose combined date+time falls
// inside the closed [from, to] window. Returns 0 when no rows match.
func (r *BookingRepo) SumPartySizes(ctx context.Context, venueID uint64, from, to time.Time) (int, error) {
	var sum int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(party_size), 0)
		   FROM bookings
		  WHERE venue_id = ? AND active = 1
		    AND TIMESTAMP(booking_date, booking_time) BETWEEN ? AND ?`,
		venueID, from.Format(wallClock), to.Format(wallClock)).Scan(&sum)
	if err != nil {
		return 0, err
	}
	return sum, nil
}

// HasActiveFor reports whether the person already has an active booking at
// the venue on the given date.
func (r *BookingRepo) HasActiveFor(ctx context.Context, personID, venueID uint64, date time.Time) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings
		  WHERE person_id = ? AND venue_id = ? AND booking_date = ? AND active = 1`,
		personID, venueID, date.Format("2006-01-02")).Scan(&n)
	return n > 0, err
}

// Create inserts a booking and populates the generated ID and creation
// timestamp on the provided record. New bookings are active and unapproved.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO bookings (person_id, venue_id, party_size, booking_date, booking_time, observations, active, approved)
		 VALUES (?, ?, ?, ?, ?, ?, 1, 0)`,
		b.PersonID, b.VenueID, b.PartySize,
		b.BookingDate.Format("2006-01-02"), b.BookingTime.String()+":00", b.Observations)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	b.Active = true
	b.Approved = false
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at FROM bookings WHERE id = ?", b.ID).Scan(&b.CreatedAt)
}

// GetByID fetches one booking. ErrBookingNotFound is returned when the ID
// does not exist.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id = ? LIMIT 1", id)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, ErrBookingNotFound
	}
	return b, err
}

// ListUpcomingByVenue returns bookings for the venue from the given date
// onward, ordered by date then time. The caller passes "today" so listings
// never include past days.
func (r *BookingRepo) ListUpcomingByVenue(ctx context.Context, venueID uint64, from time.Time) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings
		  WHERE venue_id = ? AND booking_date >= ?
		  ORDER BY booking_date, booking_time`,
		venueID, from.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

// ListActiveByPerson returns the person's active bookings, newest first.
func (r *BookingRepo) ListActiveByPerson(ctx context.Context, personID uint64) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings
		  WHERE person_id = ? AND active = 1
		  ORDER BY booking_date DESC, booking_time DESC`,
		personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

// Approve marks the booking approved and clears the active flag so it no
// longer counts toward occupancy. ErrBookingNotFound when no row matched.
func (r *BookingRepo) Approve(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE bookings SET approved = 1, active = 0 WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Cancel clears the active flag without approving.
func (r *BookingRepo) Cancel(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE bookings SET active = 0 WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface{ Scan(dest ...any) error }

func scanBooking(row rowScanner) (model.Booking, error) {
	var (
		b            model.Booking
		timeStr      string
		observations sql.NullString
	)
	if err := row.Scan(&b.ID, &b.PersonID, &b.VenueID, &b.PartySize,
		&b.BookingDate, &timeStr, &observations, &b.Active, &b.Approved, &b.CreatedAt); err != nil {
		return model.Booking{}, err
	}
	// TIME columns scan as "HH:MM:SS"; seconds are always zero here.
	if len(timeStr) >= 5 {
		t, err := schedule.ParseTimeOfDay(timeStr[:5])
		if err != nil {
			return model.Booking{}, err
		}
		b.BookingTime = t
	}
	if observations.Valid {
		b.Observations = observations.String
	}
	return b, nil
}

func scanBookings(rows *sql.Rows) ([]model.Booking, error) {
	bookings := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}
