package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/limoncello/reservation-api/internal/model"
)

// VenueRepo provides read access to the venues table. Venues are seeded by
// operations tooling, so no write methods are exposed.
type VenueRepo struct{ DB *sql.DB }

// NewVenueRepo returns a new VenueRepo bound to the given database.
func NewVenueRepo(db *sql.DB) *VenueRepo { return &VenueRepo{DB: db} }

// List returns all venues ordered by ID.
func (r *VenueRepo) List(ctx context.Context) ([]model.Venue, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, address, phone, email FROM venues ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	venues := make([]model.Venue, 0)
	for rows.Next() {
		var v model.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.Phone, &v.Email); err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return venues, nil
}

// GetByID fetches one venue. ErrVenueNotFound is returned when the ID does
// not exist.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (model.Venue, error) {
	var v model.Venue
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, address, phone, email FROM venues WHERE id=? LIMIT 1",
		id).Scan(&v.ID, &v.Name, &v.Address, &v.Phone, &v.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Venue{}, ErrVenueNotFound
	}
	return v, err
}
