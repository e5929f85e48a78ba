package repository

import (
	"context"
	"database/sql"

	"github.com/limoncello/reservation-api/internal/model"
)

// RoleRepo persists venue-scoped roles and user role assignments.
type RoleRepo struct{ DB *sql.DB }

// NewRoleRepo returns a new RoleRepo bound to the given database.
func NewRoleRepo(db *sql.DB) *RoleRepo { return &RoleRepo{DB: db} }

// Create inserts a role and populates the generated ID.
func (r *RoleRepo) Create(ctx context.Context, role *model.Role) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO roles (name, description, venue_id) VALUES (?,?,?)",
		role.Name, role.Description, role.VenueID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	role.ID = uint64(id)
	return nil
}

// List returns all roles ordered by venue then name.
func (r *RoleRepo) List(ctx context.Context) ([]model.Role, error) {
	return r.list(ctx, "SELECT id, name, description, venue_id FROM roles ORDER BY venue_id, name")
}

// ListByVenue returns the roles configured for one venue.
func (r *RoleRepo) ListByVenue(ctx context.Context, venueID uint64) ([]model.Role, error) {
	return r.list(ctx, "SELECT id, name, description, venue_id FROM roles WHERE venue_id=? ORDER BY name", venueID)
}

// RolesForUser returns the role names assigned to a user, used to build the
// JWT role claim at login.
func (r *RoleRepo) RolesForUser(ctx context.Context, userID uint64) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT ro.name FROM user_roles ur JOIN roles ro ON ro.id = ur.role_id WHERE ur.user_id = ? ORDER BY ro.name`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	names := make([]string, 0)
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// Assign links a role to a user. Re-assigning an existing pair is a no-op
// thanks to the unique (user_id, role_id) key.
func (r *RoleRepo) Assign(ctx context.Context, userID, roleID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT IGNORE INTO user_roles (user_id, role_id) VALUES (?,?)", userID, roleID)
	return err
}

func (r *RoleRepo) list(ctx context.Context, query string, args ...any) ([]model.Role, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	roles := make([]model.Role, 0)
	for rows.Next() {
		var ro model.Role
		if err := rows.Scan(&ro.ID, &ro.Name, &ro.Description, &ro.VenueID); err != nil {
			return nil, err
		}
		roles = append(roles, ro)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return roles, nil
}
