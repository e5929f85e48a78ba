package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/limoncello/reservation-api/internal/model"
)

// PersonRepo provides CRUD operations for guest records. Emails and name
// parts are normalized to upper case before storage, matching the legacy
// data already in the table.
type PersonRepo struct{ DB *sql.DB }

// NewPersonRepo returns a new PersonRepo bound to the given database.
func NewPersonRepo(db *sql.DB) *PersonRepo { return &PersonRepo{DB: db} }

const personColumns = "id, identification, first_name, second_name, first_last_name, second_last_name, date_of_birth, phone_number, email, send_email, created_at, updated_at"

// Create inserts a person and populates the generated ID. The unique
// (identification, email) pair maps MySQL duplicate-key errors to
// ErrDuplicatePerson.
func (r *PersonRepo) Create(ctx context.Context, p *model.Person) error {
	p.Email = strings.ToUpper(strings.TrimSpace(p.Email))
	p.FirstName = strings.ToUpper(strings.TrimSpace(p.FirstName))
	p.FirstLastName = strings.ToUpper(strings.TrimSpace(p.FirstLastName))
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO people (identification, first_name, second_name, first_last_name, second_last_name, date_of_birth, phone_number, email, send_email)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Identification, p.FirstName, upperPtr(p.SecondName), p.FirstLastName, upperPtr(p.SecondLastName),
		p.DateOfBirth.Format("2006-01-02"), p.PhoneNumber, p.Email, p.SendEmail)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrDuplicatePerson
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// GetByID fetches a person by primary key.
func (r *PersonRepo) GetByID(ctx context.Context, id uint64) (model.Person, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+personColumns+" FROM people WHERE id=? LIMIT 1", id)
	return scanPerson(row)
}

// GetByEmail fetches a person by normalized email.
func (r *PersonRepo) GetByEmail(ctx context.Context, email string) (model.Person, error) {
	email = strings.ToUpper(strings.TrimSpace(email))
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+personColumns+" FROM people WHERE email=? LIMIT 1", email)
	return scanPerson(row)
}

// List returns all people ordered by creation time descending.
func (r *PersonRepo) List(ctx context.Context) ([]model.Person, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+personColumns+" FROM people ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	people := make([]model.Person, 0)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return people, nil
}

// Update rewrites the mutable contact fields of a person.
func (r *PersonRepo) Update(ctx context.Context, p model.Person) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE people SET first_name=?, second_name=?, first_last_name=?, second_last_name=?, phone_number=?, email=?, send_email=?
		  WHERE id=?`,
		strings.ToUpper(p.FirstName), upperPtr(p.SecondName),
		strings.ToUpper(p.FirstLastName), upperPtr(p.SecondLastName),
		p.PhoneNumber, strings.ToUpper(strings.TrimSpace(p.Email)), p.SendEmail, p.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPersonNotFound
	}
	return nil
}

// Delete removes a person row. Bookings cascade at the schema level.
func (r *PersonRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM people WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPersonNotFound
	}
	return nil
}

func upperPtr(s *string) *string {
	if s == nil {
		return nil
	}
	u := strings.ToUpper(strings.TrimSpace(*s))
	if u == "" {
		return nil
	}
	return &u
}

func scanPerson(row rowScanner) (model.Person, error) {
	var (
		p           model.Person
		secondName  sql.NullString
		secondLast  sql.NullString
		phoneNumber sql.NullString
	)
	err := row.Scan(&p.ID, &p.Identification, &p.FirstName, &secondName,
		&p.FirstLastName, &secondLast, &p.DateOfBirth, &phoneNumber,
		&p.Email, &p.SendEmail, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Person{}, ErrPersonNotFound
	}
	if err != nil {
		return model.Person{}, err
	}
	if secondName.Valid {
		p.SecondName = &secondName.String
	}
	if secondLast.Valid {
		p.SecondLastName = &secondLast.String
	}
	if phoneNumber.Valid {
		p.PhoneNumber = &phoneNumber.String
	}
	return p, nil
}
