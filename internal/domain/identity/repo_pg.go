package identity

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/HiralThadeshwar31/aidar-server/internal/platform/db"
	"github.com/HiralThadeshwar31/aidar-server/internal/platform/ids"
)

// -- User Repository --

type userRepoPG struct {
	db db.Querier
}

func NewUserRepo(q db.Querier) UserRepository {
	return &userRepoPG{db: q}
}

const userCols = `id, email, password, COALESCE(name, ''), COALESCE(specialization, ''),
	COALESCE(contact_number, ''), created_at`

func (r *userRepoPG) Create(ctx context.Context, u *User) error {
	u.ID = ids.New()
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (id, email, password, name, specialization, contact_number)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''))
		RETURNING created_at`,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Specialization, u.ContactNumber,
	).Scan(&u.CreatedAt)
	if err != nil {
		return fmt.Errorf("user create: %w", db.MapError(err))
	}
	return nil
}

func (r *userRepoPG) GetByID(ctx context.Context, id string) (*User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, db.MapError(err)
	}
	return u, nil
}

func (r *userRepoPG) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, db.MapError(err)
	}
	return u, nil
}

func (r *userRepoPG) List(ctx context.Context) ([]*User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userCols+` FROM users ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("user list: %w", err)
	}
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("user list: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Specialization, &u.ContactNumber, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// -- Patient Repository --

type patientRepoPG struct {
	db db.Querier
}

func NewPatientRepo(q db.Querier) PatientRepository {
	return &patientRepoPG{db: q}
}

const patientCols = `id, name, email, date_of_birth, gender, contact_number`

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = ids.New()
	_, err := r.db.Exec(ctx, `
		INSERT INTO patients (id, name, email, date_of_birth, gender, contact_number)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Name, p.Email, p.DateOfBirth, p.Gender, p.ContactNumber,
	)
	if err != nil {
		return fmt.Errorf("patient create: %w", db.MapError(err))
	}
	return nil
}

func (r *patientRepoPG) GetByID(ctx context.Context, id string) (*Patient, error) {
	p, err := scanPatient(r.db.QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
	if err != nil {
		return nil, db.MapError(err)
	}
	return p, nil
}

func (r *patientRepoPG) List(ctx context.Context) ([]*Patient, error) {
	rows, err := r.db.Query(ctx, `SELECT `+patientCols+` FROM patients ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("patient list: %w", err)
	}
	defer rows.Close()

	patients := []*Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("patient list: %w", err)
		}
		patients = append(patients, p)
	}
	return patients, rows.Err()
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE patients SET
			name = $2, email = $3, date_of_birth = $4, gender = $5, contact_number = $6
		WHERE id = $1`,
		p.ID, p.Name, p.Email, p.DateOfBirth, p.Gender, p.ContactNumber,
	)
	if err := db.RequireAffected(tag, err); err != nil {
		return fmt.Errorf("patient update: %w", err)
	}
	return nil
}

func (r *patientRepoPG) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err := db.RequireAffected(tag, err); err != nil {
		return fmt.Errorf("patient delete: %w", err)
	}
	return nil
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.DateOfBirth, &p.Gender, &p.ContactNumber)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
