package clinical

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/HiralThadeshwar31/aidar-server/internal/platform/db"
	"github.com/HiralThadeshwar31/aidar-server/internal/platform/ids"
)

// -- Vitals Repository --

type vitalsRepoPG struct {
	db db.Querier
}

func NewVitalsRepo(q db.Querier) VitalsRepository {
	return &vitalsRepoPG{db: q}
}

const vitalsCols = `id, patient_id, heart_rate, blood_pressure, respiration_rate, temperature, measurement_time`

func (r *vitalsRepoPG) Create(ctx context.Context, v *Vitals) error {
	v.ID = ids.New()
	err := r.db.QueryRow(ctx, `
		INSERT INTO vitals (id, patient_id, heart_rate, blood_pressure, respiration_rate, temperature)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING measurement_time`,
		v.ID, v.PatientID, v.HeartRate, v.BloodPressure, v.RespirationRate, v.Temperature,
	).Scan(&v.MeasurementTime)
	if err != nil {
		return fmt.Errorf("vitals create: %w", db.MapError(err))
	}
	return nil
}

func (r *vitalsRepoPG) GetByID(ctx context.Context, id string) (*Vitals, error) {
	v, err := scanVitals(r.db.QueryRow(ctx, `SELECT `+vitalsCols+` FROM vitals WHERE id = $1`, id))
	if err != nil {
		return nil, db.MapError(err)
	}
	return v, nil
}

func (r *vitalsRepoPG) List(ctx context.Context) ([]*Vitals, error) {
	rows, err := r.db.Query(ctx, `SELECT `+vitalsCols+` FROM vitals ORDER BY measurement_time, id`)
	if err != nil {
		return nil, fmt.Errorf("vitals list: %w", err)
	}
	return collectVitals(rows)
}

func (r *vitalsRepoPG) ListByPatient(ctx context.Context, patientID string, since *time.Time) ([]*Vitals, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+vitalsCols+` FROM vitals
		WHERE patient_id = $1 AND ($2::timestamptz IS NULL OR measurement_time >= $2)
		ORDER BY measurement_time, id`, patientID, since)
	if err != nil {
		return nil, fmt.Errorf("vitals list by patient: %w", err)
	}
	return collectVitals(rows)
}

func (r *vitalsRepoPG) Update(ctx context.Context, v *Vitals) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE vitals SET
			heart_rate = $2, blood_pressure = $3, respiration_rate = $4, temperature = $5
		WHERE id = $1`,
		v.ID, v.HeartRate, v.BloodPressure, v.RespirationRate, v.Temperature,
	)
	if err := db.RequireAffected(tag, err); err != nil {
		return fmt.Errorf("vitals update: %w", err)
	}
	return nil
}

func (r *vitalsRepoPG) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM vitals WHERE id = $1`, id)
	if err := db.RequireAffected(tag, err); err != nil {
		return fmt.Errorf("vitals delete: %w", err)
	}
	return nil
}

func scanVitals(row pgx.Row) (*Vitals, error) {
	var v Vitals
	err := row.Scan(&v.ID, &v.PatientID, &v.HeartRate, &v.BloodPressure, &v.RespirationRate, &v.Temperature, &v.MeasurementTime)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func collectVitals(rows pgx.Rows) ([]*Vitals, error) {
	defer rows.Close()
	items := []*Vitals{}
	for rows.Next() {
		v, err := scanVitals(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

// -- Physician Note Repository --

type noteRepoPG struct {
	db db.Querier
}

func NewNoteRepo(q db.Querier) NoteRepository {
	return &noteRepoPG{db: q}
}

const noteCols = `id, patient_id, physician_id, note, created_at`

func (r *noteRepoPG) Create(ctx context.Context, n *PhysicianNote) error {
	n.ID = ids.New()
	err := r.db.QueryRow(ctx, `
		INSERT INTO physician_notes (id, patient_id, physician_id, note)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		n.ID, n.PatientID, n.PhysicianID, n.Note,
	).Scan(&n.CreatedAt)
	if err != nil {
		return fmt.Errorf("note create: %w", db.MapError(err))
	}
	return nil
}

func (r *noteRepoPG) GetByID(ctx context.Context, id string) (*PhysicianNote, error) {
	n, err := scanNote(r.db.QueryRow(ctx, `SELECT `+noteCols+` FROM physician_notes WHERE id = $1`, id))
	if err != nil {
		return nil, db.MapError(err)
	}
	return n, nil
}

func (r *noteRepoPG) List(ctx context.Context) ([]*PhysicianNote, error) {
	rows, err := r.db.Query(ctx, `SELECT `+noteCols+` FROM physician_notes ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("note list: %w", err)
	}
	return collectNotes(rows)
}

func (r *noteRepoPG) ListByPatient(ctx context.Context, patientID string, since *time.Time) ([]*PhysicianNote, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+noteCols+` FROM physician_notes
		WHERE patient_id = $1 AND ($2::timestamptz IS NULL OR created_at >= $2)
		ORDER BY created_at, id`, patientID, since)
	if err != nil {
		return nil, fmt.Errorf("note list by patient: %w", err)
	}
	return collectNotes(rows)
}

func (r *noteRepoPG) Update(ctx context.Context, n *PhysicianNote) error {
	tag, err := r.db.Exec(ctx, `UPDATE physician_notes SET note = $2 WHERE id = $1`, n.ID, n.Note)
	if err := db.RequireAffected(tag, err); err != nil {
		return fmt.Errorf("note update: %w", err)
	}
	return nil
}

func (r *noteRepoPG) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM physician_notes WHERE id = $1`, id)
	if err := db.RequireAffected(tag, err); err != nil {
		return fmt.Errorf("note delete: %w", err)
	}
	return nil
}

func scanNote(row pgx.Row) (*PhysicianNote, error) {
	var n PhysicianNote
	err := row.Scan(&n.ID, &n.PatientID, &n.PhysicianID, &n.Note, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func collectNotes(rows pgx.Rows) ([]*PhysicianNote, error) {
	defer rows.Close()
	items := []*PhysicianNote{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}
