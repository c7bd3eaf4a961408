package clinical

import (
	"context"
	"time"
)

// VitalsRepository persists vitals. ListByPatient returns one patient's rows
// ordered by measurement_time; a non-nil since is an inclusive lower bound.
type VitalsRepository interface {
	Create(ctx context.Context, v *Vitals) error
	GetByID(ctx context.Context, id string) (*Vitals, error)
	List(ctx context.Context) ([]*Vitals, error)
	ListByPatient(ctx context.Context, patientID string, since *time.Time) ([]*Vitals, error)
	Update(ctx context.Context, v *Vitals) error
	Delete(ctx context.Context, id string) error
}

// NoteRepository persists physician notes, with the same ListByPatient
// contract as VitalsRepository over created_at.
type NoteRepository interface {
	Create(ctx context.Context, n *PhysicianNote) error
	GetByID(ctx context.Context, id string) (*PhysicianNote, error)
	List(ctx context.Context) ([]*PhysicianNote, error)
	ListByPatient(ctx context.Context, patientID string, since *time.Time) ([]*PhysicianNote, error)
	Update(ctx context.Context, n *PhysicianNote) error
	Delete(ctx context.Context, id string) error
}
