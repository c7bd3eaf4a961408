//go:build integration

package integration

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/HiralThadeshwar31/aidar-server/internal/domain/clinical"
	"github.com/HiralThadeshwar31/aidar-server/internal/domain/identity"
	"github.com/HiralThadeshwar31/aidar-server/internal/platform/db"
)

func TestVitalsRepo(t *testing.T) {
	ctx := context.Background()
	resetDB(t)
	repo := clinical.NewVitalsRepo(pool)
	patient := createTestPatient(t, ctx, "Vital Signs", "vitals@example.com")

	t.Run("UnknownPatient", func(t *testing.T) {
		v := &clinical.Vitals{PatientID: "nobody", HeartRate: 60, BloodPressure: "110/70", RespirationRate: 12, Temperature: 36.5}
		err := repo.Create(ctx, v)
		if !errors.Is(err, db.ErrInvalidReference) {
			t.Fatalf("expected ErrInvalidReference, got %v", err)
		}
		if name := db.ConstraintName(err); name != "vitals_patient_id_fkey" {
			t.Fatalf("expected vitals_patient_id_fkey, got %q", name)
		}
	})

	t.Run("OversizedPatientID", func(t *testing.T) {
		v := &clinical.Vitals{PatientID: strings.Repeat("a", 40), HeartRate: 60, BloodPressure: "110/70", RespirationRate: 12, Temperature: 36.5}
		err := repo.Create(ctx, v)
		if !errors.Is(err, db.ErrInvalidValue) {
			t.Fatalf("expected ErrInvalidValue, got %v", err)
		}
	})

	t.Run("LargeReadings", func(t *testing.T) {
		v := &clinical.Vitals{PatientID: patient.ID, HeartRate: 1 << 40, BloodPressure: "120/80 sitting, left arm", RespirationRate: 12, Temperature: 36.5}
		if err := repo.Create(ctx, v); err != nil {
			t.Fatalf("Create: %v", err)
		}
		got, err := repo.GetByID(ctx, v.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.HeartRate != 1<<40 || got.BloodPressure != "120/80 sitting, left arm" {
			t.Fatalf("unexpected vitals: %+v", got)
		}
		if err := repo.Delete(ctx, v.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
	})

	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	first := insertVitalsAt(t, ctx, patient.ID, base)
	insertVitalsAt(t, ctx, patient.ID, base.Add(24*time.Hour))
	insertVitalsAt(t, ctx, patient.ID, base.Add(48*time.Hour))

	t.Run("ListByPatientAll", func(t *testing.T) {
		items, err := repo.ListByPatient(ctx, patient.ID, nil)
		if err != nil {
			t.Fatalf("ListByPatient: %v", err)
		}
		if len(items) != 3 {
			t.Fatalf("expected 3 readings, got %d", len(items))
		}
		if !items[0].MeasurementTime.Equal(base) {
			t.Fatalf("expected oldest first, got %v", items[0].MeasurementTime)
		}
	})

	t.Run("ListByPatientSinceIsInclusive", func(t *testing.T) {
		since := base.Add(24 * time.Hour)
		items, err := repo.ListByPatient(ctx, patient.ID, &since)
		if err != nil {
			t.Fatalf("ListByPatient: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 readings since %v, got %d", since, len(items))
		}
	})

	t.Run("Update", func(t *testing.T) {
		v, err := repo.GetByID(ctx, first.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		hr := 90
		clinical.VitalsPatch{HeartRate: &hr}.Apply(v)
		if err := repo.Update(ctx, v); err != nil {
			t.Fatalf("Update: %v", err)
		}
		got, err := repo.GetByID(ctx, first.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.HeartRate != 90 || got.BloodPressure != "120/80" {
			t.Fatalf("unexpected vitals after update: %+v", got)
		}
		if !got.MeasurementTime.Equal(base) {
			t.Fatalf("measurement time changed: %v", got.MeasurementTime)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := repo.Delete(ctx, first.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if err := repo.Delete(ctx, first.ID); !errors.Is(err, db.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestNoteRepo(t *testing.T) {
	ctx := context.Background()
	resetDB(t)
	repo := clinical.NewNoteRepo(pool)
	patient := createTestPatient(t, ctx, "Noted Patient", "noted@example.com")
	physician := createTestUser(t, ctx, "cuddy@example.com")

	t.Run("UnknownPatient", func(t *testing.T) {
		err := repo.Create(ctx, &clinical.PhysicianNote{PatientID: "nobody", PhysicianID: physician.ID, Note: "x"})
		if !errors.Is(err, db.ErrInvalidReference) {
			t.Fatalf("expected ErrInvalidReference, got %v", err)
		}
		if name := db.ConstraintName(err); name != "physician_notes_patient_id_fkey" {
			t.Fatalf("expected physician_notes_patient_id_fkey, got %q", name)
		}
	})

	t.Run("UnknownPhysician", func(t *testing.T) {
		err := repo.Create(ctx, &clinical.PhysicianNote{PatientID: patient.ID, PhysicianID: "nobody", Note: "x"})
		if name := db.ConstraintName(err); name != "physician_notes_physician_id_fkey" {
			t.Fatalf("expected physician_notes_physician_id_fkey, got %q (%v)", name, err)
		}
	})

	var noteID string

	t.Run("CreateAndList", func(t *testing.T) {
		n := &clinical.PhysicianNote{PatientID: patient.ID, PhysicianID: physician.ID, Note: "Stable overnight."}
		if err := repo.Create(ctx, n); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if n.CreatedAt.IsZero() {
			t.Fatal("expected created_at to be set")
		}
		noteID = n.ID

		items, err := repo.ListByPatient(ctx, patient.ID, nil)
		if err != nil {
			t.Fatalf("ListByPatient: %v", err)
		}
		if len(items) != 1 || items[0].Note != "Stable overnight." {
			t.Fatalf("unexpected notes: %+v", items)
		}
	})

	t.Run("SinceExcludesOlder", func(t *testing.T) {
		since := time.Now().Add(time.Hour)
		items, err := repo.ListByPatient(ctx, patient.ID, &since)
		if err != nil {
			t.Fatalf("ListByPatient: %v", err)
		}
		if len(items) != 0 {
			t.Fatalf("expected no notes after %v, got %d", since, len(items))
		}
	})

	t.Run("Update", func(t *testing.T) {
		n, err := repo.GetByID(ctx, noteID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		text := "Discharged."
		clinical.NotePatch{Note: &text}.Apply(n)
		if err := repo.Update(ctx, n); err != nil {
			t.Fatalf("Update: %v", err)
		}
		got, err := repo.GetByID(ctx, noteID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Note != "Discharged." || got.PhysicianID != physician.ID {
			t.Fatalf("unexpected note after update: %+v", got)
		}
	})
}

func TestPatientDeleteCascades(t *testing.T) {
	ctx := context.Background()
	resetDB(t)
	patient := createTestPatient(t, ctx, "Cascade", "cascade@example.com")
	physician := createTestUser(t, ctx, "cascade-doc@example.com")

	insertVitalsAt(t, ctx, patient.ID, time.Now())
	notes := clinical.NewNoteRepo(pool)
	if err := notes.Create(ctx, &clinical.PhysicianNote{PatientID: patient.ID, PhysicianID: physician.ID, Note: "n"}); err != nil {
		t.Fatalf("create note: %v", err)
	}

	if err := identity.NewPatientRepo(pool).Delete(ctx, patient.ID); err != nil {
		t.Fatalf("delete patient: %v", err)
	}

	vitals, err := clinical.NewVitalsRepo(pool).ListByPatient(ctx, patient.ID, nil)
	if err != nil {
		t.Fatalf("list vitals: %v", err)
	}
	remaining, err := notes.ListByPatient(ctx, patient.ID, nil)
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(vitals) != 0 || len(remaining) != 0 {
		t.Fatalf("expected dependent records removed, got %d vitals and %d notes", len(vitals), len(remaining))
	}
}
