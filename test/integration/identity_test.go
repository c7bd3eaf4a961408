//go:build integration

package integration

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/HiralThadeshwar31/aidar-server/internal/domain/identity"
	"github.com/HiralThadeshwar31/aidar-server/internal/platform/db"
)

func TestUserRepo(t *testing.T) {
	ctx := context.Background()
	resetDB(t)
	repo := identity.NewUserRepo(pool)

	t.Run("CreateAndGetByEmail", func(t *testing.T) {
		u := &identity.User{Email: "house@example.com", PasswordHash: "hash", Name: "Gregory House"}
		if err := repo.Create(ctx, u); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if len(u.ID) != 32 {
			t.Fatalf("expected 32-char id, got %q", u.ID)
		}
		if u.CreatedAt.IsZero() {
			t.Fatal("expected created_at to be set")
		}

		got, err := repo.GetByEmail(ctx, "house@example.com")
		if err != nil {
			t.Fatalf("GetByEmail: %v", err)
		}
		if got.ID != u.ID || got.Name != "Gregory House" || got.PasswordHash != "hash" {
			t.Fatalf("unexpected user: %+v", got)
		}
		if got.Specialization != "" || got.ContactNumber != "" {
			t.Fatalf("expected empty optional fields, got %+v", got)
		}
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		u := &identity.User{Email: "house@example.com", PasswordHash: "other"}
		err := repo.Create(ctx, u)
		if !errors.Is(err, db.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
		if name := db.ConstraintName(err); name != "users_email_key" {
			t.Fatalf("expected users_email_key, got %q", name)
		}
	})

	t.Run("GetByIDNotFound", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "0123456789abcdef0123456789abcdef")
		if !errors.Is(err, db.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		createTestUser(t, ctx, "wilson@example.com")
		users, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(users) != 2 {
			t.Fatalf("expected 2 users, got %d", len(users))
		}
	})
}

func TestPatientRepo(t *testing.T) {
	ctx := context.Background()
	resetDB(t)
	repo := identity.NewPatientRepo(pool)

	var patientID string

	t.Run("Create", func(t *testing.T) {
		p := createTestPatient(t, ctx, "Jane Roe", "jane@example.com")
		if len(p.ID) != 32 {
			t.Fatalf("expected 32-char id, got %q", p.ID)
		}
		patientID = p.ID
	})

	t.Run("GetByIDRoundTripsDOB", func(t *testing.T) {
		got, err := repo.GetByID(ctx, patientID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if dob := got.DateOfBirth.Format(identity.DateLayout); dob != "1985-07-04" {
			t.Fatalf("expected dob 1985-07-04, got %s", dob)
		}
		if got.Response().DOB != "1985-07-04" {
			t.Fatalf("unexpected response dob %q", got.Response().DOB)
		}
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		p := &identity.Patient{
			Name:          "Other",
			Email:         "jane@example.com",
			DateOfBirth:   time.Now(),
			Gender:        "female",
			ContactNumber: "1",
		}
		err := repo.Create(ctx, p)
		if !errors.Is(err, db.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("PartialUpdate", func(t *testing.T) {
		p, err := repo.GetByID(ctx, patientID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		patch := identity.PatientPatch{Contact: ptrStr("5559999")}
		if err := patch.Apply(p); err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if err := repo.Update(ctx, p); err != nil {
			t.Fatalf("Update: %v", err)
		}

		got, err := repo.GetByID(ctx, patientID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.ContactNumber != "5559999" {
			t.Fatalf("expected contact 5559999, got %q", got.ContactNumber)
		}
		if got.Name != "Jane Roe" || got.Gender != "male" {
			t.Fatalf("unpatched fields changed: %+v", got)
		}
	})

	t.Run("LongFormattedValues", func(t *testing.T) {
		p := &identity.Patient{
			Name:          strings.Repeat("N", 150),
			Email:         "long@example.com",
			DateOfBirth:   time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC),
			Gender:        "prefer not to say",
			ContactNumber: "+1 (555) 010-0123",
		}
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create: %v", err)
		}
		got, err := repo.GetByID(ctx, p.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.ContactNumber != "+1 (555) 010-0123" || got.Gender != "prefer not to say" {
			t.Fatalf("unexpected patient: %+v", got)
		}
		if err := repo.Delete(ctx, p.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		err := repo.Update(ctx, &identity.Patient{ID: "missing", DateOfBirth: time.Now()})
		if !errors.Is(err, db.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListOrderedByName", func(t *testing.T) {
		createTestPatient(t, ctx, "Adam Zed", "adam@example.com")
		patients, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(patients) != 2 || patients[0].Name != "Adam Zed" {
			t.Fatalf("unexpected list order: %+v", patients)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := repo.Delete(ctx, patientID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := repo.GetByID(ctx, patientID); !errors.Is(err, db.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
		if err := repo.Delete(ctx, patientID); !errors.Is(err, db.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on second delete, got %v", err)
		}
	})
}
