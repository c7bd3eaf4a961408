package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/HiralThadeshwar31/aidar-server/internal/platform/db"
)

type Service struct {
	users      UserRepository
	patients   PatientRepository
	bcryptCost int
}

func NewService(users UserRepository, patients PatientRepository, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{users: users, patients: patients, bcryptCost: bcryptCost}
}

// -- Accounts --

// Register creates a user with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	req.Email = strings.TrimSpace(req.Email)
	switch {
	case req.Email == "":
		return nil, required("email")
	case req.Password == "":
		return nil, required("password")
	case req.Name == "":
		return nil, required("name")
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, &ValidationError{Message: "password must be at most 72 bytes"}
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Email:          req.Email,
		PasswordHash:   string(hash),
		Name:           req.Name,
		Specialization: req.Specialization,
		ContactNumber:  req.ContactNumber,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, db.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Authenticate checks credentials. Unknown emails and wrong passwords both
// return ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, req LoginRequest) (*User, error) {
	req.Email = strings.TrimSpace(req.Email)
	switch {
	case req.Email == "":
		return nil, required("email")
	case req.Password == "":
		return nil, required("password")
	}

	u, err := s.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.users.List(ctx)
}

// -- Patient --

func (s *Service) CreatePatient(ctx context.Context, req CreatePatientRequest) (*Patient, error) {
	switch {
	case req.Name == "":
		return nil, required("name")
	case req.Email == "":
		return nil, required("email")
	case req.DOB == "":
		return nil, required("dob")
	case req.Gender == "":
		return nil, required("gender")
	case req.Contact == "":
		return nil, required("contact")
	}
	dob, err := parseDOB(req.DOB)
	if err != nil {
		return nil, err
	}

	p := &Patient{
		Name:          req.Name,
		Email:         req.Email,
		DateOfBirth:   dob,
		Gender:        req.Gender,
		ContactNumber: req.Contact,
	}
	if err := s.patients.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetPatient(ctx context.Context, id string) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context) ([]*Patient, error) {
	return s.patients.List(ctx)
}

// UpdatePatient applies a partial update. Concurrent updates are not
// detected; the last write wins.
func (s *Service) UpdatePatient(ctx context.Context, id string, patch PatientPatch) (*Patient, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := patch.Apply(p); err != nil {
		return nil, err
	}
	if err := s.patients.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeletePatient(ctx context.Context, id string) error {
	return s.patients.Delete(ctx, id)
}
