package clinical

import (
	"context"
)

type Service struct {
	vitals VitalsRepository
	notes  NoteRepository
}

func NewService(vitals VitalsRepository, notes NoteRepository) *Service {
	return &Service{vitals: vitals, notes: notes}
}

// -- Vitals --

// CreateVitals records a reading. The patient reference is checked by the
// store's foreign key, not here.
func (s *Service) CreateVitals(ctx context.Context, req CreateVitalsRequest) (*Vitals, error) {
	switch {
	case req.PatientID == "":
		return nil, required("patient_id")
	case req.HeartRate == nil:
		return nil, required("heart_rate")
	case req.BloodPressure == "":
		return nil, required("blood_pressure")
	case req.RespirationRate == nil:
		return nil, required("respiration_rate")
	case req.Temperature == nil:
		return nil, required("temperature")
	}

	v := &Vitals{
		PatientID:       req.PatientID,
		HeartRate:       *req.HeartRate,
		BloodPressure:   req.BloodPressure,
		RespirationRate: *req.RespirationRate,
		Temperature:     *req.Temperature,
	}
	if err := s.vitals.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) ListVitals(ctx context.Context) ([]*Vitals, error) {
	return s.vitals.List(ctx)
}

// PatientVitals lists a patient's readings taken at or after startDate. An
// empty startDate returns every reading.
func (s *Service) PatientVitals(ctx context.Context, patientID, startDate string) ([]*Vitals, error) {
	since, err := ParseStartDate(startDate)
	if err != nil {
		return nil, err
	}
	return s.vitals.ListByPatient(ctx, patientID, since)
}

func (s *Service) UpdateVitals(ctx context.Context, id string, patch VitalsPatch) (*Vitals, error) {
	v, err := s.vitals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(v)
	if err := s.vitals.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) DeleteVitals(ctx context.Context, id string) error {
	return s.vitals.Delete(ctx, id)
}

// -- Physician Notes --

func (s *Service) CreateNote(ctx context.Context, req CreateNoteRequest) (*PhysicianNote, error) {
	switch {
	case req.PatientID == "":
		return nil, required("patient_id")
	case req.PhysicianID == "":
		return nil, required("physician_id")
	case req.Note == "":
		return nil, required("note")
	}

	n := &PhysicianNote{
		PatientID:   req.PatientID,
		PhysicianID: req.PhysicianID,
		Note:        req.Note,
	}
	if err := s.notes.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Service) ListNotes(ctx context.Context) ([]*PhysicianNote, error) {
	return s.notes.List(ctx)
}

func (s *Service) PatientNotes(ctx context.Context, patientID, startDate string) ([]*PhysicianNote, error) {
	since, err := ParseStartDate(startDate)
	if err != nil {
		return nil, err
	}
	return s.notes.ListByPatient(ctx, patientID, since)
}

func (s *Service) UpdateNote(ctx context.Context, id string, patch NotePatch) (*PhysicianNote, error) {
	n, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(n)
	if err := s.notes.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Service) DeleteNote(ctx context.Context, id string) error {
	return s.notes.Delete(ctx, id)
}
