package clinical

import (
	"time"
)

// TimeLayout is the wire format of measurement and note timestamps.
const TimeLayout = time.RFC3339

func formatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// -- Vitals --

// Vitals maps to the vitals table: one set of measurements for a patient.
type Vitals struct {
	ID              string
	PatientID       string
	HeartRate       int
	BloodPressure   string
	RespirationRate int
	Temperature     float64
	MeasurementTime time.Time
}

type VitalsResponse struct {
	ID              string  `json:"id"`
	PatientID       string  `json:"patient_id"`
	HeartRate       int     `json:"heart_rate"`
	BloodPressure   string  `json:"blood_pressure"`
	RespirationRate int     `json:"respiration_rate"`
	Temperature     float64 `json:"temperature"`
	MeasurementTime string  `json:"measurement_time"`
}

func (v *Vitals) Response() VitalsResponse {
	return VitalsResponse{
		ID:              v.ID,
		PatientID:       v.PatientID,
		HeartRate:       v.HeartRate,
		BloodPressure:   v.BloodPressure,
		RespirationRate: v.RespirationRate,
		Temperature:     v.Temperature,
		MeasurementTime: formatTime(v.MeasurementTime),
	}
}

// CreateVitalsRequest uses pointers for the numeric fields so that a missing
// field can be told apart from a zero reading.
type CreateVitalsRequest struct {
	PatientID       string   `json:"patient_id"`
	HeartRate       *int     `json:"heart_rate"`
	BloodPressure   string   `json:"blood_pressure"`
	RespirationRate *int     `json:"respiration_rate"`
	Temperature     *float64 `json:"temperature"`
}

// VitalsPatch is a partial update. The patient and measurement time of a
// reading cannot be changed.
type VitalsPatch struct {
	HeartRate       *int     `json:"heart_rate"`
	BloodPressure   *string  `json:"blood_pressure"`
	RespirationRate *int     `json:"respiration_rate"`
	Temperature     *float64 `json:"temperature"`
}

func (p VitalsPatch) Apply(v *Vitals) {
	if p.HeartRate != nil {
		v.HeartRate = *p.HeartRate
	}
	if p.BloodPressure != nil {
		v.BloodPressure = *p.BloodPressure
	}
	if p.RespirationRate != nil {
		v.RespirationRate = *p.RespirationRate
	}
	if p.Temperature != nil {
		v.Temperature = *p.Temperature
	}
}

// -- Physician Notes --

// PhysicianNote maps to the physician_notes table.
type PhysicianNote struct {
	ID          string
	PatientID   string
	PhysicianID string
	Note        string
	CreatedAt   time.Time
}

type PhysicianNoteResponse struct {
	ID          string `json:"id"`
	PatientID   string `json:"patient_id"`
	PhysicianID string `json:"physician_id"`
	Note        string `json:"note"`
	CreatedAt   string `json:"created_at"`
}

func (n *PhysicianNote) Response() PhysicianNoteResponse {
	return PhysicianNoteResponse{
		ID:          n.ID,
		PatientID:   n.PatientID,
		PhysicianID: n.PhysicianID,
		Note:        n.Note,
		CreatedAt:   formatTime(n.CreatedAt),
	}
}

type CreateNoteRequest struct {
	PatientID   string `json:"patient_id"`
	PhysicianID string `json:"physician_id"`
	Note        string `json:"note"`
}

type NotePatch struct {
	Note *string `json:"note"`
}

func (p NotePatch) Apply(n *PhysicianNote) {
	if p.Note != nil {
		n.Note = *p.Note
	}
}
