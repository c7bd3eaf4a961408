package identity

import (
	"time"
)

// DateLayout is the wire format of a patient's date of birth.
const DateLayout = "2006-01-02"

// User maps to the users table. Users are the clinical staff who sign in.
type User struct {
	ID             string
	Email          string
	PasswordHash   string
	Name           string
	Specialization string
	ContactNumber  string
	CreatedAt      time.Time
}

// UserResponse is the shaped form of a User returned by GET /users. The
// password hash is never part of it.
type UserResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Specialization string `json:"specialization"`
	ContactNumber  string `json:"contact_number"`
}

func (u *User) Response() UserResponse {
	return UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Specialization: u.Specialization,
		ContactNumber:  u.ContactNumber,
	}
}

// Account is what register, login and /@me return.
type Account struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (u *User) Account() Account {
	return Account{ID: u.ID, Email: u.Email}
}

type RegisterRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	ContactNumber  string `json:"contact_number"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Patient maps to the patients table.
type Patient struct {
	ID            string
	Name          string
	Email         string
	DateOfBirth   time.Time
	Gender        string
	ContactNumber string
}

type PatientResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	DOB     string `json:"dob"`
	Gender  string `json:"gender"`
	Contact string `json:"contact"`
}

func (p *Patient) Response() PatientResponse {
	return PatientResponse{
		ID:      p.ID,
		Name:    p.Name,
		Email:   p.Email,
		DOB:     p.DateOfBirth.Format(DateLayout),
		Gender:  p.Gender,
		Contact: p.ContactNumber,
	}
}

type CreatePatientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	DOB     string `json:"dob"`
	Gender  string `json:"gender"`
	Contact string `json:"contact"`
}

// PatientPatch is a partial update. Nil fields are left unchanged.
type PatientPatch struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	DOB     *string `json:"dob"`
	Gender  *string `json:"gender"`
	Contact *string `json:"contact"`
}

// Apply copies the non-nil fields of the patch onto p.
func (pp PatientPatch) Apply(p *Patient) error {
	if pp.DOB != nil {
		dob, err := parseDOB(*pp.DOB)
		if err != nil {
			return err
		}
		p.DateOfBirth = dob
	}
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Email != nil {
		p.Email = *pp.Email
	}
	if pp.Gender != nil {
		p.Gender = *pp.Gender
	}
	if pp.Contact != nil {
		p.ContactNumber = *pp.Contact
	}
	return nil
}

func parseDOB(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &ValidationError{Message: "Invalid date of birth format, expected YYYY-MM-DD"}
	}
	return t, nil
}
