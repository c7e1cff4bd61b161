package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID             string
	Name           string
	JobTitle       string
	Email          string
	CompanyCode    string
	ManagerCode    *string
	ManagerID      *string
	Certifications []Certification
	CreatedAt      time.Time
}

// Certification is owned by exactly one Employee.
type Certification struct {
	ID            string
	Name          string
	InitialDate   *time.Time
	Expiry        time.Time
	Issuer        string
	LicenseNumber string
}

func (e Employee) clone() Employee {
	c := e
	c.ManagerCode = clonePtr(e.ManagerCode)
	c.ManagerID = clonePtr(e.ManagerID)
	c.Certifications = make([]Certification, len(e.Certifications))
	for i, cert := range e.Certifications {
		c.Certifications[i] = cert.clone()
	}
	return c
}

func (c Certification) clone() Certification {
	out := c
	out.InitialDate = clonePtr(c.InitialDate)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// NewID returns a time-ordered UUIDv7. The generator keeps a per-process
// monotonic sequence, so ids minted within the same millisecond differ.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
