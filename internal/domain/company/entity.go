package company

import (
	"strings"
	"time"
)

type Company struct {
	ID        string
	Code      string
	Name      string
	CreatedBy string
	CreatedAt time.Time
}

// ManagerCode is both the credential that lets someone register as a
// manager and the tag that assigns employees to that manager's team.
type ManagerCode struct {
	ID          string
	Name        string
	Code        string
	CompanyCode string
	CreatedBy   string
	CreatedAt   time.Time
}

// NormalizeCode is applied wherever a company or manager code is stored or
// compared.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeCodePtr normalizes an optional code; blank codes become nil.
func NormalizeCodePtr(code *string) *string {
	if code == nil {
		return nil
	}
	n := NormalizeCode(*code)
	if n == "" {
		return nil
	}
	return &n
}
