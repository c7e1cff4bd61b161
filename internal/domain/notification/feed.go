package notification

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/cmlabs-hris/certtracker/internal/domain/employee"
	"github.com/cmlabs-hris/certtracker/internal/domain/expiry"
	"github.com/cmlabs-hris/certtracker/internal/pkg/validator"
)

// Notification is one certification that needs attention.
type Notification struct {
	EmployeeID        string      `json:"employee_id"`
	EmployeeName      string      `json:"employee_name"`
	CertificationID   string      `json:"certification_id"`
	CertificationName string      `json:"certification_name"`
	Expiry            string      `json:"expiry"` // Format: "YYYY-MM-DD"
	DaysRemaining     int         `json:"days_remaining"`
	Tier              expiry.Tier `json:"tier"`
	Message           string      `json:"message"`
}

// Feed lists the non-ok certifications of a visible roster, most urgent
// first, together with the tier counts of every certification in it.
type Feed struct {
	Items  []Notification `json:"items"`
	Counts expiry.Counts  `json:"counts"`
	AsOf   string         `json:"as_of"`
}

// BuildFeed classifies every certification in visible against today. The
// caller is responsible for scoping visible to the actor.
func BuildFeed(visible employee.Roster, today time.Time) Feed {
	feed := Feed{
		Items: []Notification{},
		AsOf:  today.Format(validator.DateLayout),
	}

	for _, e := range visible {
		for _, c := range e.Certifications {
			cls := expiry.Classify(c.Expiry, today)
			feed.Counts.Add(cls.Tier)
			if cls.Tier == expiry.TierOK {
				continue
			}
			feed.Items = append(feed.Items, Notification{
				EmployeeID:        e.ID,
				EmployeeName:      e.Name,
				CertificationID:   c.ID,
				CertificationName: c.Name,
				Expiry:            c.Expiry.Format(validator.DateLayout),
				DaysRemaining:     cls.DaysRemaining,
				Tier:              cls.Tier,
				Message:           message(e.Name, c.Name, cls),
			})
		}
	}

	slices.SortStableFunc(feed.Items, func(a, b Notification) int {
		return cmp.Or(
			cmp.Compare(a.DaysRemaining, b.DaysRemaining),
			cmp.Compare(a.EmployeeName, b.EmployeeName),
			cmp.Compare(a.CertificationName, b.CertificationName),
		)
	})
	return feed
}

func message(employeeName, certName string, cls expiry.Classification) string {
	if cls.Tier == expiry.TierExpired {
		return fmt.Sprintf("%s for %s: %s", certName, employeeName, cls.Label())
	}
	return fmt.Sprintf("%s for %s expires in %s", certName, employeeName, cls.Label())
}
