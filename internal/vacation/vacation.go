package vacation

import (
	"time"

	vacationDatamodel "github.com/frahmantamala/vacation-management/internal/core/datamodel/vacation"
)

// DefaultStatusID is the status given to a vacation created without one; the seed
// data stores "pending" under this id.
const DefaultStatusID int64 = 1

const DateLayout = "2006-01-02"

type Vacation struct {
	ID               int64     `json:"id"`
	UserID           string    `json:"user_id"`
	VacationTypeID   int64     `json:"vacation_type_id"`
	VacationStatusID int64     `json:"vacation_status_id"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	Comment          string    `json:"comment,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Days counts calendar days in the vacation, both ends included.
func (v *Vacation) Days() int {
	start := truncateToDay(v.StartDate)
	end := truncateToDay(v.EndDate)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// NextUpdatedAt returns now, or the smallest instant after prior that the database
// keeps when the clock has not moved past prior.
func NextUpdatedAt(prior, now time.Time) time.Time {
	now = now.UTC().Truncate(time.Microsecond)
	if now.After(prior) {
		return now
	}
	return prior.UTC().Truncate(time.Microsecond).Add(time.Microsecond)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FromDataModel(v *vacationDatamodel.Vacation) *Vacation {
	return &Vacation{
		ID:               v.ID,
		UserID:           v.UserID,
		VacationTypeID:   v.VacationTypeID,
		VacationStatusID: v.VacationStatusID,
		StartDate:        v.StartDate,
		EndDate:          v.EndDate,
		Comment:          v.Comment,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

func FromDataModels(rows []*vacationDatamodel.Vacation) []*Vacation {
	out := make([]*Vacation, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out
}
