package vacation

import (
	"strings"
	"time"

	"github.com/frahmantamala/vacation-management/internal"
)

type CreateVacationDTO struct {
	UserID           string `json:"user_id"`
	VacationTypeID   int64  `json:"vacation_type_id"`
	VacationStatusID int64  `json:"vacation_status_id"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	Comment          string `json:"comment"`
}

type UpdateVacationDTO struct {
	VacationTypeID   int64  `json:"vacation_type_id"`
	VacationStatusID int64  `json:"vacation_status_id"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	Comment          string `json:"comment"`
}

type VacationsResponse struct {
	Vacations []*Vacation `json:"vacations"`
}

type DeletedResponse struct {
	Deleted []*Vacation `json:"deleted"`
}

func (d CreateVacationDTO) Validate() (start, end time.Time, err error) {
	if strings.TrimSpace(d.UserID) == "" {
		return start, end, internal.NewValidationFieldError("user_id", "user_id is required", internal.ErrCodeValidationFailed)
	}
	if d.VacationTypeID <= 0 {
		return start, end, internal.NewValidationFieldError("vacation_type_id", "vacation type is required", internal.ErrCodeValidationFailed)
	}
	return parseRange(d.StartDate, d.EndDate)
}

func (d UpdateVacationDTO) Validate() (start, end time.Time, err error) {
	if d.VacationTypeID <= 0 {
		return start, end, internal.NewValidationFieldError("vacation_type_id", "vacation type is required", internal.ErrCodeValidationFailed)
	}
	if d.VacationStatusID <= 0 {
		return start, end, internal.NewValidationFieldError("vacation_status_id", "vacation status is required", internal.ErrCodeValidationFailed)
	}
	return parseRange(d.StartDate, d.EndDate)
}

// parseRange accepts either plain dates or RFC 3339 timestamps.
func parseRange(rawStart, rawEnd string) (time.Time, time.Time, error) {
	start, err := parseDate(rawStart)
	if err != nil {
		return time.Time{}, time.Time{}, internal.NewValidationFieldError("start_date", "start date must be YYYY-MM-DD", internal.ErrCodeInvalidDate)
	}
	end, err := parseDate(rawEnd)
	if err != nil {
		return time.Time{}, time.Time{}, internal.NewValidationFieldError("end_date", "end date must be YYYY-MM-DD", internal.ErrCodeInvalidDate)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, internal.NewValidationFieldError("end_date", "end date must not be before start date", internal.ErrCodeInvalidDate)
	}
	return start, end, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
