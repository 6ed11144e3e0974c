package reference

import refDatamodel "github.com/frahmantamala/vacation-management/internal/core/datamodel/reference"

// Kind names one of the read-only lookup tables.
type Kind string

const (
	KindRoles            Kind = "roles"
	KindEmploymentTypes  Kind = "employment-types"
	KindVacationStatuses Kind = "vacation-statuses"
	KindVacationTypes    Kind = "vacation-types"
)

func (k Kind) Valid() bool {
	switch k {
	case KindRoles, KindEmploymentTypes, KindVacationStatuses, KindVacationTypes:
		return true
	}
	return false
}

// Entry is a single lookup row, whatever table it came from.
type Entry struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type EntriesResponse struct {
	Kind    Kind     `json:"kind"`
	Entries []*Entry `json:"entries"`
}

// Lookup indexes entries by id for rendering.
type Lookup map[int64]*Entry

func NewLookup(entries []*Entry) Lookup {
	l := make(Lookup, len(entries))
	for _, e := range entries {
		l[e.ID] = e
	}
	return l
}

// Name returns the entry name, or "" for a nil or unknown id.
func (l Lookup) Name(id *int64) string {
	if id == nil {
		return ""
	}
	if e, ok := l[*id]; ok {
		return e.Name
	}
	return ""
}

func fromRoles(rows []*refDatamodel.UserRole) []*Entry {
	out := make([]*Entry, 0, len(rows))
	for _, r := range rows {
		out = append(out, &Entry{ID: r.ID, Name: r.Name, Description: r.Description})
	}
	return out
}

func fromEmploymentTypes(rows []*refDatamodel.EmploymentType) []*Entry {
	out := make([]*Entry, 0, len(rows))
	for _, r := range rows {
		out = append(out, &Entry{ID: r.ID, Name: r.Name, Description: r.Description})
	}
	return out
}

func fromVacationStatuses(rows []*refDatamodel.VacationStatus) []*Entry {
	out := make([]*Entry, 0, len(rows))
	for _, r := range rows {
		out = append(out, &Entry{ID: r.ID, Name: r.Name, Description: r.Description})
	}
	return out
}

func fromVacationTypes(rows []*refDatamodel.VacationType) []*Entry {
	out := make([]*Entry, 0, len(rows))
	for _, r := range rows {
		out = append(out, &Entry{ID: r.ID, Name: r.Name, Description: r.Description})
	}
	return out
}
