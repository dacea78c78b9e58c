package schedule

import (
	"sort"
	"strings"
)

const (
	SortByDoctorName  = "doctorName"
	SortByPatientName = "patientName"
	SortByDepartment  = "department"
	SortByDateTime    = "dateTime"

	SortAsc  = "asc"
	SortDesc = "desc"

	DefaultPage  = 1
	DefaultLimit = 20
)

// Normalize подставляет значения по умолчанию и проверяет параметры
// сортировки и пагинации.
func (q ListQuery) Normalize() (ListQuery, error) {
	verr := &ValidationError{}

	if q.SortBy == "" {
		q.SortBy = SortByDateTime
	}
	switch q.SortBy {
	case SortByDoctorName, SortByPatientName, SortByDepartment, SortByDateTime:
	default:
		verr.add(FieldSortBy, "must be one of doctorName, patientName, department, dateTime")
	}

	if q.SortOrder == "" {
		q.SortOrder = SortDesc
	}
	q.SortOrder = strings.ToLower(q.SortOrder)
	if q.SortOrder != SortAsc && q.SortOrder != SortDesc {
		verr.add(FieldSortOrder, "must be asc or desc")
	}

	if q.Page == 0 {
		q.Page = DefaultPage
	}
	if q.Page < 0 {
		verr.add(FieldPage, "must be positive")
	}

	if q.Limit == 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit < 0 {
		verr.add(FieldLimit, "must be positive")
	}

	return q, verr.orNil()
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Matches применяет фильтры без учета регистра.
func (q ListQuery) Matches(s Schedule) bool {
	return containsFold(s.DoctorName, q.DoctorName) &&
		containsFold(s.PatientName, q.PatientName) &&
		containsFold(s.Department, q.Department) &&
		containsFold(s.DateTimeText(), q.DateTime)
}

// Compare сравнивает записи по полю сортировки по возрастанию.
func (q ListQuery) Compare(a, b Schedule) int {
	switch q.SortBy {
	case SortByDoctorName:
		return compareFold(a.DoctorName, b.DoctorName)
	case SortByPatientName:
		return compareFold(a.PatientName, b.PatientName)
	case SortByDepartment:
		return compareFold(a.Department, b.Department)
	default:
		return a.DateTime.Compare(b.DateTime)
	}
}

// Apply фильтрует, сортирует и режет выборку. Порядок items считается
// порядком вставки: при равенстве ключа он сохраняется.
func Apply(items []Schedule, q ListQuery) Page {
	matched := make([]Schedule, 0, len(items))
	for _, s := range items {
		if q.Matches(s) {
			matched = append(matched, s)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		c := q.Compare(matched[i], matched[j])
		if q.SortOrder == SortAsc {
			return c < 0
		}
		return c > 0
	})

	total := len(matched)
	from := min(q.Offset(), total)
	to := min(from+q.Limit, total)

	return Page{
		Data:       matched[from:to],
		Pagination: NewPagination(total, q.Page, q.Limit),
	}
}

func NewPagination(total, page, limit int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}

	return Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: pages,
	}
}

func containsFold(value, substr string) bool {
	if substr == "" {
		return true
	}

	return strings.Contains(strings.ToLower(value), strings.ToLower(substr))
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
