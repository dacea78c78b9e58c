package schedule

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const MinTextLen = 3

const (
	FieldDoctorName  = "doctorName"
	FieldPatientName = "patientName"
	FieldDepartment  = "department"
	FieldDateTime    = "dateTime"
	FieldFileSize    = "fileSize"
	FieldSortBy      = "sortBy"
	FieldSortOrder   = "sortOrder"
	FieldPage        = "page"
	FieldLimit       = "limit"
)

// ParseDateTime разбирает ISO-8601 метку времени с указанием зоны.
// Результат всегда в UTC, как хранит Postgres.
func ParseDateTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse dateTime %q: %w", s, err)
	}

	return t.UTC(), nil
}

// Validate проверяет запрос на создание и возвращает разобранное время приема.
func (r CreateRequest) Validate() (time.Time, error) {
	verr := &ValidationError{}

	checkText(verr, FieldDoctorName, r.DoctorName)
	checkText(verr, FieldPatientName, r.PatientName)
	checkText(verr, FieldDepartment, r.Department)

	dt, err := ParseDateTime(r.DateTime)
	if err != nil {
		verr.add(FieldDateTime, "must be an ISO-8601 datetime")
	}

	if r.FileSize < 0 {
		verr.add(FieldFileSize, "must not be negative")
	}

	return dt, verr.orNil()
}

// Validate проверяет только переданные поля.
func (r UpdateRequest) Validate() (time.Time, error) {
	verr := &ValidationError{}

	if r.DoctorName != nil {
		checkText(verr, FieldDoctorName, *r.DoctorName)
	}
	if r.PatientName != nil {
		checkText(verr, FieldPatientName, *r.PatientName)
	}
	if r.Department != nil {
		checkText(verr, FieldDepartment, *r.Department)
	}

	var dt time.Time
	if r.DateTime != nil {
		var err error
		dt, err = ParseDateTime(*r.DateTime)
		if err != nil {
			verr.add(FieldDateTime, "must be an ISO-8601 datetime")
		}
	}

	if r.FileSize != nil && *r.FileSize < 0 {
		verr.add(FieldFileSize, "must not be negative")
	}

	return dt, verr.orNil()
}

func checkText(verr *ValidationError, field, value string) {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < MinTextLen {
		verr.add(field, fmt.Sprintf("must be at least %d characters", MinTextLen))
	}
}
