package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hospitalsched/internal/domain/schedule"
)

func TestLikePattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "%%"},
		{in: "Cardio", want: "%Cardio%"},
		{in: "100%", want: `%100\%%`},
		{in: "a_b", want: `%a\_b%`},
		{in: `c:\x`, want: `%c:\\x%`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, likePattern(tt.in))
		})
	}
}

func TestOrderBy(t *testing.T) {
	tests := []struct {
		name  string
		query schedule.ListQuery
		want  string
	}{
		{
			name:  "default",
			query: schedule.ListQuery{SortBy: schedule.SortByDateTime, SortOrder: schedule.SortDesc},
			want:  "date_time DESC, seq ASC",
		},
		{
			name:  "doctor asc",
			query: schedule.ListQuery{SortBy: schedule.SortByDoctorName, SortOrder: schedule.SortAsc},
			want:  "lower(doctor_name) ASC, seq ASC",
		},
		{
			name:  "unknown column falls back to date_time",
			query: schedule.ListQuery{SortBy: "drop table", SortOrder: schedule.SortAsc},
			want:  "date_time ASC, seq ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orderBy(tt.query))
		})
	}
}

func TestListFilter(t *testing.T) {
	where, args := listFilter(schedule.ListQuery{Department: "Surgery"})

	assert.Contains(t, where, "department ILIKE $3")
	assert.Equal(t, []any{"%%", "%%", "%Surgery%", "%%"}, args)
}
