package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"hospitalsched/internal/domain/schedule"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, req schedule.CreateRequest) (schedule.Schedule, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(schedule.Schedule), args.Error(1)
}

func (m *MockService) List(ctx context.Context, q schedule.ListQuery) (schedule.Page, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(schedule.Page), args.Error(1)
}

func (m *MockService) Get(ctx context.Context, id string) (schedule.Schedule, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(schedule.Schedule), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, id string, req schedule.UpdateRequest) (schedule.Schedule, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(schedule.Schedule), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockService) Stats(ctx context.Context) (schedule.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(schedule.Stats), args.Error(1)
}

func newAPI(t *testing.T, svc schedule.Servicer) humatest.TestAPI {
	_, api := humatest.New(t)
	NewHandler(svc, slog.Default(), nil, false).SetupRoutes(api)
	return api
}

func sample() schedule.Schedule {
	return schedule.Schedule{
		ID:          "f3b1",
		DoctorName:  "Dr. Smith",
		PatientName: "John Doe",
		Department:  "Cardiology",
		DateTime:    time.Date(2024, 4, 11, 10, 0, 0, 0, time.UTC),
	}
}

type errorBody struct {
	Status int `json:"status"`
	Errors []struct {
		Location string `json:"location"`
		Message  string `json:"message"`
	} `json:"errors"`
}

func TestHandler_Create(t *testing.T) {
	svc := new(MockService)
	api := newAPI(t, svc)

	req := schedule.CreateRequest{
		DoctorName:  "Dr. Smith",
		PatientName: "John Doe",
		Department:  "Cardiology",
		DateTime:    "2024-04-11T10:00:00Z",
	}
	svc.On("Create", mock.Anything, req).Return(sample(), nil)

	resp := api.Post("/schedules", req)
	require.Equal(t, http.StatusCreated, resp.Code)

	var got schedule.Schedule
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, sample(), got)

	svc.AssertExpectations(t)
}

func TestHandler_Create_ValidationError(t *testing.T) {
	svc := new(MockService)
	api := newAPI(t, svc)

	verr := &schedule.ValidationError{Fields: []schedule.FieldError{
		{Field: "doctorName", Message: "must be at least 3 characters"},
	}}
	svc.On("Create", mock.Anything, mock.Anything).Return(schedule.Schedule{}, verr)

	resp := api.Post("/schedules", map[string]any{"doctorName": "Dr"})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "body.doctorName", body.Errors[0].Location)
}

func TestHandler_List(t *testing.T) {
	svc := new(MockService)
	api := newAPI(t, svc)

	expected := schedule.ListQuery{
		Department: "cardio",
		SortBy:     "dateTime",
		SortOrder:  "asc",
		Page:       2,
		Limit:      20,
	}
	page := schedule.Page{
		Data:       []schedule.Schedule{sample()},
		Pagination: schedule.NewPagination(21, 2, 20),
	}
	svc.On("List", mock.Anything, expected).Return(page, nil)

	resp := api.Get("/schedules?department=cardio&sortOrder=asc&page=2")
	require.Equal(t, http.StatusOK, resp.Code)

	var got schedule.Page
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, page.Pagination, got.Pagination)
	require.Len(t, got.Data, 1)
	assert.Equal(t, "f3b1", got.Data[0].ID)

	svc.AssertExpectations(t)
}

func TestHandler_List_RejectsUnknownSort(t *testing.T) {
	svc := new(MockService)
	api := newAPI(t, svc)

	resp := api.Get("/schedules?sortBy=age")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestHandler_Find(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "found", wantStatus: http.StatusOK},
		{name: "not found", err: schedule.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "storage failure", err: errors.New("pool closed"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			api := newAPI(t, svc)

			svc.On("Get", mock.Anything, "f3b1").Return(sample(), tt.err)

			resp := api.Get("/schedules/f3b1")
			assert.Equal(t, tt.wantStatus, resp.Code)
		})
	}
}

func TestHandler_Update(t *testing.T) {
	for _, method := range []string{http.MethodPatch, http.MethodPut} {
		t.Run(method, func(t *testing.T) {
			svc := new(MockService)
			api := newAPI(t, svc)

			dept := "Neurology"
			updated := sample()
			updated.Department = dept
			svc.On("Update", mock.Anything, "f3b1", schedule.UpdateRequest{Department: &dept}).Return(updated, nil)

			resp := api.Do(method, "/schedules/f3b1", map[string]any{"department": dept})
			require.Equal(t, http.StatusOK, resp.Code)

			var got schedule.Schedule
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
			assert.Equal(t, dept, got.Department)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Update_NotFound(t *testing.T) {
	svc := new(MockService)
	api := newAPI(t, svc)

	svc.On("Update", mock.Anything, "nope", mock.Anything).Return(schedule.Schedule{}, schedule.ErrNotFound)

	resp := api.Patch("/schedules/nope", map[string]any{"patientName": "Jane Roe"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHandler_Delete(t *testing.T) {
	svc := new(MockService)
	api := newAPI(t, svc)

	svc.On("Delete", mock.Anything, "f3b1").Return(nil)
	svc.On("Delete", mock.Anything, "gone").Return(schedule.ErrNotFound)

	assert.Equal(t, http.StatusNoContent, api.Delete("/schedules/f3b1").Code)
	assert.Equal(t, http.StatusNotFound, api.Delete("/schedules/gone").Code)
}

func TestHandler_Stats(t *testing.T) {
	svc := new(MockService)
	api := newAPI(t, svc)

	st := schedule.Stats{Total: 3, BusiestDoctor: "Dr. House", BusiestDoctorCount: 2, PopularDepartment: "Surgery", PopularDepartmentCount: 2}
	svc.On("Stats", mock.Anything).Return(st, nil)

	resp := api.Get("/schedules/stats")
	require.Equal(t, http.StatusOK, resp.Code)

	var got schedule.Stats
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, st, got)
	svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}
