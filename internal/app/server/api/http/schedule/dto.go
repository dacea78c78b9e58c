package schedule

import "hospitalsched/internal/domain/schedule"

type createInput struct {
	Body schedule.CreateRequest
}

type updateInput struct {
	ID   string `path:"id" doc:"ID записи"`
	Body schedule.UpdateRequest
}

type idInput struct {
	ID string `path:"id" doc:"ID записи"`
}

type listInput struct {
	DoctorName  string `query:"doctorName" doc:"Подстрока имени врача, без учета регистра"`
	PatientName string `query:"patientName" doc:"Подстрока имени пациента"`
	Department  string `query:"department" doc:"Подстрока отделения"`
	DateTime    string `query:"dateTime" doc:"Подстрока даты в формате RFC 3339"`
	SortBy      string `query:"sortBy" enum:"doctorName,patientName,department,dateTime" default:"dateTime"`
	SortOrder   string `query:"sortOrder" enum:"asc,desc" default:"desc"`
	Page        int    `query:"page" minimum:"1" default:"1"`
	Limit       int    `query:"limit" minimum:"1" maximum:"500" default:"20"`
}

func (in *listInput) query() schedule.ListQuery {
	return schedule.ListQuery{
		DoctorName:  in.DoctorName,
		PatientName: in.PatientName,
		Department:  in.Department,
		DateTime:    in.DateTime,
		SortBy:      in.SortBy,
		SortOrder:   in.SortOrder,
		Page:        in.Page,
		Limit:       in.Limit,
	}
}

type scheduleOutput struct {
	Body schedule.Schedule
}

type listOutput struct {
	Body schedule.Page
}

type statsOutput struct {
	Body schedule.Stats
}
