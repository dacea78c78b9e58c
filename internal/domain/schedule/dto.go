package schedule

type CreateRequest struct {
	DoctorName  string `json:"doctorName,omitempty" doc:"Врач"`
	PatientName string `json:"patientName,omitempty" doc:"Пациент"`
	Department  string `json:"department,omitempty" doc:"Отделение"`
	DateTime    string `json:"dateTime,omitempty" doc:"Дата и время приема, RFC 3339" example:"2024-04-11T10:00:00Z"`
	Attachment
}

// UpdateRequest частичное обновление: nil означает "поле не передано".
type UpdateRequest struct {
	DoctorName  *string `json:"doctorName,omitempty"`
	PatientName *string `json:"patientName,omitempty"`
	Department  *string `json:"department,omitempty"`
	DateTime    *string `json:"dateTime,omitempty"`
	FileURL     *string `json:"fileUrl,omitempty"`
	FileName    *string `json:"fileName,omitempty"`
	FileSize    *int64  `json:"fileSize,omitempty"`
	FileType    *string `json:"fileType,omitempty"`
}

// AsUpdate переводит запрос на создание в набор полей для частичного
// обновления. Пустые поля вложения не передаются.
func (r CreateRequest) AsUpdate() UpdateRequest {
	u := UpdateRequest{
		DoctorName:  &r.DoctorName,
		PatientName: &r.PatientName,
		Department:  &r.Department,
		DateTime:    &r.DateTime,
	}
	if r.FileURL != "" {
		u.FileURL = &r.FileURL
	}
	if r.FileName != "" {
		u.FileName = &r.FileName
	}
	if r.FileSize != 0 {
		u.FileSize = &r.FileSize
	}
	if r.FileType != "" {
		u.FileType = &r.FileType
	}

	return u
}

// AsCreate обратное преобразование, непереданные поля остаются пустыми.
func (r UpdateRequest) AsCreate() CreateRequest {
	var c CreateRequest
	if r.DoctorName != nil {
		c.DoctorName = *r.DoctorName
	}
	if r.PatientName != nil {
		c.PatientName = *r.PatientName
	}
	if r.Department != nil {
		c.Department = *r.Department
	}
	if r.DateTime != nil {
		c.DateTime = *r.DateTime
	}
	if r.FileURL != nil {
		c.FileURL = *r.FileURL
	}
	if r.FileName != nil {
		c.FileName = *r.FileName
	}
	if r.FileSize != nil {
		c.FileSize = *r.FileSize
	}
	if r.FileType != nil {
		c.FileType = *r.FileType
	}

	return c
}

type ListQuery struct {
	DoctorName  string `json:"doctorName,omitempty"`
	PatientName string `json:"patientName,omitempty"`
	Department  string `json:"department,omitempty"`
	DateTime    string `json:"dateTime,omitempty"`
	SortBy      string `json:"sortBy,omitempty"`
	SortOrder   string `json:"sortOrder,omitempty"`
	Page        int    `json:"page,omitempty"`
	Limit       int    `json:"limit,omitempty"`
}

type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

type Page struct {
	Data       []Schedule `json:"data"`
	Pagination Pagination `json:"pagination"`
}
