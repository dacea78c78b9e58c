package schedule

import "time"

// Schedule запись о приеме пациента у врача.
type Schedule struct {
	ID          string    `json:"id"`
	DoctorName  string    `json:"doctorName"`
	PatientName string    `json:"patientName"`
	Department  string    `json:"department"`
	DateTime    time.Time `json:"dateTime"`
	Attachment
}

// Attachment ссылка на прикрепленный файл. Сам файл хранится вне записи.
type Attachment struct {
	FileURL  string `json:"fileUrl,omitempty"`
	FileName string `json:"fileName,omitempty"`
	FileSize int64  `json:"fileSize,omitempty"`
	FileType string `json:"fileType,omitempty"`
}

// Stats сводка по всем записям.
type Stats struct {
	Total                  int    `json:"total"`
	BusiestDoctor          string `json:"busiestDoctor,omitempty"`
	BusiestDoctorCount     int    `json:"busiestDoctorCount"`
	PopularDepartment      string `json:"popularDepartment,omitempty"`
	PopularDepartmentCount int    `json:"popularDepartmentCount"`
}

// DateTimeText формат, по которому фильтруется поле dateTime. Всегда UTC.
func (s Schedule) DateTimeText() string {
	return s.DateTime.UTC().Format(time.RFC3339)
}

// Apply накладывает заданные поля поверх записи. Поля должны быть
// провалидированы заранее.
func (s Schedule) Apply(req UpdateRequest, dt time.Time) Schedule {
	if req.DoctorName != nil {
		s.DoctorName = *req.DoctorName
	}
	if req.PatientName != nil {
		s.PatientName = *req.PatientName
	}
	if req.Department != nil {
		s.Department = *req.Department
	}
	if req.DateTime != nil {
		s.DateTime = dt
	}
	if req.FileURL != nil {
		s.FileURL = *req.FileURL
	}
	if req.FileName != nil {
		s.FileName = *req.FileName
	}
	if req.FileSize != nil {
		s.FileSize = *req.FileSize
	}
	if req.FileType != nil {
		s.FileType = *req.FileType
	}

	return s
}
