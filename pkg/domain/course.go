package domain

// Department is an academic department.
type Department struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description,omitempty"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

// Semester is an academic term. At most one semester is active.
type Semester struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Year      int       `json:"year"`
	StartDate string    `json:"startDate,omitempty"`
	EndDate   string    `json:"endDate,omitempty"`
	Active    bool      `json:"isActive"`
	CreatedAt Timestamp `json:"createdAt"`
}

// Subject belongs to a department and a semester and may have a teacher.
type Subject struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Code        string      `json:"code"`
	Description string      `json:"description,omitempty"`
	Credits     int         `json:"credits,omitempty"`
	Department  *Department `json:"department,omitempty"`
	Semester    *Semester   `json:"semester,omitempty"`
	Teacher     *User       `json:"teacher,omitempty"`
	CreatedAt   Timestamp   `json:"createdAt"`
	UpdatedAt   Timestamp   `json:"updatedAt"`
}

// Course is a teacher-owned offering of a subject.
type Course struct {
	ID          int64              `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Subject     *Subject           `json:"subject,omitempty"`
	Teacher     *User              `json:"teacher,omitempty"`
	Published   bool               `json:"isPublished"`
	CreatedAt   Timestamp          `json:"createdAt"`
	UpdatedAt   Timestamp          `json:"updatedAt"`
	Materials   []CourseMaterial   `json:"materials,omitempty"`
	Enrollments []CourseEnrollment `json:"enrollments,omitempty"`
}

// CourseMaterial is a file attached to a course.
type CourseMaterial struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	FileType      string    `json:"fileType"`              // PDF, PPT, PPTX, DOC, DOCX, VIDEO, IMAGE, OTHER
	FileName      string    `json:"fileName"`
	FilePath      string    `json:"filePath"`
	FileSize      int64     `json:"fileSize"`
	DownloadCount int       `json:"downloadCount"`
	UploadedAt    Timestamp `json:"uploadedAt"`
}

// Enrollment statuses.
const (
	EnrollmentActive    = "ACTIVE"
	EnrollmentCompleted = "COMPLETED"
	EnrollmentDropped   = "DROPPED"
)

// CourseEnrollment links a student to a course.
type CourseEnrollment struct {
	ID          int64      `json:"id"`
	Course      *Course    `json:"course,omitempty"`
	Student     *User      `json:"student,omitempty"`
	Status      string     `json:"status"`
	EnrolledAt  Timestamp  `json:"enrolledAt"`
	CompletedAt *Timestamp `json:"completedAt,omitempty"`
}
