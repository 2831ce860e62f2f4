package domain

// Assignment is a graded piece of work attached to a course.
type Assignment struct {
	ID                    int64      `json:"id"`
	Title                 string     `json:"title"`
	Description           string     `json:"description,omitempty"`
	Course                *Course    `json:"course,omitempty"`
	Teacher               *User      `json:"teacher,omitempty"`
	MaxScore              float64    `json:"maxScore"`
	Deadline              *Timestamp `json:"deadline,omitempty"`
	AllowLateSubmission   bool       `json:"allowLateSubmission"`
	LateSubmissionPenalty float64    `json:"lateSubmissionPenalty"`
	Published             bool       `json:"isPublished"`
	CreatedAt             Timestamp  `json:"createdAt"`
	UpdatedAt             Timestamp  `json:"updatedAt"`
}

// Submission is one versioned upload of a student for an assignment.
type Submission struct {
	ID          int64       `json:"id"`
	Assignment  *Assignment `json:"assignment,omitempty"`
	Student     *User       `json:"student,omitempty"`
	Version     int         `json:"version"`
	FileName    string      `json:"fileName,omitempty"`
	FilePath    string      `json:"filePath,omitempty"`
	FileSize    int64       `json:"fileSize,omitempty"`
	Comment     string      `json:"comment,omitempty"`
	Late        bool        `json:"isLate"`
	SubmittedAt Timestamp   `json:"submittedAt"`
	Grade       *Grade      `json:"grade,omitempty"`
}

// Grade is a teacher's score for a submission.
type Grade struct {
	ID         int64       `json:"id"`
	Submission *Submission `json:"submission,omitempty"`
	Score      float64     `json:"score"`
	Feedback   string      `json:"feedback,omitempty"`
	GradedBy   *User       `json:"gradedBy,omitempty"`
	GradedAt   Timestamp   `json:"gradedAt"`
	UpdatedAt  Timestamp   `json:"updatedAt"`
}

// SubmissionStats summarizes submissions for one assignment.
type SubmissionStats struct {
	TotalSubmissions int `json:"totalSubmissions"`
	UniqueStudents   int `json:"uniqueStudents"`
	UngradedCount    int `json:"ungradedCount"`
	LateCount        int `json:"lateCount"`
}

// GradeStats summarizes grades for one assignment.
type GradeStats struct {
	AverageScore float64 `json:"averageScore"`
	GradedCount  int     `json:"gradedCount"`
}

// AverageScore is the payload of the course and personal average endpoints.
type AverageScore struct {
	AverageScore float64 `json:"averageScore"`
}
