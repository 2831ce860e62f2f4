package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/campusmaster/campus/pkg/domain"
)

// AssignmentRequest is the create/update payload for an assignment.
// Deadline uses the API's zoneless "2006-01-02T15:04:05" layout.
type AssignmentRequest struct {
	Title                 string   `json:"title,omitempty"`
	Description           string   `json:"description,omitempty"`
	MaxScore              *float64 `json:"maxScore,omitempty"`
	Deadline              string   `json:"deadline,omitempty"`
	AllowLateSubmission   *bool    `json:"allowLateSubmission,omitempty"`
	LateSubmissionPenalty *float64 `json:"lateSubmissionPenalty,omitempty"`
}

// GradeRequest is the payload for grading a submission.
type GradeRequest struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback,omitempty"`
}

// --- Assignments ---

// ListAssignments returns all assignments.
func (c *Client) ListAssignments(ctx context.Context) ([]domain.Assignment, error) {
	return c.assignmentList(ctx, "/api/assignments", "client.ListAssignments")
}

// GetAssignment fetches an assignment by ID.
func (c *Client) GetAssignment(ctx context.Context, id int64) (*domain.Assignment, error) {
	var a domain.Assignment
	if err := c.get(ctx, "/api/assignments/"+idPath(id), &a); err != nil {
		return nil, fmt.Errorf("client.GetAssignment: %w", err)
	}
	return &a, nil
}

// AssignmentsByCourse lists the assignments of a course.
func (c *Client) AssignmentsByCourse(ctx context.Context, courseID int64) ([]domain.Assignment, error) {
	return c.assignmentList(ctx, "/api/assignments/course/"+idPath(courseID), "client.AssignmentsByCourse")
}

// MyAssignments lists the assignments created by the authenticated teacher.
func (c *Client) MyAssignments(ctx context.Context) ([]domain.Assignment, error) {
	return c.assignmentList(ctx, "/api/assignments/my-assignments", "client.MyAssignments")
}

// StudentAssignments lists every assignment visible to the authenticated student.
func (c *Client) StudentAssignments(ctx context.Context) ([]domain.Assignment, error) {
	return c.assignmentList(ctx, "/api/assignments/student/all", "client.StudentAssignments")
}

// UpcomingAssignments lists the student's assignments whose deadline has not passed.
func (c *Client) UpcomingAssignments(ctx context.Context) ([]domain.Assignment, error) {
	return c.assignmentList(ctx, "/api/assignments/student/upcoming", "client.UpcomingAssignments")
}

func (c *Client) assignmentList(ctx context.Context, path, op string) ([]domain.Assignment, error) {
	var out []domain.Assignment
	if err := c.get(ctx, path, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// CreateAssignment creates an assignment in a course.
func (c *Client) CreateAssignment(ctx context.Context, req AssignmentRequest, courseID int64) (*domain.Assignment, error) {
	var a domain.Assignment
	if err := c.post(ctx, "/api/assignments?courseId="+strconv.FormatInt(courseID, 10), req, &a); err != nil {
		return nil, fmt.Errorf("client.CreateAssignment: %w", err)
	}
	return &a, nil
}

// UpdateAssignment updates an assignment.
func (c *Client) UpdateAssignment(ctx context.Context, id int64, req AssignmentRequest) (*domain.Assignment, error) {
	var a domain.Assignment
	if err := c.put(ctx, "/api/assignments/"+idPath(id), req, &a); err != nil {
		return nil, fmt.Errorf("client.UpdateAssignment: %w", err)
	}
	return &a, nil
}

// PublishAssignment publishes an assignment.
func (c *Client) PublishAssignment(ctx context.Context, id int64) (*domain.Assignment, error) {
	var a domain.Assignment
	if err := c.put(ctx, "/api/assignments/"+idPath(id)+"/publish", nil, &a); err != nil {
		return nil, fmt.Errorf("client.PublishAssignment: %w", err)
	}
	return &a, nil
}

// UnpublishAssignment unpublishes an assignment.
func (c *Client) UnpublishAssignment(ctx context.Context, id int64) (*domain.Assignment, error) {
	var a domain.Assignment
	if err := c.put(ctx, "/api/assignments/"+idPath(id)+"/unpublish", nil, &a); err != nil {
		return nil, fmt.Errorf("client.UnpublishAssignment: %w", err)
	}
	return &a, nil
}

// DeleteAssignment deletes an assignment.
func (c *Client) DeleteAssignment(ctx context.Context, id int64) error {
	if err := c.del(ctx, "/api/assignments/"+idPath(id)); err != nil {
		return fmt.Errorf("client.DeleteAssignment: %w", err)
	}
	return nil
}

// --- Submissions ---

func (c *Client) submissionList(ctx context.Context, path, op string) ([]domain.Submission, error) {
	var out []domain.Submission
	if err := c.get(ctx, path, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// SubmissionsByAssignment lists every submission for an assignment.
func (c *Client) SubmissionsByAssignment(ctx context.Context, assignmentID int64) ([]domain.Submission, error) {
	return c.submissionList(ctx, "/api/submissions/assignment/"+idPath(assignmentID), "client.SubmissionsByAssignment")
}

// MySubmissions lists the authenticated student's submissions.
func (c *Client) MySubmissions(ctx context.Context) ([]domain.Submission, error) {
	return c.submissionList(ctx, "/api/submissions/my-submissions", "client.MySubmissions")
}

// GetSubmission fetches a submission by ID.
func (c *Client) GetSubmission(ctx context.Context, id int64) (*domain.Submission, error) {
	var s domain.Submission
	if err := c.get(ctx, "/api/submissions/"+idPath(id), &s); err != nil {
		return nil, fmt.Errorf("client.GetSubmission: %w", err)
	}
	return &s, nil
}

// MySubmissionFor returns the student's latest submission for an assignment.
func (c *Client) MySubmissionFor(ctx context.Context, assignmentID int64) (*domain.Submission, error) {
	var s domain.Submission
	if err := c.get(ctx, "/api/submissions/assignment/"+idPath(assignmentID)+"/my-submission", &s); err != nil {
		return nil, fmt.Errorf("client.MySubmissionFor: %w", err)
	}
	return &s, nil
}

// MySubmissionVersions lists every version the student submitted for an assignment.
func (c *Client) MySubmissionVersions(ctx context.Context, assignmentID int64) ([]domain.Submission, error) {
	return c.submissionList(ctx, "/api/submissions/assignment/"+idPath(assignmentID)+"/my-versions", "client.MySubmissionVersions")
}

// Submit uploads a file as a new submission version.
func (c *Client) Submit(ctx context.Context, assignmentID int64, fileName string, content io.Reader, comment string) (*domain.Submission, error) {
	fields := map[string]string{"comment": comment}
	file := FilePart{Field: "file", FileName: fileName, Content: content}

	var s domain.Submission
	if err := c.doMultipart(ctx, http.MethodPost, "/api/submissions/assignment/"+idPath(assignmentID)+"/submit", fields, file, &s); err != nil {
		return nil, fmt.Errorf("client.Submit: %w", err)
	}
	return &s, nil
}

// UngradedSubmissions lists ungraded submissions for an assignment.
func (c *Client) UngradedSubmissions(ctx context.Context, assignmentID int64) ([]domain.Submission, error) {
	return c.submissionList(ctx, "/api/submissions/assignment/"+idPath(assignmentID)+"/ungraded", "client.UngradedSubmissions")
}

// GradedSubmissions lists graded submissions for an assignment.
func (c *Client) GradedSubmissions(ctx context.Context, assignmentID int64) ([]domain.Submission, error) {
	return c.submissionList(ctx, "/api/submissions/assignment/"+idPath(assignmentID)+"/graded", "client.GradedSubmissions")
}

// LateSubmissions lists late submissions for an assignment.
func (c *Client) LateSubmissions(ctx context.Context, assignmentID int64) ([]domain.Submission, error) {
	return c.submissionList(ctx, "/api/submissions/assignment/"+idPath(assignmentID)+"/late", "client.LateSubmissions")
}

// SubmissionStats summarizes submissions for an assignment.
func (c *Client) SubmissionStats(ctx context.Context, assignmentID int64) (*domain.SubmissionStats, error) {
	var s domain.SubmissionStats
	if err := c.get(ctx, "/api/submissions/assignment/"+idPath(assignmentID)+"/stats", &s); err != nil {
		return nil, fmt.Errorf("client.SubmissionStats: %w", err)
	}
	return &s, nil
}

// HasSubmitted reports whether the student already submitted for an assignment.
func (c *Client) HasSubmitted(ctx context.Context, assignmentID int64) (bool, error) {
	var ok bool
	if err := c.get(ctx, "/api/submissions/assignment/"+idPath(assignmentID)+"/has-submitted", &ok); err != nil {
		return false, fmt.Errorf("client.HasSubmitted: %w", err)
	}
	return ok, nil
}

// SubmissionDownloadURL asks the backend for a pre-signed URL of a
// submission's file. The URL is external and needs no bearer token.
func (c *Client) SubmissionDownloadURL(ctx context.Context, submissionID int64) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := c.get(ctx, "/api/submissions/"+idPath(submissionID)+"/download", &out); err != nil {
		return "", fmt.Errorf("client.SubmissionDownloadURL: %w", err)
	}
	if out.URL == "" {
		return "", fmt.Errorf("client.SubmissionDownloadURL: empty url in response")
	}
	return out.URL, nil
}

// --- Grades ---

func (c *Client) gradeList(ctx context.Context, path, op string) ([]domain.Grade, error) {
	var out []domain.Grade
	if err := c.get(ctx, path, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// GetGrade fetches a grade by ID.
func (c *Client) GetGrade(ctx context.Context, id int64) (*domain.Grade, error) {
	var g domain.Grade
	if err := c.get(ctx, "/api/grades/"+idPath(id), &g); err != nil {
		return nil, fmt.Errorf("client.GetGrade: %w", err)
	}
	return &g, nil
}

// GradeForSubmission fetches the grade of a submission.
func (c *Client) GradeForSubmission(ctx context.Context, submissionID int64) (*domain.Grade, error) {
	var g domain.Grade
	if err := c.get(ctx, "/api/grades/submission/"+idPath(submissionID), &g); err != nil {
		return nil, fmt.Errorf("client.GradeForSubmission: %w", err)
	}
	return &g, nil
}

// MyGrades lists the authenticated student's grades.
func (c *Client) MyGrades(ctx context.Context) ([]domain.Grade, error) {
	return c.gradeList(ctx, "/api/grades/my-grades", "client.MyGrades")
}

// MyGradesByCourse lists the student's grades in one course.
func (c *Client) MyGradesByCourse(ctx context.Context, courseID int64) ([]domain.Grade, error) {
	return c.gradeList(ctx, "/api/grades/my-grades/course/"+idPath(courseID), "client.MyGradesByCourse")
}

// GradesByCourse lists every grade in a course.
func (c *Client) GradesByCourse(ctx context.Context, courseID int64) ([]domain.Grade, error) {
	return c.gradeList(ctx, "/api/grades/course/"+idPath(courseID), "client.GradesByCourse")
}

// GradesByAssignment lists every grade for an assignment.
func (c *Client) GradesByAssignment(ctx context.Context, assignmentID int64) ([]domain.Grade, error) {
	return c.gradeList(ctx, "/api/grades/assignment/"+idPath(assignmentID), "client.GradesByAssignment")
}

// GradeSubmission grades a submission.
func (c *Client) GradeSubmission(ctx context.Context, submissionID int64, req GradeRequest) (*domain.Grade, error) {
	var g domain.Grade
	if err := c.post(ctx, "/api/grades/submission/"+idPath(submissionID), req, &g); err != nil {
		return nil, fmt.Errorf("client.GradeSubmission: %w", err)
	}
	return &g, nil
}

// UpdateGrade updates an existing grade.
func (c *Client) UpdateGrade(ctx context.Context, gradeID int64, req GradeRequest) (*domain.Grade, error) {
	var g domain.Grade
	if err := c.put(ctx, "/api/grades/"+idPath(gradeID), req, &g); err != nil {
		return nil, fmt.Errorf("client.UpdateGrade: %w", err)
	}
	return &g, nil
}

// DeleteGrade deletes a grade.
func (c *Client) DeleteGrade(ctx context.Context, gradeID int64) error {
	if err := c.del(ctx, "/api/grades/"+idPath(gradeID)); err != nil {
		return fmt.Errorf("client.DeleteGrade: %w", err)
	}
	return nil
}

// AssignmentGradeStats returns grade statistics for an assignment.
func (c *Client) AssignmentGradeStats(ctx context.Context, assignmentID int64) (*domain.GradeStats, error) {
	var s domain.GradeStats
	if err := c.get(ctx, "/api/grades/stats/assignment/"+idPath(assignmentID), &s); err != nil {
		return nil, fmt.Errorf("client.AssignmentGradeStats: %w", err)
	}
	return &s, nil
}

// CourseAverage returns the average score of a course.
func (c *Client) CourseAverage(ctx context.Context, courseID int64) (float64, error) {
	var s domain.AverageScore
	if err := c.get(ctx, "/api/grades/stats/course/"+idPath(courseID), &s); err != nil {
		return 0, fmt.Errorf("client.CourseAverage: %w", err)
	}
	return s.AverageScore, nil
}

// MyAverage returns the authenticated student's average score.
func (c *Client) MyAverage(ctx context.Context) (float64, error) {
	var s domain.AverageScore
	if err := c.get(ctx, "/api/grades/stats/my-average", &s); err != nil {
		return 0, fmt.Errorf("client.MyAverage: %w", err)
	}
	return s.AverageScore, nil
}
