package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/campusmaster/campus/pkg/domain"
)

// DepartmentRequest is the create/update payload for a department.
type DepartmentRequest struct {
	Name        string `json:"name,omitempty"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
}

// SemesterRequest is the create/update payload for a semester.
type SemesterRequest struct {
	Name      string `json:"name,omitempty"`
	Year      int    `json:"year,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// SubjectRequest is the create/update payload for a subject.
type SubjectRequest struct {
	Name        string `json:"name,omitempty"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
	Credits     int    `json:"credits,omitempty"`
}

// --- Departments ---

// ListDepartments returns all departments.
func (c *Client) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	var out []domain.Department
	if err := c.get(ctx, "/api/departments", &out); err != nil {
		return nil, fmt.Errorf("client.ListDepartments: %w", err)
	}
	return out, nil
}

// GetDepartment fetches a department by ID.
func (c *Client) GetDepartment(ctx context.Context, id int64) (*domain.Department, error) {
	var d domain.Department
	if err := c.get(ctx, "/api/departments/"+idPath(id), &d); err != nil {
		return nil, fmt.Errorf("client.GetDepartment: %w", err)
	}
	return &d, nil
}

// CreateDepartment creates a department.
func (c *Client) CreateDepartment(ctx context.Context, req DepartmentRequest) (*domain.Department, error) {
	var d domain.Department
	if err := c.post(ctx, "/api/departments", req, &d); err != nil {
		return nil, fmt.Errorf("client.CreateDepartment: %w", err)
	}
	return &d, nil
}

// UpdateDepartment updates a department.
func (c *Client) UpdateDepartment(ctx context.Context, id int64, req DepartmentRequest) (*domain.Department, error) {
	var d domain.Department
	if err := c.put(ctx, "/api/departments/"+idPath(id), req, &d); err != nil {
		return nil, fmt.Errorf("client.UpdateDepartment: %w", err)
	}
	return &d, nil
}

// DeleteDepartment deletes a department.
func (c *Client) DeleteDepartment(ctx context.Context, id int64) error {
	if err := c.del(ctx, "/api/departments/"+idPath(id)); err != nil {
		return fmt.Errorf("client.DeleteDepartment: %w", err)
	}
	return nil
}

// --- Semesters ---

// ListSemesters returns all semesters.
func (c *Client) ListSemesters(ctx context.Context) ([]domain.Semester, error) {
	var out []domain.Semester
	if err := c.get(ctx, "/api/semesters", &out); err != nil {
		return nil, fmt.Errorf("client.ListSemesters: %w", err)
	}
	return out, nil
}

// GetSemester fetches a semester by ID.
func (c *Client) GetSemester(ctx context.Context, id int64) (*domain.Semester, error) {
	var s domain.Semester
	if err := c.get(ctx, "/api/semesters/"+idPath(id), &s); err != nil {
		return nil, fmt.Errorf("client.GetSemester: %w", err)
	}
	return &s, nil
}

// ActiveSemester returns the currently active semester.
func (c *Client) ActiveSemester(ctx context.Context) (*domain.Semester, error) {
	var s domain.Semester
	if err := c.get(ctx, "/api/semesters/active", &s); err != nil {
		return nil, fmt.Errorf("client.ActiveSemester: %w", err)
	}
	return &s, nil
}

// CreateSemester creates a semester.
func (c *Client) CreateSemester(ctx context.Context, req SemesterRequest) (*domain.Semester, error) {
	var s domain.Semester
	if err := c.post(ctx, "/api/semesters", req, &s); err != nil {
		return nil, fmt.Errorf("client.CreateSemester: %w", err)
	}
	return &s, nil
}

// UpdateSemester updates a semester.
func (c *Client) UpdateSemester(ctx context.Context, id int64, req SemesterRequest) (*domain.Semester, error) {
	var s domain.Semester
	if err := c.put(ctx, "/api/semesters/"+idPath(id), req, &s); err != nil {
		return nil, fmt.Errorf("client.UpdateSemester: %w", err)
	}
	return &s, nil
}

// ActivateSemester makes a semester the active one.
func (c *Client) ActivateSemester(ctx context.Context, id int64) (*domain.Semester, error) {
	var s domain.Semester
	if err := c.put(ctx, "/api/semesters/"+idPath(id)+"/activate", nil, &s); err != nil {
		return nil, fmt.Errorf("client.ActivateSemester: %w", err)
	}
	return &s, nil
}

// DeleteSemester deletes a semester.
func (c *Client) DeleteSemester(ctx context.Context, id int64) error {
	if err := c.del(ctx, "/api/semesters/"+idPath(id)); err != nil {
		return fmt.Errorf("client.DeleteSemester: %w", err)
	}
	return nil
}

// --- Subjects ---

// ListSubjects returns all subjects.
func (c *Client) ListSubjects(ctx context.Context) ([]domain.Subject, error) {
	var out []domain.Subject
	if err := c.get(ctx, "/api/subjects", &out); err != nil {
		return nil, fmt.Errorf("client.ListSubjects: %w", err)
	}
	return out, nil
}

// GetSubject fetches a subject by ID.
func (c *Client) GetSubject(ctx context.Context, id int64) (*domain.Subject, error) {
	var s domain.Subject
	if err := c.get(ctx, "/api/subjects/"+idPath(id), &s); err != nil {
		return nil, fmt.Errorf("client.GetSubject: %w", err)
	}
	return &s, nil
}

// SubjectsByDepartment lists the subjects of a department.
func (c *Client) SubjectsByDepartment(ctx context.Context, departmentID int64) ([]domain.Subject, error) {
	var out []domain.Subject
	if err := c.get(ctx, "/api/subjects/department/"+idPath(departmentID), &out); err != nil {
		return nil, fmt.Errorf("client.SubjectsByDepartment: %w", err)
	}
	return out, nil
}

// SubjectsBySemester lists the subjects of a semester.
func (c *Client) SubjectsBySemester(ctx context.Context, semesterID int64) ([]domain.Subject, error) {
	var out []domain.Subject
	if err := c.get(ctx, "/api/subjects/semester/"+idPath(semesterID), &out); err != nil {
		return nil, fmt.Errorf("client.SubjectsBySemester: %w", err)
	}
	return out, nil
}

// CreateSubject creates a subject inside a department and semester.
func (c *Client) CreateSubject(ctx context.Context, req SubjectRequest, departmentID, semesterID int64) (*domain.Subject, error) {
	params := url.Values{}
	params.Set("departmentId", strconv.FormatInt(departmentID, 10))
	params.Set("semesterId", strconv.FormatInt(semesterID, 10))

	var s domain.Subject
	if err := c.post(ctx, "/api/subjects?"+params.Encode(), req, &s); err != nil {
		return nil, fmt.Errorf("client.CreateSubject: %w", err)
	}
	return &s, nil
}

// UpdateSubject updates a subject.
func (c *Client) UpdateSubject(ctx context.Context, id int64, req SubjectRequest) (*domain.Subject, error) {
	var s domain.Subject
	if err := c.put(ctx, "/api/subjects/"+idPath(id), req, &s); err != nil {
		return nil, fmt.Errorf("client.UpdateSubject: %w", err)
	}
	return &s, nil
}

// AssignTeacher assigns a teacher to a subject.
func (c *Client) AssignTeacher(ctx context.Context, subjectID int64, teacherEmail string) (*domain.Subject, error) {
	params := url.Values{}
	params.Set("teacherEmail", teacherEmail)

	var s domain.Subject
	if err := c.put(ctx, "/api/subjects/"+idPath(subjectID)+"/assign-teacher?"+params.Encode(), nil, &s); err != nil {
		return nil, fmt.Errorf("client.AssignTeacher: %w", err)
	}
	return &s, nil
}

// DeleteSubject deletes a subject.
func (c *Client) DeleteSubject(ctx context.Context, id int64) error {
	if err := c.del(ctx, "/api/subjects/"+idPath(id)); err != nil {
		return fmt.Errorf("client.DeleteSubject: %w", err)
	}
	return nil
}
