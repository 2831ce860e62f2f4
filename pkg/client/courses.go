package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/campusmaster/campus/pkg/domain"
)

// CourseRequest is the create/update payload for a course.
type CourseRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// ListPublishedCourses returns the published course catalogue.
func (c *Client) ListPublishedCourses(ctx context.Context) ([]domain.Course, error) {
	var out []domain.Course
	if err := c.get(ctx, "/api/courses", &out); err != nil {
		return nil, fmt.Errorf("client.ListPublishedCourses: %w", err)
	}
	return out, nil
}

// ListAllCourses returns every course, published or not.
func (c *Client) ListAllCourses(ctx context.Context) ([]domain.Course, error) {
	var out []domain.Course
	if err := c.get(ctx, "/api/courses/all", &out); err != nil {
		return nil, fmt.Errorf("client.ListAllCourses: %w", err)
	}
	return out, nil
}

// GetCourse fetches a course by ID.
func (c *Client) GetCourse(ctx context.Context, id int64) (*domain.Course, error) {
	var course domain.Course
	if err := c.get(ctx, "/api/courses/"+idPath(id), &course); err != nil {
		return nil, fmt.Errorf("client.GetCourse: %w", err)
	}
	return &course, nil
}

// MyCourses returns the courses taught by the authenticated teacher.
func (c *Client) MyCourses(ctx context.Context) ([]domain.Course, error) {
	var out []domain.Course
	if err := c.get(ctx, "/api/courses/my-courses", &out); err != nil {
		return nil, fmt.Errorf("client.MyCourses: %w", err)
	}
	return out, nil
}

// CoursesBySubject lists the courses of a subject.
func (c *Client) CoursesBySubject(ctx context.Context, subjectID int64) ([]domain.Course, error) {
	var out []domain.Course
	if err := c.get(ctx, "/api/courses/subject/"+idPath(subjectID), &out); err != nil {
		return nil, fmt.Errorf("client.CoursesBySubject: %w", err)
	}
	return out, nil
}

// SearchCourses searches courses by keyword.
func (c *Client) SearchCourses(ctx context.Context, keyword string) ([]domain.Course, error) {
	params := url.Values{}
	params.Set("keyword", keyword)

	var out []domain.Course
	if err := c.get(ctx, "/api/courses/search?"+params.Encode(), &out); err != nil {
		return nil, fmt.Errorf("client.SearchCourses: %w", err)
	}
	return out, nil
}

// CreateCourse creates a course for a subject.
func (c *Client) CreateCourse(ctx context.Context, req CourseRequest, subjectID int64) (*domain.Course, error) {
	var course domain.Course
	if err := c.post(ctx, "/api/courses?subjectId="+strconv.FormatInt(subjectID, 10), req, &course); err != nil {
		return nil, fmt.Errorf("client.CreateCourse: %w", err)
	}
	return &course, nil
}

// UpdateCourse updates a course.
func (c *Client) UpdateCourse(ctx context.Context, id int64, req CourseRequest) (*domain.Course, error) {
	var course domain.Course
	if err := c.put(ctx, "/api/courses/"+idPath(id), req, &course); err != nil {
		return nil, fmt.Errorf("client.UpdateCourse: %w", err)
	}
	return &course, nil
}

// PublishCourse makes a course visible to students.
func (c *Client) PublishCourse(ctx context.Context, id int64) (*domain.Course, error) {
	var course domain.Course
	if err := c.put(ctx, "/api/courses/"+idPath(id)+"/publish", nil, &course); err != nil {
		return nil, fmt.Errorf("client.PublishCourse: %w", err)
	}
	return &course, nil
}

// UnpublishCourse hides a course from students.
func (c *Client) UnpublishCourse(ctx context.Context, id int64) (*domain.Course, error) {
	var course domain.Course
	if err := c.put(ctx, "/api/courses/"+idPath(id)+"/unpublish", nil, &course); err != nil {
		return nil, fmt.Errorf("client.UnpublishCourse: %w", err)
	}
	return &course, nil
}

// DeleteCourse deletes a course.
func (c *Client) DeleteCourse(ctx context.Context, id int64) error {
	if err := c.del(ctx, "/api/courses/"+idPath(id)); err != nil {
		return fmt.Errorf("client.DeleteCourse: %w", err)
	}
	return nil
}

// --- Enrollment ---

// Enroll enrolls the authenticated student in a course.
func (c *Client) Enroll(ctx context.Context, courseID int64) (*domain.CourseEnrollment, error) {
	var e domain.CourseEnrollment
	if err := c.post(ctx, "/api/courses/"+idPath(courseID)+"/enroll", nil, &e); err != nil {
		return nil, fmt.Errorf("client.Enroll: %w", err)
	}
	return &e, nil
}

// Unenroll removes the authenticated student from a course.
func (c *Client) Unenroll(ctx context.Context, courseID int64) error {
	if err := c.del(ctx, "/api/courses/"+idPath(courseID)+"/unenroll"); err != nil {
		return fmt.Errorf("client.Unenroll: %w", err)
	}
	return nil
}

// EnrolledStudents lists the enrollments of a course.
func (c *Client) EnrolledStudents(ctx context.Context, courseID int64) ([]domain.CourseEnrollment, error) {
	var out []domain.CourseEnrollment
	if err := c.get(ctx, "/api/courses/"+idPath(courseID)+"/students", &out); err != nil {
		return nil, fmt.Errorf("client.EnrolledStudents: %w", err)
	}
	return out, nil
}

// MyEnrollments lists the authenticated student's enrollments.
func (c *Client) MyEnrollments(ctx context.Context) ([]domain.CourseEnrollment, error) {
	var out []domain.CourseEnrollment
	if err := c.get(ctx, "/api/courses/enrolled", &out); err != nil {
		return nil, fmt.Errorf("client.MyEnrollments: %w", err)
	}
	return out, nil
}

// IsEnrolled reports whether the authenticated student is enrolled in a course.
func (c *Client) IsEnrolled(ctx context.Context, courseID int64) (bool, error) {
	var ok bool
	if err := c.get(ctx, "/api/courses/"+idPath(courseID)+"/is-enrolled", &ok); err != nil {
		return false, fmt.Errorf("client.IsEnrolled: %w", err)
	}
	return ok, nil
}

// --- Materials ---

// ListMaterials lists the materials of a course.
func (c *Client) ListMaterials(ctx context.Context, courseID int64) ([]domain.CourseMaterial, error) {
	var out []domain.CourseMaterial
	if err := c.get(ctx, "/api/courses/"+idPath(courseID)+"/materials", &out); err != nil {
		return nil, fmt.Errorf("client.ListMaterials: %w", err)
	}
	return out, nil
}

// UploadMaterial uploads a file as course material.
func (c *Client) UploadMaterial(ctx context.Context, courseID int64, title, description, fileName string, content io.Reader) (*domain.CourseMaterial, error) {
	fields := map[string]string{"title": title, "description": description}
	file := FilePart{Field: "file", FileName: fileName, Content: content}

	var m domain.CourseMaterial
	if err := c.doMultipart(ctx, http.MethodPost, "/api/courses/"+idPath(courseID)+"/materials", fields, file, &m); err != nil {
		return nil, fmt.Errorf("client.UploadMaterial: %w", err)
	}
	return &m, nil
}

// DeleteMaterial deletes a course material.
func (c *Client) DeleteMaterial(ctx context.Context, courseID, materialID int64) error {
	if err := c.del(ctx, "/api/courses/"+idPath(courseID)+"/materials/"+idPath(materialID)); err != nil {
		return fmt.Errorf("client.DeleteMaterial: %w", err)
	}
	return nil
}

// MaterialDownloadURL returns the direct download URL of a material.
// Fetching it still requires the bearer token.
func (c *Client) MaterialDownloadURL(courseID, materialID int64) string {
	return c.baseURL + "/api/courses/" + idPath(courseID) + "/materials/" + idPath(materialID) + "/download"
}

// DownloadMaterial streams a material's bytes into w.
func (c *Client) DownloadMaterial(ctx context.Context, courseID, materialID int64, w io.Writer) (int64, error) {
	n, err := c.download(ctx, "/api/courses/"+idPath(courseID)+"/materials/"+idPath(materialID)+"/download", w)
	if err != nil {
		return n, fmt.Errorf("client.DownloadMaterial: %w", err)
	}
	return n, nil
}
