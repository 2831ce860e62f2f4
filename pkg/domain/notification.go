package domain

// NotificationType is the server-side classification of a notification.
type NotificationType string

const (
	NotifAssignmentPublished NotificationType = "ASSIGNMENT_PUBLISHED"
	NotifAssignmentUpdated   NotificationType = "ASSIGNMENT_UPDATED"
	NotifAssignmentDeadline  NotificationType = "ASSIGNMENT_DEADLINE_REMINDER"
	NotifGradeReleased       NotificationType = "GRADE_RELEASED"
	NotifGradeUpdated        NotificationType = "GRADE_UPDATED"
	NotifSubmissionReceived  NotificationType = "SUBMISSION_RECEIVED"
	NotifCoursePublished     NotificationType = "COURSE_PUBLISHED"
	NotifEnrollmentApproved  NotificationType = "COURSE_ENROLLMENT_APPROVED"
	NotifCourseMaterialAdded NotificationType = "COURSE_MATERIAL_ADDED"
	NotifTeacherApproved     NotificationType = "TEACHER_APPROVED"
	NotifTeacherRegistration NotificationType = "TEACHER_REGISTRATION_PENDING"
	NotifNewMessage          NotificationType = "NEW_MESSAGE"
	NotifAnnouncement        NotificationType = "ANNOUNCEMENT"
	NotifSystem              NotificationType = "SYSTEM"
)

// Category groups notification types for display.
func (t NotificationType) Category() string {
	switch t {
	case NotifAssignmentPublished, NotifAssignmentUpdated, NotifAssignmentDeadline:
		return "assignment"
	case NotifGradeReleased, NotifGradeUpdated:
		return "grade"
	case NotifSubmissionReceived:
		return "submission"
	case NotifCoursePublished, NotifEnrollmentApproved, NotifCourseMaterialAdded:
		return "course"
	case NotifTeacherApproved, NotifTeacherRegistration:
		return "teacher"
	case NotifNewMessage:
		return "message"
	default:
		return "system"
	}
}

// Notification is a server-issued notification record. The client only
// ever flips Read from false to true or removes the record.
type Notification struct {
	ID                int64            `json:"id"`
	Recipient         *User            `json:"recipient,omitempty"`
	Type              NotificationType `json:"notificationType"`
	Title             string           `json:"title"`
	Message           string           `json:"message"`
	RelatedEntityType string           `json:"relatedEntityType,omitempty"`
	RelatedEntityID   *int64           `json:"relatedEntityId,omitempty"`
	Read              bool             `json:"isRead"`
	CreatedAt         Timestamp        `json:"createdAt"`
}

// UnreadCount is the payload of the unread-count endpoints.
type UnreadCount struct {
	Count int `json:"count"`
}

// CountUnread returns how many notifications in ns are unread.
func CountUnread(ns []Notification) int {
	n := 0
	for _, x := range ns {
		if !x.Read {
			n++
		}
	}
	return n
}
