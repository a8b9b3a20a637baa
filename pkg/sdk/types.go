package sdk

import (
	"math/rand"
	"time"
)

// UserRole is the client-side role vocabulary.
type UserRole string

const (
	RoleUser    UserRole = "USER"
	RoleTeacher UserRole = "TEACHER"
	RoleAdmin   UserRole = "ADMIN"
)

// serverRole translates the client-side role vocabulary into the backend's
// enum labels. The backend calls teachers "COUCH"; every other role passes
// through unchanged, and an empty role defaults to a regular user. This is
// the only place the two vocabularies diverge.
func serverRole(r UserRole) string {
	switch r {
	case RoleTeacher:
		return "COUCH"
	case "":
		return string(RoleUser)
	default:
		return string(r)
	}
}

// Contacts carries the optional social links on a user profile. Field names
// follow the backend's JSON contract.
type Contacts struct {
	Instagram string `json:"instUrl,omitempty"`
	Facebook  string `json:"facebookUrl,omitempty"`
	LinkedIn  string `json:"linkedInUrl,omitempty"`
	Telegram  string `json:"telegramUrl,omitempty"`
}

// UserProfile is the resolved account behind a session token.
type UserProfile struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Role               UserRole  `json:"type,omitempty"`
	Description        string    `json:"description,omitempty"`
	PhotoPath          string    `json:"pathToPhoto,omitempty"`
	Contacts           *Contacts `json:"contacts,omitempty"`
	PurchasedCourseIDs []int64   `json:"boughtCoursesId,omitempty"`
}

// CourseTag labels a course category.
type CourseTag string

const (
	TagYoga    CourseTag = "YOGA"
	TagGym     CourseTag = "GYM"
	TagFitness CourseTag = "FITNESS"
)

// Course describes a marketplace course. This layer only ever reads courses;
// authoring happens through dedicated teacher endpoints.
type Course struct {
	ID               int64       `json:"courseId"`
	OwnerID          int64       `json:"userId"`
	Title            string      `json:"title"`
	CreatorName      string      `json:"creatorName"`
	Description      string      `json:"description"`
	Tags             []CourseTag `json:"tagsList,omitempty"`
	Lessons          []Lesson    `json:"lessons,omitempty"`
	PreviewVideoPath string      `json:"pathToPreviewVideo,omitempty"`
	PreviewPhotoPath string      `json:"pathToPreviewPhoto,omitempty"`
	Rating           float64     `json:"rating,omitempty"`
	RatingCount      int         `json:"rates,omitempty"`
}

// Lesson is a single unit inside a course.
type Lesson struct {
	ID            int64  `json:"id"`
	CourseID      int64  `json:"courseId"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	TeacherID     string `json:"teacherId,omitempty"`
	VideoFileName string `json:"videoFileName,omitempty"`
}

// CreateLessonInput is the payload for creating a lesson on a course.
type CreateLessonInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	TeacherID   string `json:"teacherId,omitempty"`
}

// RegisterInput is the payload for account registration. A zero ID is
// replaced with a generated one before submission.
type RegisterInput struct {
	ID       int64
	Email    string
	Name     string
	Password string
	Role     UserRole
}

// newUserID generates a registration id the same way the web frontend does:
// millisecond timestamp folded into the backend's signed 64-bit range plus a
// small random suffix.
func newUserID() int64 {
	return time.Now().UnixMilli()%9_000_000_000_000_000 + rand.Int63n(10_000)
}
