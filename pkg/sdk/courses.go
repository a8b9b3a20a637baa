package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// BuyCourse purchases a course for a user and returns the backend's receipt
// string.
func (c *Client) BuyCourse(ctx context.Context, userID, courseID int64) (string, error) {
	var receipt string
	path := fmt.Sprintf("/courses/%d/%d/buy", userID, courseID)
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &receipt); err != nil {
		return "", err
	}
	return receipt, nil
}

// CheckCourseAccess probes whether a user can open a course. A 2xx response
// means access; any error is returned as is. CourseQueries.HasAccess layers
// the deliberate errors-mean-denied policy on top of this raw call.
func (c *Client) CheckCourseAccess(ctx context.Context, userID, courseID int64) error {
	path := fmt.Sprintf("/courses/%d/%d", userID, courseID)
	return c.do(ctx, http.MethodGet, path, nil, nil, nil)
}

// AddCourse publishes a course under a teacher's account.
func (c *Client) AddCourse(ctx context.Context, userID, courseID int64, course Course) error {
	path := fmt.Sprintf("/courses/%d/%d/add", userID, courseID)
	return c.do(ctx, http.MethodPost, path, nil, course, nil)
}

// RemoveCourse unpublishes a course.
func (c *Client) RemoveCourse(ctx context.Context, userID, courseID int64) error {
	path := fmt.Sprintf("/courses/%d/%d/remove", userID, courseID)
	return c.do(ctx, http.MethodPost, path, nil, nil, nil)
}

// RateCourse submits a rating for a course. The rate travels as a query
// parameter.
func (c *Client) RateCourse(ctx context.Context, courseID int64, rate int) error {
	path := fmt.Sprintf("/rating/%d/rating", courseID)
	query := url.Values{"rate": {strconv.Itoa(rate)}}
	return c.do(ctx, http.MethodPost, path, query, nil, nil)
}

// CourseLessons lists the lessons of a course.
func (c *Client) CourseLessons(ctx context.Context, courseID int64) ([]Lesson, error) {
	var lessons []Lesson
	path := fmt.Sprintf("/courses/%d/lessons", courseID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

// CreateLesson adds a lesson to a course.
func (c *Client) CreateLesson(ctx context.Context, courseID, lessonID int64, in CreateLessonInput) error {
	path := fmt.Sprintf("/lessons/%d/%d/create", courseID, lessonID)
	return c.do(ctx, http.MethodPost, path, nil, in, nil)
}

// RemoveLesson deletes a lesson from a course.
func (c *Client) RemoveLesson(ctx context.Context, courseID, lessonID int64) error {
	path := fmt.Sprintf("/lessons/%d/%d/remove", courseID, lessonID)
	return c.do(ctx, http.MethodPost, path, nil, nil, nil)
}

// videoUploadRequest is the payload both ends of the video upload handshake
// expect: the file's title and MIME type.
type videoUploadRequest struct {
	Title string `json:"title"`
	Type  string `json:"type"`
}

// GenerateVideoUploadURL starts a lesson video upload: the backend returns
// the URL the file itself must be pushed to. The actual transfer happens
// outside this client, against storage the backend delegates to.
func (c *Client) GenerateVideoUploadURL(ctx context.Context, courseID, lessonID int64, title, contentType string) (string, error) {
	var uploadURL string
	path := fmt.Sprintf("/courses/%d/%d/generateUrl", courseID, lessonID)
	req := videoUploadRequest{Title: title, Type: contentType}
	if err := c.do(ctx, http.MethodPost, path, nil, req, &uploadURL); err != nil {
		return "", err
	}
	return uploadURL, nil
}

// FinishVideoUpload completes the handshake after the file transfer,
// attaching the uploaded video to the lesson. Returns the stored file name.
func (c *Client) FinishVideoUpload(ctx context.Context, courseID, lessonID int64, title, contentType string) (string, error) {
	var fileName string
	path := fmt.Sprintf("/courses/%d/%d/finish", courseID, lessonID)
	req := videoUploadRequest{Title: title, Type: contentType}
	if err := c.do(ctx, http.MethodPost, path, nil, req, &fileName); err != nil {
		return "", err
	}
	return fileName, nil
}

// LessonVideoURL resolves the playback URL for a lesson's video.
func (c *Client) LessonVideoURL(ctx context.Context, courseID, lessonID int64) (string, error) {
	var videoURL string
	path := fmt.Sprintf("/courses/%d/%d/video", courseID, lessonID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &videoURL); err != nil {
		return "", err
	}
	return videoURL, nil
}
