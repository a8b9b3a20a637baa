package sdk_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guzzzlikz/web-kachki-client/pkg/sdk"
)

func TestBuyCourseReturnsReceipt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/courses/7/3/buy", r.URL.Path)
		w.Write([]byte("Course bought"))
	}))
	defer srv.Close()

	client := sdk.NewClient(srv.URL, sdk.NewMemoryStore())
	receipt, err := client.BuyCourse(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Equal(t, "Course bought", receipt)
}

func TestRateCourseSendsRateAsQueryParam(t *testing.T) {
	var gotRate string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rating/3/rating", r.URL.Path)
		gotRate = r.URL.Query().Get("rate")
	}))
	defer srv.Close()

	client := sdk.NewClient(srv.URL, sdk.NewMemoryStore())
	require.NoError(t, client.RateCourse(context.Background(), 3, 5))
	assert.Equal(t, "5", gotRate)
}

func TestCheckCourseAccessReturnsRawError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("Course not bought"))
	}))
	defer srv.Close()

	client := sdk.NewClient(srv.URL, sdk.NewMemoryStore())
	err := client.CheckCourseAccess(context.Background(), 7, 3)

	var apiErr *sdk.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Course not bought", apiErr.Message)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}

func TestCourseLessons(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/courses/3/lessons", r.URL.Path)
		w.Write([]byte(`[{"id":1,"courseId":3,"title":"Warmup","videoFileName":"warmup.mp4"}]`))
	}))
	defer srv.Close()

	client := sdk.NewClient(srv.URL, sdk.NewMemoryStore())
	lessons, err := client.CourseLessons(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, lessons, 1)
	assert.Equal(t, "Warmup", lessons[0].Title)
	assert.Equal(t, "warmup.mp4", lessons[0].VideoFileName)
}

func TestAddCoursePostsCoursePayload(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/courses/7/3/add", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		gotBody = string(body)
	}))
	defer srv.Close()

	client := sdk.NewClient(srv.URL, sdk.NewMemoryStore())
	err := client.AddCourse(context.Background(), 7, 3, sdk.Course{
		ID:      3,
		OwnerID: 7,
		Title:   "Deadlifts 101",
		Tags:    []sdk.CourseTag{sdk.TagGym},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"courseId":3,"userId":7,"title":"Deadlifts 101","creatorName":"","description":"","tagsList":["GYM"]}`, gotBody)
}

func TestRemoveCourse(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		gotPath = r.URL.Path
	}))
	defer srv.Close()

	client := sdk.NewClient(srv.URL, sdk.NewMemoryStore())
	require.NoError(t, client.RemoveCourse(context.Background(), 7, 3))
	assert.Equal(t, "/courses/7/3/remove", gotPath)
}

func TestRemoveLesson(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		gotPath = r.URL.Path
	}))
	defer srv.Close()

	client := sdk.NewClient(srv.URL, sdk.NewMemoryStore())
	require.NoError(t, client.RemoveLesson(context.Background(), 3, 1))
	assert.Equal(t, "/lessons/3/1/remove", gotPath)
}

func TestGenerateVideoUploadURL(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/courses/3/1/generateUrl", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		gotBody = string(body)
		w.Write([]byte("https://storage.example.com/upload/abc"))
	}))
	defer srv.Close()

	client := sdk.NewClient(srv.URL, sdk.NewMemoryStore())
	uploadURL, err := client.GenerateVideoUploadURL(context.Background(), 3, 1, "warmup.mp4", "video/mp4")
	require.NoError(t, err)
	assert.Equal(t, "https://storage.example.com/upload/abc", uploadURL)
	assert.JSONEq(t, `{"title":"warmup.mp4","type":"video/mp4"}`, gotBody)
}

func TestFinishVideoUpload(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/courses/3/1/finish", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		gotBody = string(body)
		w.Write([]byte("warmup.mp4"))
	}))
	defer srv.Close()

	client := sdk.NewClient(srv.URL, sdk.NewMemoryStore())
	fileName, err := client.FinishVideoUpload(context.Background(), 3, 1, "warmup.mp4", "video/mp4")
	require.NoError(t, err)
	assert.Equal(t, "warmup.mp4", fileName)
	assert.JSONEq(t, `{"title":"warmup.mp4","type":"video/mp4"}`, gotBody)
}

func TestLessonVideoURLToleratesPlainTextBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/courses/3/1/video", r.URL.Path)
		w.Write([]byte("https://cdn.example.com/videos/warmup.mp4"))
	}))
	defer srv.Close()

	client := sdk.NewClient(srv.URL, sdk.NewMemoryStore())
	videoURL, err := client.LessonVideoURL(context.Background(), 3, 1)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/videos/warmup.mp4", videoURL)
}

func TestCreateLessonPostsPayload(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/lessons/3/1/create", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		gotBody = string(body)
	}))
	defer srv.Close()

	client := sdk.NewClient(srv.URL, sdk.NewMemoryStore())
	err := client.CreateLesson(context.Background(), 3, 1, sdk.CreateLessonInput{Title: "Warmup"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Warmup"}`, gotBody)
}
