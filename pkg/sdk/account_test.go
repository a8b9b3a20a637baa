package sdk_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guzzzlikz/web-kachki-client/pkg/sdk"
)

func TestUpdateFieldsTravelAsQueryParams(t *testing.T) {
	tests := []struct {
		name      string
		call      func(c *sdk.Client) (string, error)
		wantPath  string
		wantParam string
	}{
		{
			name: "name",
			call: func(c *sdk.Client) (string, error) {
				return c.UpdateName(context.Background(), 7, "Ann Lifts")
			},
			wantPath:  "/account/7/name",
			wantParam: "newName",
		},
		{
			name: "description",
			call: func(c *sdk.Client) (string, error) {
				return c.UpdateDescription(context.Background(), 7, "Ann Lifts")
			},
			wantPath:  "/account/7/description",
			wantParam: "newDescription",
		},
		{
			name: "instagram",
			call: func(c *sdk.Client) (string, error) {
				return c.UpdateContact(context.Background(), 7, sdk.ContactInstagram, "Ann Lifts")
			},
			wantPath:  "/account/7/inst",
			wantParam: "instUrl",
		},
		{
			name: "linkedin",
			call: func(c *sdk.Client) (string, error) {
				return c.UpdateContact(context.Background(), 7, sdk.ContactLinkedIn, "Ann Lifts")
			},
			wantPath:  "/account/7/linked",
			wantParam: "linkedInUrl",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotValue string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotValue = r.URL.Query().Get(tt.wantParam)
				w.Write([]byte(gotValue))
			}))
			defer srv.Close()

			client := sdk.NewClient(srv.URL, sdk.NewMemoryStore())
			stored, err := tt.call(client)
			require.NoError(t, err)

			assert.Equal(t, tt.wantPath, gotPath)
			assert.Equal(t, "Ann Lifts", gotValue)
			assert.Equal(t, "Ann Lifts", stored)
		})
	}
}

func TestUpdateContactRejectsUnknownField(t *testing.T) {
	client := sdk.NewClient("http://localhost:0", sdk.NewMemoryStore())
	_, err := client.UpdateContact(context.Background(), 7, sdk.ContactField("myspace"), "x")
	assert.Error(t, err)
}

func TestUploadPhotoSendsMultipartFileField(t *testing.T) {
	var gotFilename, gotContent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/photo/7/upload", r.URL.Path)
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		gotContent = string(data)
		w.Write([]byte(`{"id":7,"name":"Ann","email":"ann@example.com","pathToPhoto":"photos/7.png"}`))
	}))
	defer srv.Close()

	client := sdk.NewClient(srv.URL, sdk.NewMemoryStore())
	profile, err := client.UploadPhoto(context.Background(), 7, "avatar.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "avatar.png", gotFilename)
	assert.Equal(t, "png-bytes", gotContent)
	assert.Equal(t, "photos/7.png", profile.PhotoPath)
}

func TestPhotoURLToleratesPlainTextBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/photo/7/photo", r.URL.Path)
		w.Write([]byte("https://cdn.example.com/photos/7.png"))
	}))
	defer srv.Close()

	client := sdk.NewClient(srv.URL, sdk.NewMemoryStore())
	photoURL, err := client.PhotoURL(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/photos/7.png", photoURL)
}

func TestGetProfileDecodesFullShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"id": 7,
			"name": "Ann",
			"email": "ann@example.com",
			"type": "TEACHER",
			"description": "Powerlifting coach",
			"contacts": {"instUrl": "https://instagram.com/annlifts"},
			"boughtCoursesId": [3, 9]
		}`))
	}))
	defer srv.Close()

	client := sdk.NewClient(srv.URL, sdk.NewMemoryStore())
	profile, err := client.GetProfile(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, sdk.UserRole("TEACHER"), profile.Role)
	assert.Equal(t, "Powerlifting coach", profile.Description)
	require.NotNil(t, profile.Contacts)
	assert.Equal(t, "https://instagram.com/annlifts", profile.Contacts.Instagram)
	assert.Equal(t, []int64{3, 9}, profile.PurchasedCourseIDs)
}
