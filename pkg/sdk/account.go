package sdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// GetProfile fetches the full account profile for a user id.
func (c *Client) GetProfile(ctx context.Context, userID int64) (*UserProfile, error) {
	var profile UserProfile
	path := fmt.Sprintf("/account/%d/info", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ContactField names a social link slot on the profile. The values double as
// the path segment of the corresponding update endpoint.
type ContactField string

const (
	ContactInstagram ContactField = "inst"
	ContactFacebook  ContactField = "facebook"
	ContactLinkedIn  ContactField = "linked"
	ContactTelegram  ContactField = "telegram"
)

// contactParams maps each contact field to the query parameter its endpoint
// expects.
var contactParams = map[ContactField]string{
	ContactInstagram: "instUrl",
	ContactFacebook:  "facebookUrl",
	ContactLinkedIn:  "linkedInUrl",
	ContactTelegram:  "telegramUrl",
}

// updateField drives the /account/{id}/{field} endpoints. The new value
// travels as a query parameter, not a body; the backend echoes the stored
// value back as a string.
func (c *Client) updateField(ctx context.Context, userID int64, field, param, value string) (string, error) {
	var stored string
	path := fmt.Sprintf("/account/%d/%s", userID, field)
	query := url.Values{param: {value}}
	if err := c.do(ctx, http.MethodPost, path, query, nil, &stored); err != nil {
		return "", err
	}
	return stored, nil
}

// UpdateName changes the display name and returns the stored value.
func (c *Client) UpdateName(ctx context.Context, userID int64, name string) (string, error) {
	return c.updateField(ctx, userID, "name", "newName", name)
}

// UpdateDescription changes the profile description and returns the stored
// value.
func (c *Client) UpdateDescription(ctx context.Context, userID int64, description string) (string, error) {
	return c.updateField(ctx, userID, "description", "newDescription", description)
}

// UpdateContact changes one social link and returns the stored value.
func (c *Client) UpdateContact(ctx context.Context, userID int64, field ContactField, link string) (string, error) {
	param, ok := contactParams[field]
	if !ok {
		return "", &APIError{Message: fmt.Sprintf("unknown contact field %q", field)}
	}
	return c.updateField(ctx, userID, string(field), param, link)
}

// PurchasedCourses fetches the courses a user owns. Most consumers should
// read this through CourseQueries, which caches per user.
func (c *Client) PurchasedCourses(ctx context.Context, userID int64) ([]Course, error) {
	var courses []Course
	path := fmt.Sprintf("/account/%d/courses", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// UploadPhoto uploads a profile photo as a multipart form and returns the
// updated profile.
func (c *Client) UploadPhoto(ctx context.Context, userID int64, filename string, content io.Reader) (*UserProfile, error) {
	var profile UserProfile
	path := fmt.Sprintf("/photo/%d/upload", userID)
	if err := c.doMultipart(ctx, path, filename, content, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// PhotoURL resolves the serving URL of a user's profile photo.
func (c *Client) PhotoURL(ctx context.Context, userID int64) (string, error) {
	var photoURL string
	path := fmt.Sprintf("/photo/%d/photo", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &photoURL); err != nil {
		return "", err
	}
	return photoURL, nil
}
