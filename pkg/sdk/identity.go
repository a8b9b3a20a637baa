package sdk

import "context"

// ResolveIdentity turns a bearer token into a fully resolved user profile.
// It is a strict two-step pipeline: token to numeric id, then id to profile.
// Either step failing propagates the triggering APIError unchanged; there is
// no partial success.
func (c *Client) ResolveIdentity(ctx context.Context, token string) (*UserProfile, error) {
	id, err := c.LookupUserID(ctx, token)
	if err != nil {
		return nil, err
	}
	return c.GetProfile(ctx, id)
}
