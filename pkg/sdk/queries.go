package sdk

import (
	"context"
	"time"

	"github.com/guzzzlikz/web-kachki-client/pkg/querycache"
)

// Staleness windows match the web frontend's react-query configuration.
const (
	purchasedStaleFor = 2 * time.Minute
	accessStaleFor    = 5 * time.Minute
)

// CatalogFilter describes a course catalog query. See CourseQueries.Catalog
// for why it currently has no effect.
type CatalogFilter struct {
	Search  string
	OwnerID int64
	Tags    []CourseTag
}

// CourseQueries is the cached read layer over course endpoints. It keys
// entries by the authenticated user, gates fetching on a signed-in session,
// and purges everything on session teardown.
type CourseQueries struct {
	client    *Client
	sessions  *Manager
	purchased *querycache.Cache[[]Course]
	access    *querycache.Cache[bool]
}

// NewCourseQueries builds the cached course read layer and registers its
// teardown with the session manager.
func NewCourseQueries(client *Client, sessions *Manager) *CourseQueries {
	q := &CourseQueries{
		client:    client,
		sessions:  sessions,
		purchased: querycache.New[[]Course](),
		access:    querycache.New[bool](),
	}
	sessions.OnPurge(q.purgeAll)
	return q
}

func (q *CourseQueries) purgeAll() {
	q.purchased.Purge()
	q.access.Purge()
}

// Purchased returns the signed-in user's purchased courses, cached for a
// moderate staleness window. Anonymous sessions get an empty list without
// touching the network.
func (q *CourseQueries) Purchased(ctx context.Context) ([]Course, error) {
	userID, ok := q.sessions.UserID()
	if !ok {
		return []Course{}, nil
	}
	key := querycache.Key{Resource: "purchased-courses", Owner: userID}
	return q.purchased.Get(ctx, key, func(ctx context.Context) ([]Course, error) {
		return q.client.PurchasedCourses(ctx, userID)
	}, querycache.Options{Enabled: true, StaleFor: purchasedStaleFor})
}

// InvalidatePurchased drops the purchased-courses entry so the next read
// refetches, e.g. right after a successful purchase.
func (q *CourseQueries) InvalidatePurchased() {
	userID, ok := q.sessions.UserID()
	if !ok {
		return
	}
	q.purchased.Invalidate(querycache.Key{Resource: "purchased-courses", Owner: userID})
}

// HasAccess probes whether the signed-in user can open a course. Every
// fetch error - 403, 404, 500 or a network failure - means "no access"
// rather than an error. That collapse is deliberate and mirrors the web
// frontend: the course page either renders or it does not.
func (q *CourseQueries) HasAccess(ctx context.Context, courseID int64) bool {
	userID, ok := q.sessions.UserID()
	if !ok {
		return false
	}
	key := querycache.Key{Resource: "course-access", ID: courseID, Owner: userID}
	allowed, err := q.access.Get(ctx, key, func(ctx context.Context) (bool, error) {
		if probeErr := q.client.CheckCourseAccess(ctx, userID, courseID); probeErr != nil {
			return false, nil
		}
		return true, nil
	}, querycache.Options{Enabled: true, StaleFor: accessStaleFor})
	if err != nil {
		return false
	}
	return allowed
}

// Catalog would back the general course browsing pages, but the backend
// exposes no listing or filtering endpoint yet. Until that external
// dependency exists this returns an empty result; it must not fabricate
// courses client-side.
func (q *CourseQueries) Catalog(ctx context.Context, _ CatalogFilter) ([]Course, error) {
	return []Course{}, nil
}
