package sdk_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guzzzlikz/web-kachki-client/pkg/sdk"
)

func newSignedInQueries(t *testing.T, mux *authMux) (*sdk.CourseQueries, *sdk.Manager) {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	store := sdk.NewMemoryStore()
	client := sdk.NewClient(srv.URL, store)
	sessions := sdk.NewManager(client, store)
	queries := sdk.NewCourseQueries(client, sessions)

	_, err := sessions.Login(context.Background(), "ann@example.com", "secret")
	require.NoError(t, err)
	return queries, sessions
}

func TestPurchasedAnonymousIsEmptyWithoutNetwork(t *testing.T) {
	mux := newAuthMux(t)
	mux.HandleFunc("GET /account/7/courses", func(w http.ResponseWriter, r *http.Request) {
		t.Error("anonymous sessions must not fetch")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	store := sdk.NewMemoryStore()
	client := sdk.NewClient(srv.URL, store)
	sessions := sdk.NewManager(client, store)
	queries := sdk.NewCourseQueries(client, sessions)

	courses, err := queries.Purchased(context.Background())
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestPurchasedCachesWithinStalenessWindow(t *testing.T) {
	var fetches int32
	mux := newAuthMux(t)
	mux.HandleFunc("GET /account/7/courses", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fetches, 1)
		w.Write([]byte(`[{"courseId":3,"title":"Deadlifts 101","creatorName":"Bo","rating":4.5}]`))
	})
	queries, _ := newSignedInQueries(t, mux)

	for i := 0; i < 3; i++ {
		courses, err := queries.Purchased(context.Background())
		require.NoError(t, err)
		require.Len(t, courses, 1)
		assert.Equal(t, int64(3), courses[0].ID)
		assert.Equal(t, "Deadlifts 101", courses[0].Title)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&fetches))
}

func TestInvalidatePurchasedForcesRefetch(t *testing.T) {
	var fetches int32
	mux := newAuthMux(t)
	mux.HandleFunc("GET /account/7/courses", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fetches, 1)
		w.Write([]byte(`[]`))
	})
	queries, _ := newSignedInQueries(t, mux)

	_, err := queries.Purchased(context.Background())
	require.NoError(t, err)
	queries.InvalidatePurchased()
	_, err = queries.Purchased(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&fetches))
}

func TestLogoutPurgesPurchasedCache(t *testing.T) {
	var fetches int32
	mux := newAuthMux(t)
	mux.HandleFunc("GET /account/7/courses", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fetches, 1)
		w.Write([]byte(`[]`))
	})
	queries, sessions := newSignedInQueries(t, mux)

	_, err := queries.Purchased(context.Background())
	require.NoError(t, err)
	require.NoError(t, sessions.Logout(context.Background()))

	// Anonymous now, so no fetch either; the cached entry is gone.
	courses, err := queries.Purchased(context.Background())
	require.NoError(t, err)
	assert.Empty(t, courses)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fetches))

	_, err = sessions.Login(context.Background(), "ann@example.com", "secret")
	require.NoError(t, err)
	_, err = queries.Purchased(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&fetches), "a fresh session refetches")
}

func TestLogoutDuringInFlightFetchDoesNotResurrectCache(t *testing.T) {
	var fetches int32
	entered := make(chan struct{})
	release := make(chan struct{})
	mux := newAuthMux(t)
	mux.HandleFunc("GET /account/7/courses", func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&fetches, 1) == 1 {
			close(entered)
			<-release
		}
		w.Write([]byte(`[]`))
	})
	queries, sessions := newSignedInQueries(t, mux)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = queries.Purchased(context.Background())
	}()
	<-entered

	// Teardown purges while the fetch is still in flight.
	require.NoError(t, sessions.Logout(context.Background()))
	close(release)
	<-done

	_, err := sessions.Login(context.Background(), "ann@example.com", "secret")
	require.NoError(t, err)
	_, err = queries.Purchased(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&fetches), "the pre-logout result must not be served to the new session")
}

func TestHasAccessCollapsesFailuresToFalse(t *testing.T) {
	for _, status := range []int{http.StatusForbidden, http.StatusNotFound, http.StatusInternalServerError} {
		t.Run(fmt.Sprintf("status %d", status), func(t *testing.T) {
			mux := newAuthMux(t)
			mux.HandleFunc("GET /courses/7/3", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			})
			queries, _ := newSignedInQueries(t, mux)

			assert.False(t, queries.HasAccess(context.Background(), 3))
		})
	}
}

func TestHasAccessGrantedAndCached(t *testing.T) {
	var probes int32
	mux := newAuthMux(t)
	mux.HandleFunc("GET /courses/7/3", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&probes, 1)
	})
	queries, _ := newSignedInQueries(t, mux)

	assert.True(t, queries.HasAccess(context.Background(), 3))
	assert.True(t, queries.HasAccess(context.Background(), 3))
	assert.Equal(t, int32(1), atomic.LoadInt32(&probes))
}

func TestHasAccessAnonymousIsFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("anonymous sessions must not probe")
	}))
	t.Cleanup(srv.Close)

	store := sdk.NewMemoryStore()
	client := sdk.NewClient(srv.URL, store)
	sessions := sdk.NewManager(client, store)
	queries := sdk.NewCourseQueries(client, sessions)

	assert.False(t, queries.HasAccess(context.Background(), 3))
}

func TestCatalogIsEmptyUntilBackendShipsListing(t *testing.T) {
	queries, _ := newSignedInQueries(t, newAuthMux(t))

	courses, err := queries.Catalog(context.Background(), sdk.CatalogFilter{Search: "deadlift"})
	require.NoError(t, err)
	assert.Empty(t, courses)
}
