package client

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/guzzzlikz/web-kachki-client/cmd/kachkictl/internal/auth"
	"github.com/guzzzlikz/web-kachki-client/pkg/sdk"
)

// ErrNotAuthenticated is returned by RequireUser when no usable session
// exists.
var ErrNotAuthenticated = errors.New("not logged in; run `kachkictl auth login`")

// Provider lazily builds the credential store, gateway, session manager and
// cached query layer, each exactly once, so every command shares one wired
// stack.
type Provider struct {
	serverURL string
	log       *zap.Logger

	storeOnce sync.Once
	store     sdk.CredentialStore
	storeErr  error

	sdkOnce   sync.Once
	sdkClient *sdk.Client

	sessionsOnce sync.Once
	sessions     *sdk.Manager

	queriesOnce sync.Once
	queries     *sdk.CourseQueries
}

// NewProvider constructs a Provider bound to the given API server URL.
func NewProvider(serverURL string, log *zap.Logger) *Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &Provider{serverURL: serverURL, log: log}
}

// Store returns the durable credential store.
func (p *Provider) Store() (sdk.CredentialStore, error) {
	p.storeOnce.Do(func() {
		store, err := auth.NewFileStore()
		if err != nil {
			p.storeErr = err
			return
		}
		p.store = store
	})
	return p.store, p.storeErr
}

// SDK returns the API gateway.
func (p *Provider) SDK() (*sdk.Client, error) {
	store, err := p.Store()
	if err != nil {
		return nil, err
	}
	p.sdkOnce.Do(func() {
		p.sdkClient = sdk.NewClient(p.serverURL, store, sdk.WithLogger(p.log))
	})
	return p.sdkClient, nil
}

// Sessions returns the session manager.
func (p *Provider) Sessions() (*sdk.Manager, error) {
	client, err := p.SDK()
	if err != nil {
		return nil, err
	}
	store, err := p.Store()
	if err != nil {
		return nil, err
	}
	p.sessionsOnce.Do(func() {
		p.sessions = sdk.NewManager(client, store, sdk.WithManagerLogger(p.log))
	})
	return p.sessions, nil
}

// Queries returns the cached course read layer.
func (p *Provider) Queries() (*sdk.CourseQueries, error) {
	client, err := p.SDK()
	if err != nil {
		return nil, err
	}
	sessions, err := p.Sessions()
	if err != nil {
		return nil, err
	}
	p.queriesOnce.Do(func() {
		p.queries = sdk.NewCourseQueries(client, sessions)
	})
	return p.queries, nil
}

// RequireUser restores the persisted session and returns the resolved user.
// Commands that need an identity call this first; a missing or unresolvable
// token yields ErrNotAuthenticated.
func (p *Provider) RequireUser(ctx context.Context) (*sdk.Manager, *sdk.UserProfile, error) {
	sessions, err := p.Sessions()
	if err != nil {
		return nil, nil, err
	}
	if current := sessions.Session(); current.Status == sdk.StatusAuthenticated {
		return sessions, current.User, nil
	}
	user, err := sessions.Restore(ctx)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrNotAuthenticated
	}
	return sessions, user, nil
}
