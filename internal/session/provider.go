// Package session holds the current-user state of a portal session.
package session

import (
	"context"
	"sync"

	"github.com/careerhub/frontdesk/types"
	"golang.org/x/sync/singleflight"
)

// Status is the outcome of a refresh.
type Status int

const (
	Unauthenticated Status = iota
	Authenticated
)

func (s Status) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Result is the outcome of Refresh. User is the zero value unless Status
// is Authenticated. Err holds the failure that led to Unauthenticated, if
// any.
type Result struct {
	User   types.User
	Status Status
	Err    error
}

// UserFetcher fetches the current user.
type UserFetcher interface {
	Me(ctx context.Context) (types.User, error)
}

// Provider holds the authenticated user profile and a loading flag.
// Construct one per session and pass it to the views that need it.
type Provider struct {
	fetcher UserFetcher
	group   singleflight.Group

	mu      sync.RWMutex
	user    *types.User
	loading bool
}

// NewProvider returns an unauthenticated provider backed by fetcher.
func NewProvider(fetcher UserFetcher) *Provider {
	return &Provider{fetcher: fetcher}
}

// Refresh fetches the current user. Any failure clears the held user and
// yields Unauthenticated. Concurrent calls share one request.
func (p *Provider) Refresh(ctx context.Context) Result {
	v, _, _ := p.group.Do("me", func() (any, error) {
		p.setLoading(true)
		user, err := p.fetcher.Me(ctx)

		p.mu.Lock()
		defer p.mu.Unlock()
		p.loading = false
		if err != nil {
			p.user = nil
			return Result{Status: Unauthenticated, Err: err}, nil
		}
		p.user = &user
		return Result{User: user, Status: Authenticated}, nil
	})
	return v.(Result)
}

// Current returns the held user, if any.
func (p *Provider) Current() (types.User, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.user == nil {
		return types.User{}, false
	}
	return *p.user, true
}

// Role returns the held user's role, or "" when unauthenticated.
func (p *Provider) Role() types.Role {
	user, ok := p.Current()
	if !ok {
		return ""
	}
	return user.Role
}

// Loading reports whether a refresh is in flight.
func (p *Provider) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

// Clear drops the held user (logout or auth failure).
func (p *Provider) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.user = nil
}

func (p *Provider) setLoading(loading bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = loading
}
