package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/careerhub/frontdesk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	calls atomic.Int32
	user  types.User
	err   error
	block chan struct{}
}

func (f *fakeFetcher) Me(ctx context.Context) (types.User, error) {
	f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	return f.user, f.err
}

func TestRefreshAuthenticated(t *testing.T) {
	fetcher := &fakeFetcher{user: types.User{ID: "u1", Role: types.RoleCompany, Name: "Acme"}}
	p := NewProvider(fetcher)

	res := p.Refresh(context.Background())

	assert.Equal(t, Authenticated, res.Status)
	assert.Equal(t, "u1", res.User.ID)
	user, ok := p.Current()
	require.True(t, ok)
	assert.Equal(t, "Acme", user.Name)
	assert.Equal(t, types.RoleCompany, p.Role())
	assert.False(t, p.Loading())
}

func TestRefreshFailureClearsUser(t *testing.T) {
	fetcher := &fakeFetcher{user: types.User{ID: "u1"}}
	p := NewProvider(fetcher)
	p.Refresh(context.Background())

	fetcher.err = errors.New("401")
	res := p.Refresh(context.Background())

	assert.Equal(t, Unauthenticated, res.Status)
	assert.Error(t, res.Err)
	_, ok := p.Current()
	assert.False(t, ok)
	assert.Equal(t, types.Role(""), p.Role())
}

func TestClear(t *testing.T) {
	p := NewProvider(&fakeFetcher{user: types.User{ID: "u1"}})
	p.Refresh(context.Background())

	p.Clear()

	_, ok := p.Current()
	assert.False(t, ok)
}

func TestConcurrentRefreshSharesOneRequest(t *testing.T) {
	fetcher := &fakeFetcher{user: types.User{ID: "u1"}, block: make(chan struct{})}
	p := NewProvider(fetcher)

	var wg sync.WaitGroup
	results := make([]Result, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = p.Refresh(context.Background())
		}(i)
	}

	require.Eventually(t, p.Loading, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(fetcher.block)
	wg.Wait()

	assert.Equal(t, int32(1), fetcher.calls.Load())
	for _, res := range results {
		assert.Equal(t, Authenticated, res.Status)
	}
}
