package correlate

import (
	"context"
	"sync"
	"time"

	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/domain/authorization"
	"github.com/google/uuid"
)

// Pending is the one-shot handle of a caller waiting for the next
// authorization result. It resolves at most once.
type Pending struct {
	id           string
	method       authorization.Method
	registeredAt time.Time

	once  sync.Once
	done  chan struct{}
	grant authorization.CodeGrant
	err   error
}

func newPending(method authorization.Method, registeredAt time.Time) *Pending {
	return &Pending{
		id:           uuid.NewString(),
		method:       method,
		registeredAt: registeredAt,
		done:         make(chan struct{}),
	}
}

func (p *Pending) ID() string {
	return p.id
}

func (p *Pending) Method() authorization.Method {
	return p.method
}

func (p *Pending) RegisteredAt() time.Time {
	return p.registeredAt
}

// Done is closed once the handle has been resolved.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Result returns the outcome. It is only meaningful after Done is closed.
func (p *Pending) Result() (authorization.CodeGrant, error) {
	return p.grant, p.err
}

// Wait blocks until the handle resolves or ctx ends. Ending ctx does not
// withdraw the registration.
func (p *Pending) Wait(ctx context.Context) (authorization.CodeGrant, error) {
	select {
	case <-p.done:
		return p.grant, p.err
	case <-ctx.Done():
		return authorization.CodeGrant{}, ctx.Err()
	}
}

func (p *Pending) resolve(grant authorization.CodeGrant, err error) bool {
	resolved := false

	p.once.Do(func() {
		p.grant = grant
		p.err = err
		resolved = true
		close(p.done)
	})

	return resolved
}
