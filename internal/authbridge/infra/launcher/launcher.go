package launcher

import (
	"context"

	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/domain/authorization"
)

type AuthorizeURLBuilder interface {
	Build(req *authorization.Request) (string, error)
}

// ResultSink receives the raw activity result once the helper exits. ctx keeps
// the values of the launching call but not its cancellation.
type ResultSink func(ctx context.Context, result authorization.ActivityResult)
