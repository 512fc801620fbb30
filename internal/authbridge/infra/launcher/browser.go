package launcher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/domain/authorization"
	"github.com/pkg/browser"
)

// BrowserLauncher hands the authorization URL to the system browser. The
// result comes back through the redirect channel.
type BrowserLauncher struct {
	urls   AuthorizeURLBuilder
	open   func(url string) error
	logger *slog.Logger
}

func NewBrowserLauncher(urls AuthorizeURLBuilder) *BrowserLauncher {
	return &BrowserLauncher{
		urls:   urls,
		open:   browser.OpenURL,
		logger: slog.Default().WithGroup("authbridge").WithGroup("launcher").WithGroup("browser"),
	}
}

func (l *BrowserLauncher) Launch(ctx context.Context, req *authorization.Request) error {
	authURL, err := l.urls.Build(req)
	if err != nil {
		return err
	}

	if err := l.open(authURL); err != nil {
		l.logger.WarnContext(ctx, "failed to open browser", slog.String("error", err.Error()))

		return fmt.Errorf("%w: %v", ErrBrowserOpen, err)
	}

	l.logger.DebugContext(ctx, "browser opened for authorization", slog.String("client_id", req.ClientID()))

	return nil
}
