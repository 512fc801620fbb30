package launcher

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/domain/authorization"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/observability/tracing"
)

const (
	EnvRedirectURI = "BRIDGE_REDIRECT_URI"
	EnvRequestCode = "BRIDGE_REQUEST_CODE"
)

// ActivityLauncher runs a helper process that hosts the in-app authorization
// screen. The helper receives the authorization URL as its last argument and
// reports the redirect URI it reached on stdout. Exit status 0 is RESULT_OK,
// anything else is RESULT_CANCELED.
type ActivityLauncher struct {
	baseCtx     context.Context
	command     []string
	requestCode int
	urls        AuthorizeURLBuilder
	sink        ResultSink
	wg          sync.WaitGroup
	logger      *slog.Logger
}

// NewActivityLauncher binds helper processes to ctx; they are not tied to the
// context of the call that launched them.
func NewActivityLauncher(
	ctx context.Context,
	command []string,
	requestCode int,
	urls AuthorizeURLBuilder,
	sink ResultSink,
) *ActivityLauncher {
	return &ActivityLauncher{
		baseCtx:     ctx,
		command:     command,
		requestCode: requestCode,
		urls:        urls,
		sink:        sink,
		logger:      slog.Default().WithGroup("authbridge").WithGroup("launcher").WithGroup("activity"),
	}
}

func (l *ActivityLauncher) Launch(ctx context.Context, req *authorization.Request) error {
	if len(l.command) == 0 {
		return ErrActivityUnavailable
	}

	authURL, err := l.urls.Build(req)
	if err != nil {
		return err
	}

	args := append(append([]string{}, l.command[1:]...), authURL)

	cmd := exec.CommandContext(l.baseCtx, l.command[0], args...)
	cmd.Env = append(os.Environ(),
		EnvRedirectURI+"="+req.RedirectURI(),
		EnvRequestCode+"="+strconv.Itoa(l.requestCode),
	)
	cmd.Env = append(cmd.Env, traceEnv(ctx)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		l.logger.WarnContext(ctx, "failed to start activity helper", slog.String("error", err.Error()))

		return fmt.Errorf("%w: %v", ErrActivityStart, err)
	}

	l.logger.DebugContext(ctx, "activity helper started", slog.Int("pid", cmd.Process.Pid))

	l.wg.Add(1)
	go l.await(context.WithoutCancel(ctx), cmd, &stdout, &stderr)

	return nil
}

func (l *ActivityLauncher) await(ctx context.Context, cmd *exec.Cmd, stdout, stderr *bytes.Buffer) {
	defer l.wg.Done()

	result := authorization.ActivityResult{
		RequestCode: l.requestCode,
		ResultCode:  authorization.ResultCanceled,
	}

	if err := cmd.Wait(); err != nil {
		l.logger.InfoContext(ctx, "activity helper finished without result",
			slog.String("error", err.Error()),
			slog.String("stderr", strings.TrimSpace(stderr.String())),
		)
	} else {
		result.ResultCode = authorization.ResultOK
		result.Data = lastURI(stdout.Bytes())
	}

	if l.sink != nil {
		l.sink(ctx, result)
	}
}

// traceEnv carries the caller's trace context to the helper as TRACEPARENT
// and TRACESTATE.
func traceEnv(ctx context.Context) []string {
	carrier := map[string]string{}
	tracing.InjectToMap(ctx, carrier)

	env := make([]string, 0, len(carrier))
	for key, value := range carrier {
		env = append(env, strings.ToUpper(key)+"="+value)
	}

	return env
}

// Wait blocks until every helper started so far has exited and been reported.
func (l *ActivityLauncher) Wait() {
	l.wg.Wait()
}

func lastURI(output []byte) *url.URL {
	var last string

	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			last = line
		}
	}

	if last == "" {
		return nil
	}

	parsed, err := url.Parse(last)
	if err != nil {
		return nil
	}

	return parsed
}
