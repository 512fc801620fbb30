package service

import (
	"context"
	"errors"

	connect "connectrpc.com/connect"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/domain/failure"
	"google.golang.org/protobuf/types/known/structpb"
)

var ErrArgumentType = errors.New("argument has an unexpected type")

const (
	detailCode    = "code"
	detailMessage = "message"
)

func connectCode(kind failure.Kind) connect.Code {
	switch kind {
	case failure.KindInvalidArguments:
		return connect.CodeInvalidArgument
	case failure.KindAuthError:
		return connect.CodePermissionDenied
	case failure.KindAuthCancelled:
		return connect.CodeAborted
	case failure.KindNetworkError:
		return connect.CodeUnavailable
	case failure.KindHTTPError:
		return connect.CodeFailedPrecondition
	case failure.KindEmptyResponse, failure.KindParseError:
		return connect.CodeDataLoss
	case failure.KindUnexpectedError, failure.KindLogoutError, failure.KindSessionCheckError:
		return connect.CodeInternal
	default:
		return connect.CodeInternal
	}
}

// toConnectError maps a bridge error to a Connect error carrying a
// {code, message} struct detail.
func toConnectError(err error) error {
	if errors.Is(err, context.Canceled) {
		return connect.NewError(connect.CodeCanceled, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	}

	kind := failure.KindOf(err)

	message := err.Error()

	var bridgeErr *failure.Error
	if errors.As(err, &bridgeErr) {
		message = bridgeErr.Message()
	} else {
		err = failure.Wrap(failure.KindUnexpectedError, err, "Unexpected error: %v", err)
		message = err.Error()
	}

	connectErr := connect.NewError(connectCode(kind), err)

	detail, detailErr := newFailureDetail(kind, message)
	if detailErr == nil {
		connectErr.AddDetail(detail)
	}

	return connectErr
}

func newFailureDetail(kind failure.Kind, message string) (*connect.ErrorDetail, error) {
	payload, err := structpb.NewStruct(map[string]any{
		detailCode:    string(kind),
		detailMessage: message,
	})
	if err != nil {
		return nil, err
	}

	return connect.NewErrorDetail(payload)
}

// FailureFromError recovers the bridge error kind and message from a Connect
// error received by a client. ok is false when err carries no failure detail.
func FailureFromError(err error) (kind failure.Kind, message string, ok bool) {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return "", "", false
	}

	for _, detail := range connectErr.Details() {
		value, valueErr := detail.Value()
		if valueErr != nil {
			continue
		}

		payload, isStruct := value.(*structpb.Struct)
		if !isStruct {
			continue
		}

		code := payload.GetFields()[detailCode].GetStringValue()
		if code == "" {
			continue
		}

		return failure.Kind(code), payload.GetFields()[detailMessage].GetStringValue(), true
	}

	return "", "", false
}
