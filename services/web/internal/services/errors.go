package services

import (
	"context"
	"errors"

	"github.com/nimeshabuddhika/creditpath-web/pkg"
	"github.com/nimeshabuddhika/creditpath-web/pkg/utils"
	"github.com/nimeshabuddhika/creditpath-web/services/web/internal/backend"
	"github.com/nimeshabuddhika/creditpath-web/services/web/internal/observability"
)

// backendError maps a backend client error onto the application error kinds.
func backendError(err error, rejectedFallback, transportMsg string) error {
	var rejected *backend.RejectedError
	if errors.As(err, &rejected) {
		return pkg.NewAppErrorWithStatus(pkg.ErrBackendRejectedCode, rejected.Status, utils.FirstNonEmpty(rejected.Detail, rejectedFallback), err)
	}
	return pkg.NewAppError(pkg.ErrBackendUnreachableCode, transportMsg, err)
}

// acquire claims the busy slot for action on the session.
func acquire(ctx context.Context, guard pkg.BusyGuard, sessionID string, action pkg.Action) (func(), error) {
	release, err := guard.Acquire(ctx, pkg.BusyKey(sessionID, action))
	if err != nil {
		if errors.Is(err, pkg.ErrBusy) {
			observability.RejectedDuplicates.WithLabelValues(string(action)).Inc()
			return nil, pkg.NewAppError(pkg.ErrBusyCode, "", err)
		}
		return nil, pkg.NewAppError(pkg.ErrServerCode, "", err)
	}
	gauge := observability.InflightSubmissions.WithLabelValues(string(action))
	gauge.Inc()
	return func() {
		gauge.Dec()
		release()
	}, nil
}
