package videos

import "github.com/pkg/errors"

// Error taxonomy for the pipeline. Callers classify with errors.Is; the
// delivery layer maps each category to an HTTP status.
var (
	// ErrNotFound: referenced video or storage object does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidReport: completion payload failed validation; the asset
	// status is left untouched so the worker may fix and resend.
	ErrInvalidReport = errors.New("invalid completion report")
	// ErrWorkerLaunch: the external worker could not be started.
	ErrWorkerLaunch = errors.New("worker launch failed")
	// ErrWorkerTimeout: no completion report within the supervision window.
	ErrWorkerTimeout = errors.New("worker supervision timeout")
	// ErrUpstreamFetch: storage returned an error other than not-found.
	ErrUpstreamFetch = errors.New("upstream fetch failed")
)
