// Package ops holds the view-models for the plain request/response venue
// surfaces: inventory, sales/delivery logs, bookings, leave, HR warnings,
// announcements, and user administration. Each follows the same shape as
// the schedule view-model — fetch replaces the cache wholesale, mutations
// go through a guard then re-fetch — without any coordination semantics.
package ops

import (
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/harbourline/venue-cli/pkg/api"
)

var validate = validator.New()

// recorder is the shared last-error bookkeeping embedded in every
// view-model here. It carries its own lock so LastError can be read while
// an operation is in flight.
type recorder struct {
	recMu     sync.Mutex
	lastError string
}

func (r *recorder) record(err error) error {
	r.recMu.Lock()
	defer r.recMu.Unlock()
	if err == nil {
		r.lastError = ""
		return nil
	}
	r.lastError = api.UserMessage(err)
	return err
}

// LastError returns the human-readable message of the most recent failed
// operation, empty after a success.
func (r *recorder) LastError() string {
	r.recMu.Lock()
	defer r.recMu.Unlock()
	return r.lastError
}
