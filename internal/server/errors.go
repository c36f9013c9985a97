// SPDX-License-Identifier: MIT

package server

import (
	"errors"
	"net/http"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"github.com/katalvlaran/spatialacc/accessibility"
	"github.com/katalvlaran/spatialacc/decay"
	"github.com/katalvlaran/spatialacc/od"
	"github.com/katalvlaran/spatialacc/stats"
)

var (
	errRateLimited = errors.New("server: rate limit exceeded")
	errTooLarge    = errors.New("server: too many records")
	errBadRequest  = errors.New("server: malformed request")
)

// invalidInput lists sentinels reported as 400.
var invalidInput = []error{
	errBadRequest,
	od.ErrEmptyTable,
	od.ErrInvalidRecord,
	od.ErrInconsistentDemand,
	od.ErrInconsistentSupply,
	od.ErrZeroDemand,
	od.ErrIncompleteODMatrix,
	decay.ErrBadParam,
	decay.ErrUnknownModel,
	stats.ErrBadDDOF,
	accessibility.ErrBadPolicy,
}

// apiError classifies err into an errbuilder error and an HTTP status.
func apiError(err error) (*errbuilder.ErrBuilder, int) {
	b := errbuilder.New().WithCause(err)
	switch {
	case errors.Is(err, errRateLimited):
		return b.WithCode(errbuilder.CodeResourceExhausted).WithMsg("rate limit exceeded"), http.StatusTooManyRequests
	case errors.Is(err, errTooLarge):
		return b.WithCode(errbuilder.CodeResourceExhausted).WithMsg(err.Error()), http.StatusRequestEntityTooLarge
	case errors.Is(err, accessibility.ErrUndefinedWeight):
		return b.WithCode(errbuilder.CodeFailedPrecondition).WithMsg(err.Error()), http.StatusUnprocessableEntity
	}
	for _, target := range invalidInput {
		if errors.Is(err, target) {
			return b.WithCode(errbuilder.CodeInvalidArgument).WithMsg(err.Error()), http.StatusBadRequest
		}
	}

	return b.WithCode(errbuilder.CodeInternal).WithMsg("internal error"), http.StatusInternalServerError
}

// codeName is the stable wire name of an errbuilder code.
func codeName(b *errbuilder.ErrBuilder) string {
	switch b.ErrCode() {
	case errbuilder.CodeInvalidArgument:
		return "invalid_argument"
	case errbuilder.CodeFailedPrecondition:
		return "failed_precondition"
	case errbuilder.CodeResourceExhausted:
		return "resource_exhausted"
	default:
		return "internal"
	}
}

// ErrorBody is the JSON error envelope.
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}
