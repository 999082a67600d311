// Package response builds the uniform envelope every operation answers with
// and owns the pagination defaults shared by all list endpoints.
package response

import (
	"net/http"

	"github.com/minhtrifit/hubtech-interview-api/apperr"
)

type Envelope struct {
	Message    string  `json:"message"`
	Data       any     `json:"data"`
	Error      *string `json:"error"`
	StatusCode int     `json:"statusCode"`
}

func OK(message string, data any) Envelope {
	return Envelope{Message: message, Data: data, StatusCode: http.StatusOK}
}

func Created(message string, data any) Envelope {
	return Envelope{Message: message, Data: data, StatusCode: http.StatusCreated}
}

// FromError maps a taxonomy error onto the envelope. Unclassified errors keep
// their message but report status 500.
func FromError(err error) Envelope {
	kind := apperr.KindOf(err)
	label := kind.String()
	status := kind.StatusCode()

	message := err.Error()
	return Envelope{
		Message:    message,
		Error:      &label,
		StatusCode: status,
	}
}

const (
	defaultLimit = 10
	browseLimit  = 1000
)

// Page resolves the offset/limit call pattern: an absent offset defaults to 0
// and an absent limit defaults to 10 when offset was also absent, else 1000.
// The asymmetry separates "id lookup" from "browse" callers and is load-bearing.
func Page(offset, limit *int) (int, int) {
	skip := 0
	if offset != nil {
		skip = *offset
	}

	take := defaultLimit
	if limit != nil {
		take = *limit
	} else if offset != nil {
		take = browseLimit
	}
	return skip, take
}
