package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNoResponse   = errors.New("hotelhub: no response from server")
	ErrUnauthorized = errors.New("hotelhub: unauthorized")
	ErrNotFound     = errors.New("hotelhub: not found")

	// ErrInFlight is returned when a control is triggered while its own request is outstanding.
	ErrInFlight = errors.New("request already in flight")
	// ErrNotAllowed is returned for actions the current row state does not permit.
	ErrNotAllowed = errors.New("action not allowed in current state")
	// ErrUnmounted marks results that arrived after their view was torn down.
	ErrUnmounted = errors.New("view unmounted")
	// ErrNotConfirmed is returned when a guarded action is submitted without confirmation.
	ErrNotConfirmed = errors.New("action not confirmed")
)

type ErrorKind int

const (
	// KindTransport: no response was received.
	KindTransport ErrorKind = iota
	// KindRejected: 4xx with a structured body.
	KindRejected
	// KindServer: 5xx or a body we could not read.
	KindServer
)

const GenericErrorMessage = "something went wrong, please try again"

// APIError is the normalized shape of every failed backend call.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Errors  any // structured detail (field list or object), when the backend sends one
	Err     error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return GenericErrorMessage
}

func (e *APIError) Unwrap() error { return e.Err }

// UserMessage picks the message a view shows: the backend's text for validated
// rejections, fallback otherwise.
func UserMessage(err error, fallback string) string {
	var ae *APIError
	if errors.As(err, &ae) && ae.Kind == KindRejected && ae.Message != "" {
		return ae.Message
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return fallback
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}

// ValidationError is a client-side rejection; no request was issued.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// OrNil returns nil when no field failed.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}
