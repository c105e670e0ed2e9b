package errs

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies a rejection. It is stable and exposed to clients.
type Kind string

const (
	KindValidation         Kind = "bad_request"
	KindNotFound           Kind = "not_found"
	KindForbidden          Kind = "forbidden"
	KindConflict           Kind = "conflict"
	KindContentUnavailable Kind = "content_unavailable"
	KindAlreadyInEffect    Kind = "already_in_effect"
	KindInternal           Kind = "internal"
)

// Error is a classified error with a human readable detail.
type Error struct {
	Kind   Kind
	Detail string
	// RoomCode names the other room on a device binding conflict.
	RoomCode string
	Err      error
}

// Sentinels for errors.Is matching by kind.
var (
	ErrValidation         = &Error{Kind: KindValidation}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrForbidden          = &Error{Kind: KindForbidden}
	ErrConflict           = &Error{Kind: KindConflict}
	ErrContentUnavailable = &Error{Kind: KindContentUnavailable}
	ErrAlreadyInEffect    = &Error{Kind: KindAlreadyInEffect}
)

func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind. A target carrying a detail must
// match it too, so only the bare sentinels act as kind wildcards.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Detail == "" || t.Detail == e.Detail
}

// New creates an error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Wrap classifies err under kind with a detail.
func Wrap(kind Kind, err error, detail string) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

// Validation reports malformed or out of range input.
func Validation(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

// NotFound reports a missing room, player, trait or card.
func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

// Forbidden reports a failed identity or role check.
func Forbidden(format string, args ...any) *Error {
	return New(KindForbidden, format, args...)
}

// Conflict reports a competing binding or a full room.
func Conflict(format string, args ...any) *Error {
	return New(KindConflict, format, args...)
}

// ContentUnavailable reports a catalog with no entry matching a required filter.
func ContentUnavailable(format string, args ...any) *Error {
	return New(KindContentUnavailable, format, args...)
}

// AlreadyInEffect reports a one-way flag that is already flipped.
func AlreadyInEffect(format string, args ...any) *Error {
	return New(KindAlreadyInEffect, format, args...)
}

// As extracts the classified error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of err, or KindInternal when it is unclassified.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

// Status maps a kind to its HTTP status code.
func Status(kind Kind) int {
	switch kind {
	case KindValidation, KindAlreadyInEffect:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindForbidden:
		return fiber.StatusForbidden
	case KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// Body renders err as the JSON rejection body.
func Body(err error) fiber.Map {
	e, ok := As(err)
	if !ok {
		return fiber.Map{"kind": KindInternal, "detail": "internal server error"}
	}
	body := fiber.Map{"kind": e.Kind, "detail": e.Detail}
	if e.Kind == KindContentUnavailable || e.Kind == KindInternal {
		// Seeding defects are server-side; the detail is for logs.
		body["detail"] = "game content is not available"
	}
	if e.RoomCode != "" {
		body["room_code"] = e.RoomCode
	}
	return body
}
