// Package errs defines the error taxonomy shared by the game services and
// their HTTP handlers.
//
// Every rejection carries a stable Kind and a human readable detail. Handlers
// translate kinds to status codes with Status and render bodies with Body.
//
//	if errors.Is(err, errs.ErrNotFound) { ... }
package errs
