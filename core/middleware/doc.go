// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - Auth: API key validation for catalog administration and integrity routes.
//     Player-facing room routes are not protected; a device identifier is the
//     only credential a player presents.
//   - RayID: assigns a request ID to every request, stores it in the context
//     and echoes it in the response headers for tracing.
package middleware
