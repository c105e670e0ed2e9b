// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application; this package only defines
// the listen port, the admin API key and the public URL used when rendering
// room join links.
package server
