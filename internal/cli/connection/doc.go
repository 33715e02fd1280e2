// Package connection provides the HTTP client used by snipsync-cli to
// talk to a snipsync server.
//
// The client speaks the server's /v1 API: every JSON response arrives
// wrapped in the standard envelope (code, message, data), which
// ParseResponse unwraps into caller-supplied result structs. Raw
// endpoints such as /v1/export bypass the envelope and are read
// directly from the response body.
package connection
