// Package logging provides structured file-based logging for AppDex.
//
// Logs are written as JSON lines to ~/.appdex/logs/appdex.log with
// size-based rotation.
package logging
