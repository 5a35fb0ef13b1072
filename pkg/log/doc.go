/*
Package log provides structured logging for Hutch built on zerolog.

Init configures the global logger once at startup (level, JSON or console
output); components take child loggers via WithComponent and friends.
This is operational logging; the semantic record of a dispatch lives in
pkg/streamlog.
*/
package log
