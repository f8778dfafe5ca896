// Package logging assembles structured slog loggers and formatting helpers used
// across compendia.
//
// It owns the console and JSON handlers, routes output to the terminal and an
// optional rotating log file, and exposes attribute helpers so matching code
// tags log lines with the run, entry, role, and candidate being decided. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
