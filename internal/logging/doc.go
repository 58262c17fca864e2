// Package logging assembles the structured slog loggers used across pitopd.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attr helpers so every component emits log lines with
// the same shape. The package also provides a no-op logger for tests and
// wiring code that cannot fail.
//
// Loggers are injected into components at construction; nothing in this
// repository logs through a package-level global.
package logging
