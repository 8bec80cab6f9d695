// Package logging builds the slog loggers used across framepipe: a compact
// console handler for interactive use and a JSON handler for machine
// consumption. The "component" attribute is hoisted into the console line
// prefix so pipeline stages read naturally.
package logging
