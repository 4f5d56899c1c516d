// Package diag defines the problem model shared by all compiler phases.
//
// # Purpose
//
//   - Provide plain, serialisable data structures describing issues the
//     compiler finds in source text (Problem, Position, Severity, Code).
//   - Offer the Handler contract that decouples problem producers from
//     whatever consumes them (BSP reporter, CLI renderer, tests).
//
// # Scope
//
// Package diag performs no formatting, IO, or protocol work. Translating
// problems into Build Server Protocol payloads lives in internal/report;
// rendering for terminals lives in the CLI layer.
//
// # Position model
//
// Positions use compiler coordinates: 1-based lines, 0-based columns.
// Every field except File is optional. A zero line means "not provided";
// columns and the pointer use -1 for that, since column 0 is meaningful.
// Consumers are expected to default missing fields rather than fail —
// partial positions are the normal case for early-phase problems.
package diag
