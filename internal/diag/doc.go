// Package diag defines the diagnostic model shared by all checker phases.
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Code – compact numeric identifier with a stable string form.
//   - Diagnostic – severity + code + message + primary span + optional notes.
//   - Reporter / Bag – light-weight utilities so producers can emit
//     diagnostics without coupling to storage or formatting layers.
//
// Package diag performs no formatting or IO; rendering lives in
// internal/diagfmt and orchestration in the driver layer.
package diag
