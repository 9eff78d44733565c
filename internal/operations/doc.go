// Package operations runs the document processing pipeline. A Manager
// executes a fixed sequence of steps (decode, parse, export) over a
// shared State that accumulates the decoded document, the recovered
// report, and the exported artifact paths. Step status transitions are
// tracked per run so callers can report progress and failures.
package operations
