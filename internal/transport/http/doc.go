// Package http contains the chi HTTP handlers for the report API:
// multipart upload, artifact download, health, and Prometheus metrics.
// Handlers depend on narrow service interfaces and report failures as
// RFC 7807 problem documents.
package http
