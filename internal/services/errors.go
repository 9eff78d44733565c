package services

import "errors"

// Service-level errors, mapped to API errors by the transport layer.
var (
	ErrUnknownFormat    = errors.New("unknown artifact format")
	ErrArtifactNotFound = errors.New("artifact not found")
)
