// Package app assembles the web application: configuration, logging,
// storage paths, the processing pipeline, and the chi router with its
// middleware chain, then runs the HTTP server with graceful shutdown.
package app
