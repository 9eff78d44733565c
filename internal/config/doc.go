// Package config loads application configuration from environment
// variables layered over an optional YAML file, and centralizes the
// filesystem paths the service uses for uploads, artifacts, and logs.
package config
