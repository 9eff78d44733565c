// Package services implements the business logic layer between the HTTP
// transport and the processing pipeline. ReportService owns the upload
// lifecycle (scratch storage, pipeline run, artifact lookup) and
// HealthService reports process and storage health.
package services
