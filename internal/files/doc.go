// Package files manages the scratch files of the service: uploaded
// documents waiting to be processed and the generated artifacts served
// back for download.
package files
