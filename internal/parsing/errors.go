package parsing

import "errors"

var (
	errEmptySection = errors.New("empty section")
	errNoAgency     = errors.New("collection section has no agency name")
)
