package analysis

import "errors"

// ErrReportNotFound indicates the requested report id does not exist.
var ErrReportNotFound = errors.New("report not found")

// ErrBlankCompound indicates an empty or whitespace-only compound name.
var ErrBlankCompound = errors.New("compound name is blank")
