package services

import "errors"

// ErrExportDisabled is returned by ReportService.Export when no report
// sink is configured.
var ErrExportDisabled = errors.New("report export is not configured")
