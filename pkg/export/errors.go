package export

import "github.com/OPMDOR/system-access-form/pkg/serrors"

// All export errors are raised before any partial payload is produced;
// rendering is all-or-nothing per call and nothing is retried internally.
var (
	ErrUnsupportedFormat = serrors.NewError("EXPORT_UNSUPPORTED_FORMAT", "unsupported export format", "Requests.Exports.UnsupportedFormat")
	ErrMissingTemplate   = serrors.NewError("EXPORT_MISSING_TEMPLATE", "no template for category", "Requests.Exports.MissingTemplate")
	ErrMissingCapability = serrors.NewError("EXPORT_MISSING_CAPABILITY", "rendering capability unavailable", "Requests.Exports.MissingCapability")
	ErrDuplicateFormat   = serrors.NewError("EXPORT_DUPLICATE_FORMAT", "format already registered", "Requests.Exports.DuplicateFormat")
)
