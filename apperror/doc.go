// Package apperror provides the structured error model used across the
// toolkit.
//
// This package implements a typed operational error carrying an HTTP-style
// status code, a machine-readable code, free-form diagnostic context, and an
// optional wrapped cause, together with the formatter that flattens a cause
// chain into a serializable snapshot.
//
// # Error Conventions
//
// The project follows a standardized error pattern:
//
//   - AppError values for classified, operational failures that callers
//     inspect with errors.As() or render at a transport boundary.
//   - fmt.Errorf with %w for ad-hoc wrapping that adds context to an
//     existing error without classifying it.
//   - Errors not built through this package are treated as unclassified
//     and map to status 500 at boundaries.
//
// # Usage
//
// Create and wrap errors:
//
//	err := apperror.NotFound("user does not exist",
//	    apperror.WithField("user_id", id))
//
//	err = apperror.Wrap(dbErr, "loading profile failed",
//	    apperror.WithStatus(http.StatusBadGateway))
//
// Render for logging or a response body:
//
//	snap := apperror.Format(err, apperror.IncludeStack())
package apperror
