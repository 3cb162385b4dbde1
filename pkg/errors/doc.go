// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeProcessFailed,
//	    "box office query failed",
//	    cause,
//	    map[string]any{
//	        "subcommand": "daily",
//	        "exitCode":   1,
//	    },
//	)
//
// HTTPStatus maps a code to the status the API layer responds with:
//
//	status := errors.HTTPStatus(err.Code) // 500
package errors
