// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Fact adapters never surface these errors to the user directly. They are
// converted into fact statuses, where the code decides between Degraded and
// Unavailable and the message becomes the status reason.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeSourceTimeout,
//	    "nvidia-smi did not answer",
//	    ctx.Err(),
//	    map[string]any{
//	        "command": "nvidia-smi",
//	    },
//	)
package errors
