// Package recovery converts panics raised by pluggable render backends into
// gRPC-coded errors so a faulty backend cannot take down its caller.
package recovery

import (
	"log/slog"
	"runtime/debug"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Guard calls fn and converts a panic into a codes.Internal error.
//
// Example:
//
//	q, err := recovery.Guard(logger, "render search", func() (search.Query, error) {
//	    return search.Render(root, fields)
//	})
func Guard[T any](logger *slog.Logger, operation string, fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic recovered",
				"operation", operation,
				"panic", r,
				"stack", string(debug.Stack()),
			)

			var zero T
			result = zero
			err = status.Errorf(codes.Internal, "%s panicked: %v", operation, r)
		}
	}()

	return fn()
}
