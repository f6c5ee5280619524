package eval

import (
	"jse/activation"
	"jse/deps"
	"jse/logging"
	"jse/resolve"
	"jse/symbols"
	"jse/types"

	"github.com/pkg/errors"
)

// Report logs a resolution failure raised in a context under the matching
// message kind
func Report(ctx *activation.Context, err error) {
	logging.LogRuntimeError(ctx.String(), err.Error(), messageKind(err))
}

// messageKind picks the log message kind of an error
func messageKind(err error) int {
	var (
		accessErr *types.IllegalMemberAccessError
		unbound   *types.UnboundThisError
		staticErr *resolve.StaticThisError
		usageErr  *symbols.IllegalAttributeUsageError
		cycleErr  *deps.CyclicDependencyError
	)

	switch cause := errors.Cause(err); {
	case errors.As(cause, &accessErr):
		return logging.LMKAccess
	case errors.As(cause, &unbound), errors.As(cause, &staticErr):
		return logging.LMKThis
	case errors.As(cause, &usageErr):
		return logging.LMKUsage
	case errors.As(cause, &cycleErr):
		return logging.LMKCycle
	default:
		return logging.LMKName
	}
}
