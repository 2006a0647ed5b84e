package curve3d

import "github.com/npillmayer/schuko/tracing"

// tracer traces diagnostics of the numeric searches. Nothing on the hot path
// writes to it; only failures and fallbacks do.
func tracer() tracing.Trace {
	return tracing.Select("curve3d")
}
