// Package trace records where the analyzer spends its time.
//
// Spans are opened with Begin and closed with End. Each span carries a
// Scope, and the tracer's Level decides which scopes are kept:
//
//   - ScopeDriver: CLI commands and directory analysis
//   - ScopePass: collection and the binding of one member body
//   - ScopeModule: per-file work such as a model's diagnostics pass
//   - ScopeNode: single expressions, e.g. one overload resolution
//
// A tracer either streams events as they happen, keeps the last N in a
// ring for dumping after a failure, or both:
//
//	semcore diag --trace=- --trace-level=detail src/
//
// Tracers and the current span travel through a context:
//
//	ctx = trace.WithTracer(ctx, t)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "bind", trace.CurrentSpan(ctx).SpanID)
//	defer span.End("")
package trace
