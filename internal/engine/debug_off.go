//go:build !chessdebug

package engine

// debugChecks turns piece/board desyncs into panics. Build with -tags
// chessdebug to enable it.
const debugChecks = false
