//go:build chessdebug

package engine

const debugChecks = true
