// Package middleware provides gin adapters that map structured errors to
// transport responses.
//
// The adapters read errors collected on the gin context (or recovered
// from panics), render them with the apperror formatter, log the snapshot
// through zap, and write the status and JSON body. Stack traces are
// logged but never written to responses.
package middleware
