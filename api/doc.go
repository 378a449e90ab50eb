// Package api exposes the skill map over HTTP JSON.
//
// Handlers are bound to a Dependencies interface bundle so the wiring lives
// in the root package. Routes use Go 1.22 method patterns on the stdlib
// ServeMux; errors are rendered as a {code, message} envelope, and every
// business route is instrumented with request metrics under a stable
// endpoint label. Prometheus metrics are served at /metrics and liveness at
// /healthz.
package api
