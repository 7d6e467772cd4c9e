// Package alerts evaluates threshold rules against recommendation results.
// A rule fires when its condition holds and its cooldown has elapsed, and
// resolves on the first evaluation where the condition no longer holds.
// Delivery is the structured log; the exporter counts firings.
package alerts
