/*
Package observability provides tools for monitoring the Easel history engine.

It turns domain.HistoryHooks into Prometheus metrics and structured audit logs,
and exposes history depth gauges fed by history subscriptions.
*/
package observability
