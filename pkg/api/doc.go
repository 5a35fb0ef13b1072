/*
Package api provides the HTTP surface over a running database.

The server exposes read endpoints for objects, refs, the stream log, and
the pending set, plus POST /v1/events for emitting into the runner. The
response to an emit includes the slice of the stream log that dispatch
produced, so a client sees the full causal story of its event.

Routes are served by chi with request-id, logging, and Prometheus
middleware; /metrics and /healthz round out the operational surface.
*/
package api
