/*
Package metrics provides Prometheus instrumentation for Hutch.

Collectors are package-level and registered with the default registry at
init; the runner and API increment them inline. Handler returns the
promhttp handler the API mounts at /metrics.
*/
package metrics
