/*
Package observability exports the vigil engine to the outside world.

It includes a Prometheus collector reading the cached counters on every
scrape, and lifecycle hooks that log transitions and count them.
*/
package observability
