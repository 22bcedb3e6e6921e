/*
Package ports defines the interfaces between the vigil engine and its hosts.

These interfaces decouple adapters (HTTP, MCP, report publishing) from the
concrete Monitor, and the report publisher from its storage backend.

# Key Interfaces

  - Monitor: The query and update surface of vigil.Monitor, as consumed by adapters.
  - ReportStore: Responsible for keeping published reports (e.g., in Memory or Redis).
  - DistributedLocker: Provides distributed locking so replicas do not interleave publications.
*/
package ports
