/*
Package report builds and publishes point-in-time performance reports.

Reports are derived from a ports.MonitorReader and never feed back into the
engine. Publication goes through a Manager, which serializes writes per report
ID (and, with a DistributedLocker, across replicas) before handing them to a
ports.ReportStore. A Poller republishes on an interval for long-running hosts.
*/
package report
