/*
Package analysis derives operational signals from workflow and agent snapshots.

Everything here is a pure function of its inputs and the supplied "now":
nothing reads a clock and nothing mutates the snapshots it is given.
*/
package analysis
