// Package model contains the shared interfaces and data structures.
//
// This package contains two kinds of types:
//
// 1. interfaces shared by several packages, such as [Logger];
//
// 2. data shared across packages: the archival representation of
// the observations collected by a probe (archival.go), the messages
// exchanged with the control vantage point (th.go), and the
// [MaybeBinary] variant used for HTTP headers and bodies.
//
// In general, this package should not contain logic, unless
// this logic is strictly related to data structures.
package model
