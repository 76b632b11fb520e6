// Package webconnectivity classifies Web Connectivity measurements.
//
// The probe and the control vantage point both observe the target
// URL. The analyzers in this package reduce their observations to a
// small set of [Signals]:
//
//   - [AnalyzeDNS] computes the DNS consistency;
//
//   - [ReconcileControl] decides whether the control is usable;
//
//   - [AnalyzeHTTP] compares the probe and control responses.
//
// Then, [Classify] reduces the [Signals] to a [Summary], which contains
// the blocking verdict, the accessibility and a bitmask of the analysis
// paths that fired. [Classify] is a pure function and is safe to call
// from multiple goroutines.
//
// See https://github.com/ooni/spec/blob/master/nettests/ts-017-web-connectivity.md.
package webconnectivity
