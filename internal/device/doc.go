// Package device provides an in-memory device backend.
//
// Real pi-top hardware is driven by hub and peripheral drivers that live
// outside this repository; the simulated device stands in for them so the
// daemon runs on development machines and in tests with the same callback
// surface the drivers expose.
package device
