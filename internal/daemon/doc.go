// Package daemon coordinates the long-running pitopd process.
//
// It wires configuration, the device backend, the broadcast publisher, and
// the request responder into a single lifecycle with flock-based locking to
// prevent multiple instances. The daemon implements the responder's callback
// contract by delegating each request to the device and publishing the
// resulting state changes.
//
// Hardware drivers stay outside this package; anything satisfying the Device
// interface can back the daemon.
package daemon
