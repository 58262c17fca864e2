// Package broadcast fans device state change notifications out to any number
// of connected listeners.
//
// The publisher owns one PUB socket bound on the well-known broadcast
// endpoint. Publishes are fire-and-forget: a publisher that failed to bind,
// has not been started, or has emitting disabled drops messages with a log
// notice instead of erroring, and transport failures are logged and
// swallowed. A single mutex serializes every encode+write with the
// shutting-down check so no write can race the socket close.
package broadcast
