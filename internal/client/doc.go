// Package client provides typed access to a running pitopd instance: a
// request client for synchronous device queries and commands, and a
// subscriber delivering decoded broadcast notifications on a channel.
//
// The pitopctl CLI and the integration tests are the primary consumers.
package client
