// Package main hosts the pitopctl CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into request
// messages against a running pitopd daemon and streams its broadcast feed.
// Subcommands stay thin: protocol knowledge lives in internal/client and
// internal/protocol, so commands only parse arguments and format output.
package main
