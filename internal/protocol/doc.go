// Package protocol defines the wire messages exchanged between pitopd and
// its clients.
//
// A message is one text line: a decimal id token followed by zero or more
// parameter tokens, joined with "|". Requests carry 110-series ids, responses
// 200-series (errors 201-203), and broadcast notifications 300-series. Each
// id has a fixed parameter arity and per-position type; validation checks
// count before attempting any coercion so a short message never produces a
// type error.
//
// The codec is deliberately free of transport concerns: the broadcast and
// responder servers own sockets, this package only turns messages into lines
// and back.
package protocol
