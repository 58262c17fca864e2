// Package responder serves synchronous device queries and commands over the
// request/response socket.
//
// One background worker receives a request, decodes it, validates it against
// the dispatch table's parameter schema, invokes the matching callback
// method, and sends back exactly one reply. Every failure mode maps to one of
// three error responses (malformed, unsupported, server error); the worker
// itself never terminates on a bad request. The transport's strict
// request/reply alternation means at most one request is in flight, so the
// dispatch path needs no locking.
package responder
