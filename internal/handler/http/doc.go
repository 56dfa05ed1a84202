// Package http implements the HTTP transport layer of the draft server.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Cross-cutting concerns such as authentication, request tracing, and
// access logging are handled in this package before requests are delegated
// to the service layer.
//
// Every payload that crosses this boundary is opaque to the server: draft
// content and metadata arrive already encrypted on the client, and the
// handlers store and return them without ever seeing plaintext.
package http
