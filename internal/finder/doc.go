// Package finder provides an HTTP implementation of the domain.SubdomainFinder
// and domain.RecordClient interfaces.
//
// The finder service accepts a domain and answers with the subdomains it
// discovered. This package offers a concrete HTTP client for it.
//
// Supported operations include:
//   - Submitting a domain for enumeration (POST /find).
//   - Reading a stored record for a domain (GET /subdomains/{domain}).
//   - Listing every stored record (GET /history).
//
// All requests are JSON over HTTP and accept a context for cancellation and
// deadlines. Non-2xx statuses are returned as *StatusError carrying the HTTP
// method, path, status and the server's error text when it sent one. A 2xx
// body of the wrong shape is reported as ErrMalformedResponse.
package finder
