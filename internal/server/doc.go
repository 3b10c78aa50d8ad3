// Package server is the finder HTTP service: it accepts a domain, runs
// discovery and answers with the subdomains it found.
//
// HTTP API
//
//	POST /find {"domain": "example.com"}
//	    Return the cached list for the domain, or run discovery, cache a
//	    non-empty result and return it. Concurrent requests for the same
//	    domain share one discovery run.
//	    400 on a bad body, an empty or invalid domain; 404 when nothing was
//	    found (not cached); 500 when discovery failed.
//
//	GET /subdomains/{domain}
//	    Return the stored record for {domain} or 404.
//
//	GET /history
//	    Return every stored record, newest first.
//
//	GET /healthz
//	    Liveness probe.
//
// Responses are JSON. Non-2xx statuses carry {"error": "..."}. CORS is open to
// any origin so a browser form on another port can call /find.
package server
