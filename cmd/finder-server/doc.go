// Package main runs the finder HTTP service that the CLI and form talk to.
// It enumerates subdomains with the configured discovery sources and caches
// non-empty results on disk, one JSON file per domain.
//
// HTTP API
//
//	POST /find { "domain": "example.com" }
//	    Return the sorted subdomain list, from cache when present.
//	    400 on a bad body or domain, 404 when nothing was found, 500 when
//	    every source failed.
//
//	POST /store { "domain": "example.com", "subdomains": [...], "timestamp": "..." }
//	    Write a record into the cache directly. A zero timestamp means now.
//	    400 on a bad body or domain.
//
//	GET /subdomains/{domain}
//	    Return the cached record for {domain}, or 404.
//
//	GET /history
//	    Return every cached record, newest first.
//
//	GET /healthz
//	    Liveness probe.
//
// Configuration (environment)
//
//	FINDER_ADDR               listen address (default :3000)
//	FINDER_DATA_DIR           cache directory (default ./data)
//	FINDER_SOURCES            comma-separated: crtsh, hackertarget, dns
//	FINDER_RESOLVER           DNS resolver for the dns source (default 8.8.8.8:53)
//	FINDER_DNS_RATE           DNS queries per second, 1..10000 (default 50)
//	FINDER_DISCOVERY_TIMEOUT  per-run limit, 10s..30m (default 5m)
//	FINDER_COMMAND            optional external tools, ";"-separated, each "[dir|]command line",
//	                          e.g. "subfinder -d {domain} -silent;/opt/Sublist3r|venv/bin/python sublist3r.py -d {domain}"
//	FINDER_LOG_LEVEL          debug, info, warn or error (default info)
//
// Non-2xx responses carry {"error": "..."}. Every request gets one access log
// line on stderr.
package main
