// Package discovery enumerates subdomains for the finder service.
//
// A Runner fans a domain out to every configured Source at once and merges
// what comes back: names are lowercased, wildcard prefixes and trailing dots
// are stripped, anything that is not the domain or below it is dropped, and
// the rest is deduplicated and sorted. A failing source is logged and skipped;
// the run only fails when every source fails.
//
// Sources:
//   - CrtSh: certificate transparency logs from crt.sh.
//   - HackerTarget: the hostsearch API.
//   - DNS: resolves a wordlist of common labels, paced by a rate limiter and
//     skipped entirely for wildcard zones.
//   - Command: an external enumeration tool such as subfinder, one name per
//     output line.
package discovery
