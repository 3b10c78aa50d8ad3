// Package commands defines the finder CLI and wires dependencies for subcommands.
//
// Commands
//
//   - find <domain>    Submit one query and print the result list
//   - lookup <domain>  Show the server's cached record for a domain
//   - tui [domain]     Run the interactive form
//   - history          Show past submissions (or the server's cache with --remote)
//
// # Implementation
//
// The root command resolves the home directory and server URL (flags first,
// then FINDER_HOME and FINDER_SERVER) and builds an app.Client before any
// subcommand runs. Every subcommand drives the same query.Controller.
package commands
