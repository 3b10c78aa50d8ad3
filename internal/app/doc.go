// Package app wires application dependencies for the finder binaries.
//
// It loads configuration, builds the concrete stores, HTTP clients, discovery
// sources and services, and exposes them via the Client and Service structs
// for the commands to use.
package app
