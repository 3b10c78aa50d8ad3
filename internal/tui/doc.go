// Package tui provides the Bubble Tea model for the interactive finder form.
//
// The model is a thin shell around query.Controller. Bubble Tea's Update loop
// is the only place controller state changes; the network call runs as a
// tea.Cmd and comes back as a settle message tagged with its ticket.
package tui
