// Package query holds the Query Controller behind the finder form.
//
// The controller owns the text of the query and a single request status
// record (idle, loading, success or failure). A submission is split in two
// halves so that the fetch can run wherever the caller likes:
//
//   - Begin moves the record to loading and hands out a Ticket.
//   - Settle applies the outcome of that Ticket's fetch.
//
// Tickets carry a monotonically increasing id. Settle drops any outcome whose
// ticket is not the most recent one, so late responses from an earlier
// submission never overwrite a newer one.
//
// Render turns a State into exactly one of four views: progress, error,
// results or the empty hint.
package query
