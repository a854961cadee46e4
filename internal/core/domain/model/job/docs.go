// Package job holds the Job aggregate and its lifecycle state machine.
//
// A Job is either an Original work order or an offer derived from one. Offers
// come in two flavours: Copied offers pushed by the creator to a specific
// driver, and Applications submitted by a driver against a public Original.
// Many offers may exist for one Original but at most one of them is ever
// Accepted; the others end up Superseded or Rejected.
//
// Status transitions:
//
//	Original:  Pending ──> Assigned ──> Completed
//	              │            │
//	              └────────────┴──────> Cancelled
//
//	Offer:     PendingAcceptance ──┬──> Accepted
//	           ApplicationRequested├──> Rejected
//	                               └──> Superseded
//
// Completed, Cancelled, Accepted, Rejected and Superseded are terminal.
//
// The aggregate validates every transition locally, but the guarantee that an
// Original is assigned at most once comes from the store's atomic conditional
// update, not from the in-memory check.
package job
