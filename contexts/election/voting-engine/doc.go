// Package votingengine implements the vote-casting and tally-consistency
// engine of the election backend.
//
// The module owns atomic vote-batch application against the durable ledger
// and tally counters, the parallel in-memory demo ledger, live tally
// notification fan-out, administrative resets, and counter reconciliation.
// Business rules live in the application/domain layers; storage and transport
// concerns are isolated behind ports and adapters.
package votingengine
