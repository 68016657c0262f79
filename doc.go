// Package patrimonio tracks a personal patrimony (cash, crypto, fund-like
// instruments, time deposits, real estate) by replaying an append-only log
// of financial events.
//
// The engine is a pure function of the log: every query replays the full
// event history into per-asset positions and average cost bases, combines
// them with a price snapshot into a valuation, and compares aggregated
// category values against configured allocation targets. No mutable state
// is carried between calls; the durable state is the log and the
// deposit/property record files owned by the Store.
package patrimonio
