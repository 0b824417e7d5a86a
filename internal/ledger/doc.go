// Package ledger defines the session record model shared by every other
// internal package.
//
// This package contains type definitions and pure helpers only. All other
// internal packages import ledger; ledger imports nothing internal. This
// keeps the data model the foundational layer with no circular dependencies.
//
// A ledger is the ordered history of a host's boot sessions. Exactly one
// record, the tail, is open at any time; every earlier record carries an
// estimated shutdown instant and the downtime gap to its successor.
package ledger
