// Package domain contains the core domain entities and value objects for
// transdb.
//
// This package represents the innermost layer of the Clean Architecture. It
// has no dependencies on infrastructure concerns (I/O, logging, CLI) and
// contains only pure business logic.
//
// # Entities
//
//   - [Account]: a ledger entity with an id and an integer balance
//   - [Transfer]: a directed movement of an amount between two accounts
//   - [Transaction]: an atomic, ordered batch of transfers
//   - [TransactionLog]: the condensed per-account net-delta view of a
//     transaction, used for apply, rollback and settlement scoring
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (a TransactionLog never changes once built)
//   - Free of infrastructure dependencies
//   - Focused on business rules and invariants
//   - Testable without mocks or external systems
package domain
