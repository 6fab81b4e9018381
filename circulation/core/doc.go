// Package core contains the circulation domain of a public library:
// the catalog (Book), membership (Member) and the loan ledger (Transaction).
//
// Everything in this package is pure. The rules engine (CanCheckout, ComputeDueDate, IsOverdue,
// IsExpiringSoon, IsExpired), the fine policy and the book status derivation take all inputs
// explicitly, including the instant of evaluation, so they can be tested without a clock.
//
// Decide functions in the feature packages return a DecisionResult that carries a DomainEvent
// describing the accepted change (for example BookCheckedOut), or a *CirculationError
// describing why a command was rejected. Rejections are never persisted.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
