// Package shell provides the imperative shell around the circulation core:
// mapping between domain entities and storable records, translating domain events into
// atomic store change sets, loading entities, retrying on concurrency conflicts, and the
// observability helpers shared by all command and query handlers.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
