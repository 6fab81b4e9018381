// Package memengine provides an in-memory implementation of the record store.
//
// It implements the same contract as postgresengine (documents, filters, patches, atomic change sets,
// unique fields) and is used by the unit tests of the feature slices and by the CLI's memory mode.
// All operations are serialized by a single mutex. Change sets are applied to a working copy of the
// touched tables and only committed when every change succeeded.
package memengine
