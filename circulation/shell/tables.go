package shell

import (
	"github.com/AntonStoeckl/library-circulation-go/store/postgresengine"
)

const (
	// TableBooks holds the catalog.
	TableBooks = "books"

	// TableMembers holds the memberships.
	TableMembers = "members"

	// TableTransactions holds the loan ledger.
	TableTransactions = "transactions"

	// FieldMembershipNumber must be unique within TableMembers.
	FieldMembershipNumber = "membership_number"
)

// Tables returns all tables of the circulation service.
func Tables() []string {
	return []string{TableBooks, TableMembers, TableTransactions}
}

// UniqueFields returns the document fields guarded by unique indexes.
func UniqueFields() []postgresengine.UniqueField {
	return []postgresengine.UniqueField{
		{Table: TableMembers, Key: FieldMembershipNumber},
	}
}
