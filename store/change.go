package store

// ChangeKind tells which store operation a Change performs.
type ChangeKind int

const (
	ChangeInsert ChangeKind = iota
	ChangeUpdate
	ChangeDelete
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeInsert:
		return "insert"
	case ChangeUpdate:
		return "update"
	case ChangeDelete:
		return "delete"
	default:
		return "unknown"
	}
}

const noAffectedExpectation = -1

// Change is one step of an atomic change set, see Apply on the engines.
type Change struct {
	kind             ChangeKind
	table            string
	record           StorableRecord
	filter           Filter
	patch            Patch
	expectedAffected int64
}

// InsertChange inserts the record into table. It always expects exactly one affected row.
func InsertChange(table string, record StorableRecord) Change {
	return Change{kind: ChangeInsert, table: table, record: record, expectedAffected: 1}
}

// UpdateChange patches all records in table matching filter.
func UpdateChange(table string, filter Filter, patch Patch) Change {
	return Change{kind: ChangeUpdate, table: table, filter: filter, patch: patch, expectedAffected: noAffectedExpectation}
}

// DeleteChange deletes all records in table matching filter.
func DeleteChange(table string, filter Filter) Change {
	return Change{kind: ChangeDelete, table: table, filter: filter, expectedAffected: noAffectedExpectation}
}

// ExpectingAffected makes the change set fail with ErrConcurrencyConflict unless exactly n rows are affected.
func (c Change) ExpectingAffected(n int64) Change {
	c.expectedAffected = n
	return c
}

func (c Change) Kind() ChangeKind { return c.kind }
func (c Change) Table() string { return c.table }
func (c Change) Record() StorableRecord { return c.record }
func (c Change) Filter() Filter { return c.filter }
func (c Change) Patch() Patch { return c.patch }

// ExpectedAffected returns the expected number of affected rows and whether an expectation is set.
func (c Change) ExpectedAffected() (int64, bool) {
	return c.expectedAffected, c.expectedAffected != noAffectedExpectation
}

// Validate checks table name, field keys and the record of an insert.
func (c Change) Validate() error {
	if err := ValidateTableName(c.table); err != nil {
		return err
	}

	switch c.kind {
	case ChangeInsert:
		return validateRecord(c.record.ID, c.record.DataJSON)
	case ChangeUpdate:
		if err := c.filter.Validate(); err != nil {
			return err
		}
		return c.patch.Validate()
	default:
		return c.filter.Validate()
	}
}
