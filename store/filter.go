package store

import (
	"time"

	"github.com/shopspring/decimal"
)

/***** Condition *****/

// ConditionKind enumerates the supported conditions on document fields.
type ConditionKind int

const (
	// ConditionEquals matches when the field equals the JSON value (containment).
	ConditionEquals ConditionKind = iota
	// ConditionGreaterThan matches when the numeric field is > the number.
	ConditionGreaterThan
	// ConditionLessThan matches when the numeric field is < the number.
	ConditionLessThan
	// ConditionAtLeast matches when the numeric field is >= the number.
	ConditionAtLeast
	// ConditionLessThanField matches when the numeric field is < another numeric field of the same document.
	ConditionLessThanField
	// ConditionAbsent matches when the field is missing or null.
	ConditionAbsent
	// ConditionPresent matches when the field is set to a non-null value.
	ConditionPresent
	// ConditionBefore matches when the timestamp field is strictly before the instant.
	ConditionBefore
	// ConditionNotBefore matches when the timestamp field is at or after the instant.
	ConditionNotBefore
	// ConditionContainsFold matches when the string field contains the text, ignoring case.
	ConditionContainsFold
	// ConditionVersion matches records with exactly this version.
	ConditionVersion
)

// Condition is a single predicate on a record. Build it with the constructor functions.
type Condition struct {
	kind     ConditionKind
	key      string
	otherKey string
	value    any
	number   decimal.Decimal
	instant  time.Time
	text     string
	version  int64
}

// P builds an equality condition. The value must be JSON-encodable (string, number, bool).
func P(key string, value any) Condition {
	return Condition{kind: ConditionEquals, key: key, value: value}
}

// GreaterThan builds a numeric "field > n" condition.
func GreaterThan(key string, n int64) Condition {
	return Condition{kind: ConditionGreaterThan, key: key, number: decimal.NewFromInt(n)}
}

// LessThan builds a numeric "field < n" condition.
func LessThan(key string, n int64) Condition {
	return Condition{kind: ConditionLessThan, key: key, number: decimal.NewFromInt(n)}
}

// AtLeast builds a numeric "field >= amount" condition, used for decimal amounts.
func AtLeast(key string, amount decimal.Decimal) Condition {
	return Condition{kind: ConditionAtLeast, key: key, number: amount}
}

// LessThanField builds a "field < otherField" condition on two numeric fields.
func LessThanField(key string, otherKey string) Condition {
	return Condition{kind: ConditionLessThanField, key: key, otherKey: otherKey}
}

// Absent builds a "field is missing or null" condition.
func Absent(key string) Condition {
	return Condition{kind: ConditionAbsent, key: key}
}

// Present builds a "field is set" condition.
func Present(key string) Condition {
	return Condition{kind: ConditionPresent, key: key}
}

// Before builds a "timestamp field < instant" condition.
func Before(key string, instant time.Time) Condition {
	return Condition{kind: ConditionBefore, key: key, instant: instant}
}

// NotBefore builds a "timestamp field >= instant" condition.
func NotBefore(key string, instant time.Time) Condition {
	return Condition{kind: ConditionNotBefore, key: key, instant: instant}
}

// ContainsFold builds a case-insensitive substring condition.
func ContainsFold(key string, text string) Condition {
	return Condition{kind: ConditionContainsFold, key: key, text: text}
}

// VersionIs builds a condition on the record version.
func VersionIs(version int64) Condition {
	return Condition{kind: ConditionVersion, version: version}
}

func (c Condition) Kind() ConditionKind { return c.kind }
func (c Condition) Key() string { return c.key }
func (c Condition) OtherKey() string { return c.otherKey }
func (c Condition) Value() any { return c.value }
func (c Condition) Number() decimal.Decimal { return c.number }
func (c Condition) Instant() time.Time { return c.instant }
func (c Condition) Text() string { return c.text }
func (c Condition) Version() int64 { return c.version }

func (c Condition) validate() error {
	if c.kind == ConditionVersion {
		return nil
	}

	if !ValidFieldKey(c.key) {
		return ErrInvalidFieldKey
	}

	if c.kind == ConditionLessThanField && !ValidFieldKey(c.otherKey) {
		return ErrInvalidFieldKey
	}

	return nil
}

/***** Ordering *****/

// Direction of an ordering.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Order sorts by a document field, or by creation time when ByCreation is true.
type Order struct {
	key        string
	direction  Direction
	byCreation bool
}

func (o Order) Key() string { return o.key }
func (o Order) Direction() Direction { return o.direction }
func (o Order) ByCreation() bool { return o.byCreation }

/***** Filter *****/

// Filter selects records: all groups must match, and a group matches when any of its conditions match.
// An empty filter matches every record.
type Filter struct {
	groups [][]Condition
	orders []Order
	limit  int
}

// MatchAll returns the empty filter.
func MatchAll() Filter {
	return Filter{}
}

// Groups returns the condition groups. Groups are combined with AND, conditions within a group with OR.
func (f Filter) Groups() [][]Condition {
	return f.groups
}

func (f Filter) Orders() []Order {
	return f.orders
}

// Limit returns the maximum number of records to return, 0 means unlimited.
func (f Filter) Limit() int {
	return f.limit
}

// Validate checks all field keys so that engines can embed them in queries.
func (f Filter) Validate() error {
	for _, group := range f.groups {
		for _, condition := range group {
			if err := condition.validate(); err != nil {
				return err
			}
		}
	}

	for _, order := range f.orders {
		if !order.byCreation && !ValidFieldKey(order.key) {
			return ErrInvalidFieldKey
		}
	}

	return nil
}

/***** FilterBuilder *****/

// FilterBuilder builds a Filter.
//
//	store.BuildFilter().
//		Where(store.P("transaction_type", "checkout"), store.Absent("return_date")).
//		WhereAnyOf(store.P("book_id", a), store.P("book_id", b)).
//		OrderByCreation(store.Descending).
//		Finalize()
type FilterBuilder interface {
	// Where adds each condition as its own group, i.e. all of them must match.
	Where(conditions ...Condition) FilterBuilder
	// And is an alias of Where for readability in chains.
	And(conditions ...Condition) FilterBuilder
	// WhereAnyOf adds one group that matches when any of the conditions match.
	WhereAnyOf(conditions ...Condition) FilterBuilder
	// OrderBy sorts by a document field (JSON ordering, numbers numerically).
	OrderBy(key string, direction Direction) FilterBuilder
	// OrderByCreation sorts by insertion time.
	OrderByCreation(direction Direction) FilterBuilder
	// Limit caps the number of returned records.
	Limit(n int) FilterBuilder
	// Finalize returns the Filter.
	Finalize() Filter
}

type filterBuilder struct {
	filter Filter
}

// BuildFilter starts a new FilterBuilder.
func BuildFilter() FilterBuilder {
	return &filterBuilder{}
}

func (fb *filterBuilder) Where(conditions ...Condition) FilterBuilder {
	for _, condition := range conditions {
		fb.filter.groups = append(fb.filter.groups, []Condition{condition})
	}

	return fb
}

func (fb *filterBuilder) And(conditions ...Condition) FilterBuilder {
	return fb.Where(conditions...)
}

func (fb *filterBuilder) WhereAnyOf(conditions ...Condition) FilterBuilder {
	if len(conditions) == 0 {
		return fb
	}

	group := make([]Condition, len(conditions))
	copy(group, conditions)
	fb.filter.groups = append(fb.filter.groups, group)

	return fb
}

func (fb *filterBuilder) OrderBy(key string, direction Direction) FilterBuilder {
	fb.filter.orders = append(fb.filter.orders, Order{key: key, direction: direction})
	return fb
}

func (fb *filterBuilder) OrderByCreation(direction Direction) FilterBuilder {
	fb.filter.orders = append(fb.filter.orders, Order{direction: direction, byCreation: true})
	return fb
}

func (fb *filterBuilder) Limit(n int) FilterBuilder {
	if n > 0 {
		fb.filter.limit = n
	}

	return fb
}

func (fb *filterBuilder) Finalize() Filter {
	return fb.filter
}
