package memengine

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/store"
)

// ErrNonNumericField is returned when a patch increments a field holding a non-numeric value.
var ErrNonNumericField = errors.New("field is not numeric")

const (
	logMsgOperation     = "memengine operation: "
	logMsgConflict      = "concurrency conflict detected"
	logAttrTable        = "table"
	logAttrRowsAffected = "rows_affected"
	logAttrExpectedRows = "expected_rows"
	logAttrChangeCount  = "change_count"
	logAttrChangeKind   = "change_kind"
	logActionInsert     = "insert"
	logActionUpdate     = "update"
	logActionDelete     = "delete"
	logActionSelect     = "select"
	logActionApply      = "apply"
)

var documentJSON = jsoniter.Config{
	EscapeHTML:  false,
	SortMapKeys: true,
	UseNumber:   true,
}.Froze()

// row is immutable once it is part of a table, updates replace it.
type row struct {
	id        string
	version   int64
	seq       int64
	document  map[string]any
	dataJSON  []byte
	createdAt time.Time
	updatedAt time.Time
}

func (r *row) toRecord() (store.StorableRecord, error) {
	return store.RestoreStorableRecord(r.id, r.version, r.dataJSON, r.createdAt, r.updatedAt)
}

type table map[string]*row

// Store keeps all tables in memory.
type Store struct {
	mu           sync.Mutex
	tables       map[string]table
	uniqueFields map[string][]string
	seq          int64
	now          func() time.Time
	logger       store.Logger
}

// NewStore creates an empty in-memory Store.
func NewStore(options ...Option) (*Store, error) {
	s := &Store{
		tables:       make(map[string]table),
		uniqueFields: make(map[string][]string),
		now:          time.Now,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Insert stores the record with version 1.
func (s *Store) Insert(ctx context.Context, tableName string, record store.StorableRecord) (store.StorableRecord, error) {
	if err := ctx.Err(); err != nil {
		return store.StorableRecord{}, err
	}

	if err := store.InsertChange(tableName, record).Validate(); err != nil {
		return store.StorableRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.begin()

	inserted, err := w.insert(tableName, record)
	if err != nil {
		return store.StorableRecord{}, err
	}

	w.commit()
	s.logOperation(logActionInsert, logAttrTable, tableName, logAttrRowsAffected, 1)

	return inserted.toRecord()
}

// Update patches all records matching filter and returns how many were affected.
func (s *Store) Update(ctx context.Context, tableName string, filter store.Filter, patch store.Patch) (int64, error) {
	return s.applySingle(ctx, store.UpdateChange(tableName, filter, patch))
}

// Delete removes all records matching filter and returns how many were affected.
func (s *Store) Delete(ctx context.Context, tableName string, filter store.Filter) (int64, error) {
	return s.applySingle(ctx, store.DeleteChange(tableName, filter))
}

// Select returns the matching records, ordered as requested or by insertion.
func (s *Store) Select(ctx context.Context, tableName string, filter store.Filter) (store.StorableRecords, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := store.ValidateTableName(tableName); err != nil {
		return nil, err
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]*row, 0)
	for _, r := range s.tables[tableName] {
		if matches(r, filter) {
			matched = append(matched, r)
		}
	}

	sortRows(matched, filter.Orders())

	if filter.Limit() > 0 && len(matched) > filter.Limit() {
		matched = matched[:filter.Limit()]
	}

	records := make(store.StorableRecords, 0, len(matched))
	for _, r := range matched {
		record, err := r.toRecord()
		if err != nil {
			return nil, errors.Join(store.ErrBuildingStorableRecordFailed, err)
		}

		records = append(records, record)
	}

	s.logOperation(logActionSelect, logAttrTable, tableName, logAttrRowsAffected, len(records))

	return records, nil
}

// Apply executes all changes atomically. If any change fails, or affects a different number of rows
// than it expects, nothing is applied and the error (store.ErrConcurrencyConflict for expectations) is returned.
func (s *Store) Apply(ctx context.Context, changes ...store.Change) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(changes) == 0 {
		return store.ErrEmptyChangeSet
	}

	for _, change := range changes {
		if err := change.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.begin()

	for _, change := range changes {
		affected, err := w.apply(change)
		if err != nil {
			return err
		}

		if expected, isSet := change.ExpectedAffected(); isSet && affected != expected {
			s.logOperation(
				logMsgConflict,
				logAttrTable, change.Table(),
				logAttrChangeKind, change.Kind().String(),
				logAttrExpectedRows, expected,
				logAttrRowsAffected, affected,
			)

			return store.ErrConcurrencyConflict
		}
	}

	w.commit()
	s.logOperation(logActionApply, logAttrChangeCount, len(changes))

	return nil
}

func (s *Store) applySingle(ctx context.Context, change store.Change) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if err := change.Validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.begin()

	affected, err := w.apply(change)
	if err != nil {
		return 0, err
	}

	w.commit()

	action := logActionUpdate
	if change.Kind() == store.ChangeDelete {
		action = logActionDelete
	}
	s.logOperation(action, logAttrTable, change.Table(), logAttrRowsAffected, affected)

	return affected, nil
}

func (s *Store) logOperation(action string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(logMsgOperation+action, args...)
	}
}

/***** working copy *****/

// workingCopy holds shallow clones of the tables touched by a change set.
type workingCopy struct {
	s      *Store
	tables map[string]table
	seq    int64
	now    time.Time
}

func (s *Store) begin() *workingCopy {
	return &workingCopy{
		s:      s,
		tables: make(map[string]table),
		seq:    s.seq,
		now:    s.now(),
	}
}

func (w *workingCopy) commit() {
	for name, t := range w.tables {
		w.s.tables[name] = t
	}

	w.s.seq = w.seq
}

func (w *workingCopy) table(name string) table {
	if t, ok := w.tables[name]; ok {
		return t
	}

	original := w.s.tables[name]
	clone := make(table, len(original))
	for id, r := range original {
		clone[id] = r
	}

	w.tables[name] = clone

	return clone
}

func (w *workingCopy) apply(change store.Change) (int64, error) {
	switch change.Kind() {
	case store.ChangeInsert:
		if _, err := w.insert(change.Table(), change.Record()); err != nil {
			return 0, err
		}
		return 1, nil

	case store.ChangeUpdate:
		return w.update(change.Table(), change.Filter(), change.Patch())

	default:
		return w.delete(change.Table(), change.Filter())
	}
}

func (w *workingCopy) insert(tableName string, record store.StorableRecord) (*row, error) {
	document, err := decodeDocument(record.DataJSON)
	if err != nil {
		return nil, err
	}

	dataJSON, err := documentJSON.Marshal(document)
	if err != nil {
		return nil, err
	}

	t := w.table(tableName)
	if _, exists := t[record.ID]; exists {
		return nil, store.ErrDuplicateRecord
	}

	w.seq++
	inserted := &row{
		id:        record.ID,
		version:   1,
		seq:       w.seq,
		document:  document,
		dataJSON:  dataJSON,
		createdAt: w.now,
		updatedAt: w.now,
	}

	if err := w.checkUnique(tableName, inserted); err != nil {
		return nil, err
	}

	t[record.ID] = inserted

	return inserted, nil
}

func (w *workingCopy) update(tableName string, filter store.Filter, patch store.Patch) (int64, error) {
	sets, err := normalizeSets(patch)
	if err != nil {
		return 0, err
	}

	t := w.table(tableName)
	updated := make([]*row, 0)

	for id, r := range t {
		if !matches(r, filter) {
			continue
		}

		patched, patchErr := applyPatch(r, patch, sets, w.now)
		if patchErr != nil {
			return 0, patchErr
		}

		t[id] = patched
		updated = append(updated, patched)
	}

	for _, r := range updated {
		if err := w.checkUnique(tableName, r); err != nil {
			return 0, err
		}
	}

	return int64(len(updated)), nil
}

func (w *workingCopy) delete(tableName string, filter store.Filter) (int64, error) {
	t := w.table(tableName)

	var affected int64
	for id, r := range t {
		if matches(r, filter) {
			delete(t, id)
			affected++
		}
	}

	return affected, nil
}

func (w *workingCopy) checkUnique(tableName string, candidate *row) error {
	t := w.table(tableName)

	for _, key := range w.s.uniqueFields[tableName] {
		value, ok := candidate.document[key]
		if !ok || value == nil {
			continue
		}

		for id, other := range t {
			if id == candidate.id {
				continue
			}

			if equalValues(other.document[key], value) {
				return store.ErrDuplicateRecord
			}
		}
	}

	return nil
}

/***** documents *****/

func decodeDocument(dataJSON []byte) (map[string]any, error) {
	document := make(map[string]any)
	if err := documentJSON.Unmarshal(dataJSON, &document); err != nil {
		return nil, errors.Join(store.ErrInvalidRecordJSON, err)
	}

	return document, nil
}

// normalizeValue brings a Go value into the shape a decoded document holds (json.Number, string, bool, ...).
func normalizeValue(value any) (any, error) {
	encoded, err := documentJSON.Marshal(value)
	if err != nil {
		return nil, err
	}

	var normalized any
	if err := documentJSON.Unmarshal(encoded, &normalized); err != nil {
		return nil, err
	}

	return normalized, nil
}

func normalizeSets(patch store.Patch) (map[string]any, error) {
	sets := patch.SetsAsMap()
	normalized := make(map[string]any, len(sets))

	for key, value := range sets {
		v, err := normalizeValue(value)
		if err != nil {
			return nil, err
		}

		normalized[key] = v
	}

	return normalized, nil
}

func applyPatch(r *row, patch store.Patch, sets map[string]any, now time.Time) (*row, error) {
	document := make(map[string]any, len(r.document)+len(sets))
	for key, value := range r.document {
		document[key] = value
	}

	for _, increment := range patch.Increments() {
		current := decimal.Zero

		if value, ok := document[increment.Key()]; ok && value != nil {
			number, isNumber := toDecimal(value)
			if !isNumber {
				return nil, ErrNonNumericField
			}
			current = number
		}

		document[increment.Key()] = json.Number(current.Add(increment.Delta()).String())
	}

	for key, value := range sets {
		document[key] = value
	}

	dataJSON, err := documentJSON.Marshal(document)
	if err != nil {
		return nil, err
	}

	return &row{
		id:        r.id,
		version:   r.version + 1,
		seq:       r.seq,
		document:  document,
		dataJSON:  dataJSON,
		createdAt: r.createdAt,
		updatedAt: now,
	}, nil
}

/***** conditions *****/

func matches(r *row, filter store.Filter) bool {
	for _, group := range filter.Groups() {
		groupMatches := false

		for _, condition := range group {
			if evaluate(r, condition) {
				groupMatches = true
				break
			}
		}

		if !groupMatches {
			return false
		}
	}

	return true
}

func evaluate(r *row, condition store.Condition) bool { //nolint:cyclop
	value, present := r.document[condition.Key()]
	if value == nil {
		present = false
	}

	switch condition.Kind() {
	case store.ConditionVersion:
		return r.version == condition.Version()

	case store.ConditionAbsent:
		return !present

	case store.ConditionPresent:
		return present

	case store.ConditionEquals:
		want, err := normalizeValue(condition.Value())
		if err != nil || !present {
			return false
		}
		return equalValues(value, want)

	case store.ConditionGreaterThan:
		number, ok := toDecimal(value)
		return ok && number.GreaterThan(condition.Number())

	case store.ConditionLessThan:
		number, ok := toDecimal(value)
		return ok && number.LessThan(condition.Number())

	case store.ConditionAtLeast:
		number, ok := toDecimal(value)
		return ok && number.GreaterThanOrEqual(condition.Number())

	case store.ConditionLessThanField:
		number, ok := toDecimal(value)
		other, otherOK := toDecimal(r.document[condition.OtherKey()])
		return ok && otherOK && number.LessThan(other)

	case store.ConditionBefore:
		instant, ok := toTime(value)
		return ok && instant.Before(condition.Instant())

	case store.ConditionNotBefore:
		instant, ok := toTime(value)
		return ok && !instant.Before(condition.Instant())

	case store.ConditionContainsFold:
		text, ok := value.(string)
		return ok && strings.Contains(strings.ToLower(text), strings.ToLower(condition.Text()))

	default:
		return false
	}
}

func toDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case json.Number:
		d, err := decimal.NewFromString(string(v))
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(v)
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(v), true
	default:
		return decimal.Decimal{}, false
	}
}

func toTime(value any) (time.Time, bool) {
	text, ok := value.(string)
	if !ok {
		return time.Time{}, false
	}

	instant, err := time.Parse(time.RFC3339Nano, text)

	return instant, err == nil
}

func equalValues(a, b any) bool {
	aNumber, aIsNumber := a.(json.Number)
	bNumber, bIsNumber := b.(json.Number)

	if aIsNumber && bIsNumber {
		aDecimal, aOK := toDecimal(aNumber)
		bDecimal, bOK := toDecimal(bNumber)
		return aOK && bOK && aDecimal.Equal(bDecimal)
	}

	return reflect.DeepEqual(a, b)
}

/***** ordering *****/

func sortRows(rows []*row, orders []store.Order) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, order := range orders {
			c := compareRows(rows[i], rows[j], order)
			if c != 0 {
				if order.Direction() == store.Descending {
					return c > 0
				}
				return c < 0
			}
		}

		return rows[i].seq < rows[j].seq
	})
}

// compareRows orders missing values after all others, like NULLS LAST in ascending SQL order.
func compareRows(a, b *row, order store.Order) int {
	if order.ByCreation() {
		return compareInt(a.seq, b.seq)
	}

	aValue, aOK := a.document[order.Key()]
	bValue, bOK := b.document[order.Key()]
	aOK = aOK && aValue != nil
	bOK = bOK && bValue != nil

	switch {
	case !aOK && !bOK:
		return 0
	case !aOK:
		return 1
	case !bOK:
		return -1
	}

	aRank, bRank := typeRank(aValue), typeRank(bValue)
	if aRank != bRank {
		return compareInt(int64(aRank), int64(bRank))
	}

	switch av := aValue.(type) {
	case string:
		return strings.Compare(av, bValue.(string))
	case json.Number:
		aDecimal, _ := toDecimal(av)
		bDecimal, _ := toDecimal(bValue)
		return aDecimal.Cmp(bDecimal)
	case bool:
		return compareInt(boolToInt(av), boolToInt(bValue.(bool)))
	default:
		return 0
	}
}

func typeRank(value any) int {
	switch value.(type) {
	case string:
		return 1
	case json.Number:
		return 2
	case bool:
		return 3
	default:
		return 4
	}
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}

	return 0
}
