package postgresengine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/store"
)

const (
	dialectPostgres = "postgres"
	colID           = "id"
	colVersion      = "version"
	colData         = "data"
	colCreatedAt    = "created_at"
	colUpdatedAt    = "updated_at"
	colSeq          = "seq"
	castUUID        = "?::uuid"
	castJsonb       = "?::jsonb"
	castNumeric     = "?::numeric"
	castTimestamp   = "?::timestamptz"
	selectIDAsText  = "id::text"
	versionPlusOne  = "version + 1"
	currentTime     = "NOW()"
)

var literalJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// fieldText is the text value of a top level document field, NULL when missing.
func fieldText(key string) string {
	return fmt.Sprintf("%s->>'%s'", colData, key)
}

// fieldJSON is the jsonb value of a top level document field, used for ordering.
func fieldJSON(key string) string {
	return fmt.Sprintf("%s->'%s'", colData, key)
}

func fieldNumeric(key string) string {
	return fmt.Sprintf("(%s)::numeric", fieldText(key))
}

func fieldTimestamp(key string) string {
	return fmt.Sprintf("(%s)::timestamptz", fieldText(key))
}

// escapeLike escapes the LIKE wildcards with the default backslash escape character.
func escapeLike(text string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(text)
}

func (s *Store) buildSelectQuery(table string, filter store.Filter) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(table).
		Select(goqu.L(selectIDAsText), goqu.C(colVersion), goqu.C(colData), goqu.C(colCreatedAt), goqu.C(colUpdatedAt))

	where, err := whereExpression(filter)
	if err != nil {
		return "", err
	}

	if where != nil {
		selectStmt = selectStmt.Where(where)
	}

	orderings := make([]exp.OrderedExpression, 0, len(filter.Orders())+1)
	for _, order := range filter.Orders() {
		var orderable exp.Orderable = goqu.L(fieldJSON(order.Key()))
		if order.ByCreation() {
			orderable = goqu.C(colSeq)
		}

		if order.Direction() == store.Descending {
			orderings = append(orderings, orderable.Desc())
		} else {
			orderings = append(orderings, orderable.Asc())
		}
	}
	orderings = append(orderings, goqu.C(colSeq).Asc())
	selectStmt = selectStmt.Order(orderings...)

	if filter.Limit() > 0 {
		selectStmt = selectStmt.Limit(uint(filter.Limit()))
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(store.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (s *Store) buildInsertQuery(table string, record store.StorableRecord) (sqlQueryString, error) {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(table).
		Cols(colID, colData).
		Vals(goqu.Vals{goqu.L(castUUID, record.ID), goqu.L(castJsonb, string(record.DataJSON))}).
		Returning(goqu.L(selectIDAsText), goqu.C(colVersion), goqu.C(colData), goqu.C(colCreatedAt), goqu.C(colUpdatedAt))

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(store.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (s *Store) buildUpdateQuery(table string, filter store.Filter, patch store.Patch) (sqlQueryString, error) {
	dataExpression, err := patchExpression(patch)
	if err != nil {
		return "", err
	}

	updateStmt := goqu.Dialect(dialectPostgres).
		Update(table).
		Set(goqu.Record{
			colData:      dataExpression,
			colVersion:   goqu.L(versionPlusOne),
			colUpdatedAt: goqu.L(currentTime),
		})

	where, err := whereExpression(filter)
	if err != nil {
		return "", err
	}

	if where != nil {
		updateStmt = updateStmt.Where(where)
	}

	sqlQuery, _, toSQLErr := updateStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(store.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (s *Store) buildDeleteQuery(table string, filter store.Filter) (sqlQueryString, error) {
	deleteStmt := goqu.Dialect(dialectPostgres).Delete(table)

	where, err := whereExpression(filter)
	if err != nil {
		return "", err
	}

	if where != nil {
		deleteStmt = deleteStmt.Where(where)
	}

	sqlQuery, _, toSQLErr := deleteStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(store.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (s *Store) buildChangeQuery(change store.Change) (sqlQueryString, error) {
	switch change.Kind() {
	case store.ChangeInsert:
		return s.buildInsertQuery(change.Table(), change.Record())
	case store.ChangeUpdate:
		return s.buildUpdateQuery(change.Table(), change.Filter(), change.Patch())
	default:
		return s.buildDeleteQuery(change.Table(), change.Filter())
	}
}

// whereExpression ANDs the filter's groups, ORing the conditions within each group.
// It returns nil for a filter without conditions.
func whereExpression(filter store.Filter) (exp.Expression, error) {
	if len(filter.Groups()) == 0 {
		return nil, nil //nolint:nilnil
	}

	groupExpressions := make([]exp.Expression, 0, len(filter.Groups()))

	for _, group := range filter.Groups() {
		conditionExpressions := make([]exp.Expression, 0, len(group))

		for _, condition := range group {
			expression, err := conditionExpression(condition)
			if err != nil {
				return nil, err
			}

			conditionExpressions = append(conditionExpressions, expression)
		}

		groupExpressions = append(groupExpressions, goqu.Or(conditionExpressions...))
	}

	return goqu.And(groupExpressions...), nil
}

func conditionExpression(condition store.Condition) (exp.Expression, error) { //nolint:cyclop
	key := condition.Key()

	switch condition.Kind() {
	case store.ConditionVersion:
		return goqu.C(colVersion).Eq(condition.Version()), nil

	case store.ConditionEquals:
		containment, err := literalJSON.Marshal(map[string]any{key: condition.Value()})
		if err != nil {
			return nil, errors.Join(store.ErrBuildingQueryFailed, err)
		}
		return goqu.L(colData+" @> "+castJsonb, string(containment)), nil

	case store.ConditionGreaterThan:
		return goqu.L(fieldNumeric(key)+" > "+castNumeric, condition.Number().String()), nil

	case store.ConditionLessThan:
		return goqu.L(fieldNumeric(key)+" < "+castNumeric, condition.Number().String()), nil

	case store.ConditionAtLeast:
		return goqu.L(fieldNumeric(key)+" >= "+castNumeric, condition.Number().String()), nil

	case store.ConditionLessThanField:
		return goqu.L(fieldNumeric(key) + " < " + fieldNumeric(condition.OtherKey())), nil

	case store.ConditionAbsent:
		return goqu.L(fieldText(key) + " IS NULL"), nil

	case store.ConditionPresent:
		return goqu.L(fieldText(key) + " IS NOT NULL"), nil

	case store.ConditionBefore:
		return goqu.L(fieldTimestamp(key)+" < "+castTimestamp, condition.Instant().UTC().Format(time.RFC3339Nano)), nil

	case store.ConditionNotBefore:
		return goqu.L(fieldTimestamp(key)+" >= "+castTimestamp, condition.Instant().UTC().Format(time.RFC3339Nano)), nil

	case store.ConditionContainsFold:
		return goqu.L(fieldText(key)+" ILIKE ?", "%"+escapeLike(condition.Text())+"%"), nil

	default:
		return nil, errors.Join(store.ErrBuildingQueryFailed, fmt.Errorf("unsupported condition kind %d", condition.Kind()))
	}
}

// patchExpression nests one jsonb_set per increment and merges all assignments with ||.
func patchExpression(patch store.Patch) (exp.LiteralExpression, error) {
	expression := colData

	for _, increment := range patch.Increments() {
		expression = fmt.Sprintf(
			"jsonb_set(%s, '{%s}', to_jsonb(COALESCE(%s, 0) + %s))",
			expression,
			increment.Key(),
			fieldNumeric(increment.Key()),
			increment.Delta().String(),
		)
	}

	if len(patch.Sets()) == 0 {
		return goqu.L(expression), nil
	}

	sets, err := literalJSON.Marshal(patch.SetsAsMap())
	if err != nil {
		return nil, errors.Join(store.ErrBuildingQueryFailed, err)
	}

	return goqu.L(expression+" || "+castJsonb, string(sets)), nil
}
