package store

import "github.com/shopspring/decimal"

// FieldValue is a field assignment within a Patch.
type FieldValue struct {
	key   string
	value any
}

func (fv FieldValue) Key() string { return fv.key }
func (fv FieldValue) Value() any { return fv.value }

// FieldIncrement adds a (possibly negative) delta to a numeric field within a Patch.
// A missing field counts as zero.
type FieldIncrement struct {
	key   string
	delta decimal.Decimal
}

func (fi FieldIncrement) Key() string { return fi.key }
func (fi FieldIncrement) Delta() decimal.Decimal { return fi.delta }

// Patch describes the modification of a document: increments are applied first, then assignments.
// Every patch bumps the record version and the update timestamp.
type Patch struct {
	sets       []FieldValue
	increments []FieldIncrement
}

func (p Patch) Sets() []FieldValue {
	return p.sets
}

func (p Patch) Increments() []FieldIncrement {
	return p.increments
}

// IsEmpty reports whether the patch changes nothing besides the version.
func (p Patch) IsEmpty() bool {
	return len(p.sets) == 0 && len(p.increments) == 0
}

// SetsAsMap returns the assignments keyed by field, later assignments win.
func (p Patch) SetsAsMap() map[string]any {
	m := make(map[string]any, len(p.sets))
	for _, set := range p.sets {
		m[set.key] = set.value
	}

	return m
}

// Validate checks all field keys so that engines can embed them in queries.
func (p Patch) Validate() error {
	for _, set := range p.sets {
		if !ValidFieldKey(set.key) {
			return ErrInvalidFieldKey
		}
	}

	for _, inc := range p.increments {
		if !ValidFieldKey(inc.key) {
			return ErrInvalidFieldKey
		}
	}

	return nil
}

// PatchBuilder builds a Patch.
type PatchBuilder interface {
	Set(key string, value any) PatchBuilder
	Increment(key string, delta int64) PatchBuilder
	IncrementAmount(key string, delta decimal.Decimal) PatchBuilder
	Finalize() Patch
}

type patchBuilder struct {
	patch Patch
}

// BuildPatch starts a new PatchBuilder.
func BuildPatch() PatchBuilder {
	return &patchBuilder{}
}

// Set assigns a JSON-encodable value, nil stores null.
func (pb *patchBuilder) Set(key string, value any) PatchBuilder {
	pb.patch.sets = append(pb.patch.sets, FieldValue{key: key, value: value})
	return pb
}

func (pb *patchBuilder) Increment(key string, delta int64) PatchBuilder {
	return pb.IncrementAmount(key, decimal.NewFromInt(delta))
}

func (pb *patchBuilder) IncrementAmount(key string, delta decimal.Decimal) PatchBuilder {
	pb.patch.increments = append(pb.patch.increments, FieldIncrement{key: key, delta: delta})
	return pb
}

func (pb *patchBuilder) Finalize() Patch {
	return pb.patch
}
