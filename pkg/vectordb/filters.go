package vectordb

import (
	"strings"
	"time"
)

// MetadataPrefix is the payload sub-mapping where user-supplied document
// metadata lives. Internal fields (text, source identifiers) sit at the
// top level; everything the ingesting application attaches goes under
// "metadata.".
const MetadataPrefix = "metadata"

// FieldType indicates whether a field is internal or part of the
// user-supplied metadata sub-mapping.
type FieldType int

const (
	// InternalField - system-managed fields stored at top-level
	InternalField FieldType = iota
	// MetadataField - user-defined fields stored under the "metadata." prefix
	MetadataField
)

// FilterCondition is the marker interface for all filter conditions.
// Adapters type-switch on the concrete condition types to translate them
// into the backend's native filter language.
type FilterCondition interface {
	filterCondition()
}

// MatchCondition matches a field against an exact value
// (string, bool, int, int64, or float64).
type MatchCondition struct {
	Field     string
	Value     any
	FieldType FieldType
}

// MatchAnyCondition matches if the field value is one of the given
// values (IN operator). Values must be homogeneous.
type MatchAnyCondition struct {
	Field     string
	Values    []any
	FieldType FieldType
}

// MatchTextCondition matches points whose full-text-indexed field
// contains the given token. This is the building block of the keyword
// branch's disjunctive token filter.
type MatchTextCondition struct {
	Field     string
	Token     string
	FieldType FieldType
}

// NumericRange bounds a numeric field. Nil bounds are open.
type NumericRange struct {
	Gt  *float64
	Gte *float64
	Lt  *float64
	Lte *float64
}

// NumericRangeCondition applies a NumericRange to a field.
type NumericRangeCondition struct {
	Field     string
	Range     NumericRange
	FieldType FieldType
}

// TimeRange bounds a datetime field. Nil bounds are open.
type TimeRange struct {
	Gt  *time.Time
	Gte *time.Time
	Lt  *time.Time
	Lte *time.Time
}

// TimeRangeCondition applies a TimeRange to a field.
type TimeRangeCondition struct {
	Field     string
	Range     TimeRange
	FieldType FieldType
}

func (*MatchCondition) filterCondition()        {}
func (*MatchAnyCondition) filterCondition()     {}
func (*MatchTextCondition) filterCondition()    {}
func (*NumericRangeCondition) filterCondition() {}
func (*TimeRangeCondition) filterCondition()    {}

// ConditionSet holds the conditions of a single clause.
type ConditionSet struct {
	Conditions []FilterCondition
}

// FilterSet supports Must (AND), Should (OR), and MustNot (NOT) clauses.
//
// Example:
//
//	vectordb.NewFilterSet(
//	    vectordb.Must(vectordb.NewMatch("source_id", "orders")),
//	    vectordb.Should(
//	        vectordb.NewMatchText("text", "revenue"),
//	        vectordb.NewMatchText("text", "margin"),
//	    ),
//	)
type FilterSet struct {
	Must    *ConditionSet // AND - all conditions must match
	Should  *ConditionSet // OR - at least one condition must match
	MustNot *ConditionSet // NOT - none of the conditions may match
}

// Empty reports whether the filter set carries no conditions at all.
func (fs *FilterSet) Empty() bool {
	if fs == nil {
		return true
	}
	for _, cs := range []*ConditionSet{fs.Must, fs.Should, fs.MustNot} {
		if cs != nil && len(cs.Conditions) > 0 {
			return false
		}
	}
	return true
}

// ── FilterSet constructors ───────────────────────────────────────────────────

// NewFilterSet creates a FilterSet from the given clause builders.
func NewFilterSet(clauses ...func(*FilterSet)) *FilterSet {
	fs := &FilterSet{}
	for _, clause := range clauses {
		clause(fs)
	}
	return fs
}

// Must creates a Must clause (AND logic) with the given conditions.
func Must(conditions ...FilterCondition) func(*FilterSet) {
	return func(fs *FilterSet) {
		fs.Must = &ConditionSet{Conditions: conditions}
	}
}

// Should creates a Should clause (OR logic) with the given conditions.
func Should(conditions ...FilterCondition) func(*FilterSet) {
	return func(fs *FilterSet) {
		fs.Should = &ConditionSet{Conditions: conditions}
	}
}

// MustNot creates a MustNot clause (NOT logic) with the given conditions.
func MustNot(conditions ...FilterCondition) func(*FilterSet) {
	return func(fs *FilterSet) {
		fs.MustNot = &ConditionSet{Conditions: conditions}
	}
}

// ── Condition constructors ───────────────────────────────────────────────────

// NewMatch creates an exact-match condition for an internal field.
func NewMatch(field string, value any) *MatchCondition {
	return &MatchCondition{Field: field, Value: value, FieldType: InternalField}
}

// NewMetadataMatch creates an exact-match condition for a metadata field.
func NewMetadataMatch(field string, value any) *MatchCondition {
	return &MatchCondition{Field: field, Value: value, FieldType: MetadataField}
}

// NewMatchAny creates an IN condition for an internal field.
func NewMatchAny(field string, values ...any) *MatchAnyCondition {
	return &MatchAnyCondition{Field: field, Values: values, FieldType: InternalField}
}

// NewMatchText creates a full-text containment condition for an internal field.
func NewMatchText(field, token string) *MatchTextCondition {
	return &MatchTextCondition{Field: field, Token: token, FieldType: InternalField}
}

// NewNumericRange creates a numeric range condition for an internal field.
func NewNumericRange(field string, r NumericRange) *NumericRangeCondition {
	return &NumericRangeCondition{Field: field, Range: r, FieldType: InternalField}
}

// NewTimeRange creates a time range condition for an internal field.
func NewTimeRange(field string, r TimeRange) *TimeRangeCondition {
	return &TimeRangeCondition{Field: field, Range: r, FieldType: InternalField}
}

// NewMetadataTimeRange creates a time range condition for a metadata field.
func NewMetadataTimeRange(field string, r TimeRange) *TimeRangeCondition {
	return &TimeRangeCondition{Field: field, Range: r, FieldType: MetadataField}
}

// ResolveFieldKey returns the full payload path for a field.
// Internal fields map to themselves; metadata fields get the
// "metadata." prefix unless already qualified.
func ResolveFieldKey(field string, fieldType FieldType) string {
	if fieldType == MetadataField {
		if strings.HasPrefix(field, MetadataPrefix+".") {
			return field
		}
		return MetadataPrefix + "." + field
	}
	return field
}
