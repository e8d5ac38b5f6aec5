package qdrant

import (
	"fmt"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/fathomdata/retrieval/pkg/vectordb"
)

// ── Filter conversion ────────────────────────────────────────────────────────

// convertFilterSet converts a vectordb.FilterSet to a Qdrant filter.
func convertFilterSet(filters *vectordb.FilterSet) *qdrant.Filter {
	if filters == nil {
		return nil
	}

	filter := &qdrant.Filter{}

	if filters.Must != nil {
		filter.Must = convertConditionSet(filters.Must)
	}
	if filters.Should != nil {
		filter.Should = convertConditionSet(filters.Should)
	}
	if filters.MustNot != nil {
		filter.MustNot = convertConditionSet(filters.MustNot)
	}

	if len(filter.Must) == 0 && len(filter.Should) == 0 && len(filter.MustNot) == 0 {
		return nil
	}

	return filter
}

// convertConditionSet converts a vectordb.ConditionSet to Qdrant conditions.
func convertConditionSet(cs *vectordb.ConditionSet) []*qdrant.Condition {
	if cs == nil {
		return nil
	}

	var conditions []*qdrant.Condition
	for _, c := range cs.Conditions {
		for _, cond := range convertCondition(c) {
			if cond != nil {
				conditions = append(conditions, cond)
			}
		}
	}
	return conditions
}

// convertCondition converts a single vectordb.FilterCondition to Qdrant
// conditions. Unsupported condition or value types convert to nothing
// rather than failing: the filter just doesn't constrain on them.
func convertCondition(c vectordb.FilterCondition) []*qdrant.Condition {
	switch cond := c.(type) {
	case *vectordb.MatchCondition:
		return convertMatchCondition(cond)
	case *vectordb.MatchAnyCondition:
		return convertMatchAnyCondition(cond)
	case *vectordb.MatchTextCondition:
		key := vectordb.ResolveFieldKey(cond.Field, cond.FieldType)
		return []*qdrant.Condition{qdrant.NewMatchText(key, cond.Token)}
	case *vectordb.NumericRangeCondition:
		return convertNumericRangeCondition(cond)
	case *vectordb.TimeRangeCondition:
		return convertTimeRangeCondition(cond)
	default:
		return nil
	}
}

func convertMatchCondition(c *vectordb.MatchCondition) []*qdrant.Condition {
	key := vectordb.ResolveFieldKey(c.Field, c.FieldType)
	switch v := c.Value.(type) {
	case string:
		return []*qdrant.Condition{qdrant.NewMatch(key, v)}
	case bool:
		return []*qdrant.Condition{qdrant.NewMatchBool(key, v)}
	case int:
		return []*qdrant.Condition{qdrant.NewMatchInt(key, int64(v))}
	case int64:
		return []*qdrant.Condition{qdrant.NewMatchInt(key, v)}
	case float64:
		// JSON numbers decode as float64
		return []*qdrant.Condition{qdrant.NewMatchInt(key, int64(v))}
	default:
		return nil
	}
}

func convertMatchAnyCondition(c *vectordb.MatchAnyCondition) []*qdrant.Condition {
	if len(c.Values) == 0 {
		return nil
	}
	key := vectordb.ResolveFieldKey(c.Field, c.FieldType)

	// Detect type from first value
	switch c.Values[0].(type) {
	case string:
		strs := make([]string, 0, len(c.Values))
		for _, v := range c.Values {
			if s, ok := v.(string); ok {
				strs = append(strs, s)
			}
		}
		return []*qdrant.Condition{qdrant.NewMatchKeywords(key, strs...)}
	case int, int64, float64:
		ints := make([]int64, 0, len(c.Values))
		for _, v := range c.Values {
			switch n := v.(type) {
			case int:
				ints = append(ints, int64(n))
			case int64:
				ints = append(ints, n)
			case float64:
				ints = append(ints, int64(n))
			}
		}
		return []*qdrant.Condition{qdrant.NewMatchInts(key, ints...)}
	}
	return nil
}

func convertNumericRangeCondition(c *vectordb.NumericRangeCondition) []*qdrant.Condition {
	r := c.Range
	if r.Gt == nil && r.Gte == nil && r.Lt == nil && r.Lte == nil {
		return nil
	}
	key := vectordb.ResolveFieldKey(c.Field, c.FieldType)
	return []*qdrant.Condition{qdrant.NewRange(key, &qdrant.Range{
		Gt:  r.Gt,
		Gte: r.Gte,
		Lt:  r.Lt,
		Lte: r.Lte,
	})}
}

func convertTimeRangeCondition(c *vectordb.TimeRangeCondition) []*qdrant.Condition {
	r := c.Range
	if r.Gt == nil && r.Gte == nil && r.Lt == nil && r.Lte == nil {
		return nil
	}
	key := vectordb.ResolveFieldKey(c.Field, c.FieldType)
	return []*qdrant.Condition{qdrant.NewDatetimeRange(key, &qdrant.DatetimeRange{
		Gt:  toTimestamp(r.Gt),
		Gte: toTimestamp(r.Gte),
		Lt:  toTimestamp(r.Lt),
		Lte: toTimestamp(r.Lte),
	})}
}

// toTimestamp converts a *time.Time to *timestamppb.Timestamp (nil-safe).
func toTimestamp(t *time.Time) *timestamppb.Timestamp {
	if t == nil {
		return nil
	}
	return timestamppb.New(*t)
}

// ── Result conversion ────────────────────────────────────────────────────────

// parseScoredPoints converts a Qdrant query response to vectordb.ScoredPoint.
func parseScoredPoints(resp []*qdrant.ScoredPoint) ([]vectordb.ScoredPoint, error) {
	results := make([]vectordb.ScoredPoint, 0, len(resp))
	for _, r := range resp {
		id, err := extractPointID(r.Id)
		if err != nil {
			return nil, err
		}
		results = append(results, vectordb.ScoredPoint{
			ID:      id,
			Score:   r.Score,
			Payload: convertPayload(r.Payload),
		})
	}
	return results, nil
}

// extractPointID extracts a string ID from Qdrant's PointId type.
func extractPointID(id *qdrant.PointId) (string, error) {
	if id == nil {
		return "", fmt.Errorf("nil point ID")
	}
	switch v := id.PointIdOptions.(type) {
	case *qdrant.PointId_Num:
		return fmt.Sprintf("%d", v.Num), nil
	case *qdrant.PointId_Uuid:
		return v.Uuid, nil
	default:
		return "", fmt.Errorf("unexpected PointId type: %T", v)
	}
}

// convertPayload converts Qdrant's protobuf payload to a generic map.
func convertPayload(payload map[string]*qdrant.Value) map[string]any {
	if payload == nil {
		return nil
	}
	result := make(map[string]any, len(payload))
	for k, v := range payload {
		result[k] = extractValue(v)
	}
	return result
}

// extractValue recursively converts a Qdrant Value to a Go native type.
func extractValue(v *qdrant.Value) any {
	if v == nil {
		return nil
	}
	switch val := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_NullValue:
		return nil
	case *qdrant.Value_StructValue:
		if val.StructValue == nil {
			return nil
		}
		return convertPayload(val.StructValue.Fields)
	case *qdrant.Value_ListValue:
		if val.ListValue == nil {
			return nil
		}
		items := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			items[i] = extractValue(item)
		}
		return items
	default:
		return nil
	}
}
