package vectordb

import "time"

// Well-known payload fields. Documents are heterogeneous: any of these
// may be absent, and accessors report absence instead of failing.
const (
	PayloadFieldText      = "text"
	PayloadFieldContent   = "content"
	PayloadFieldCreatedAt = "created_at"
)

// timestampLayouts are the formats accepted when parsing payload
// timestamps, tried in order.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// TextOf returns the document text from a payload, preferring the
// "text" field and falling back to "content". The second return value
// is false when neither field holds a non-empty string.
func TextOf(payload map[string]any) (string, bool) {
	for _, field := range []string{PayloadFieldText, PayloadFieldContent} {
		if s, ok := payload[field].(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// MetadataOf returns the "metadata" sub-mapping of a payload, or false
// when absent or not a mapping.
func MetadataOf(payload map[string]any) (map[string]any, bool) {
	m, ok := payload[MetadataPrefix].(map[string]any)
	if !ok || m == nil {
		return nil, false
	}
	return m, true
}

// TimestampOf extracts a document timestamp from a payload. It checks
// the top-level "created_at" field first, then "metadata.created_at".
// Unparseable or missing values report false; they are never an error.
func TimestampOf(payload map[string]any) (time.Time, bool) {
	if ts, ok := parseTimestampValue(payload[PayloadFieldCreatedAt]); ok {
		return ts, true
	}
	if meta, ok := MetadataOf(payload); ok {
		if ts, ok := parseTimestampValue(meta[PayloadFieldCreatedAt]); ok {
			return ts, true
		}
	}
	return time.Time{}, false
}

func parseTimestampValue(v any) (time.Time, bool) {
	switch val := v.(type) {
	case string:
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, val); err == nil {
				return ts, true
			}
		}
	case time.Time:
		return val, true
	case int64:
		// Unix seconds, the other common encoding in ingested payloads.
		if val > 0 {
			return time.Unix(val, 0).UTC(), true
		}
	case float64:
		if val > 0 {
			return time.Unix(int64(val), 0).UTC(), true
		}
	}
	return time.Time{}, false
}
