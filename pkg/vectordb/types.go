package vectordb

// VectorSearchRequest describes a single similarity search query.
type VectorSearchRequest struct {
	// Collection is the target collection to search in
	Collection string `json:"collection"`

	// Vector is the query embedding to find similar points for
	Vector []float32 `json:"vector"`

	// Limit is the maximum number of results to return
	Limit int `json:"limit"`

	// ScoreThreshold drops results whose similarity is below this value.
	// Zero means no threshold.
	ScoreThreshold float32 `json:"scoreThreshold,omitempty"`

	// Filter is optional structural filtering (AND/OR/NOT logic)
	Filter *FilterSet `json:"filter,omitempty"`
}

// ScanRequest describes a filtered scan without vector similarity.
type ScanRequest struct {
	// Collection is the target collection to scan
	Collection string `json:"collection"`

	// Filter selects the points to retrieve. Required: an unfiltered
	// scan of a whole collection is never what the retrieval core wants.
	Filter *FilterSet `json:"filter"`

	// Limit caps the number of points returned by the scan
	Limit int `json:"limit"`
}

// ScoredPoint is a single similarity search result.
// Payload is backend-agnostic, converted to map[string]any.
type ScoredPoint struct {
	// ID is the unique identifier of the matched point
	ID string `json:"id"`

	// Score is the similarity score in the backend's native scale
	// (higher = more similar for cosine)
	Score float32 `json:"score"`

	// Payload contains the attributes stored with the vector
	Payload map[string]any `json:"payload"`
}

// Point is a stored document without a similarity score, as returned by
// FilteredScan and accepted by Upsert.
type Point struct {
	// ID is the unique identifier for this point
	ID string `json:"id"`

	// Vector is the dense embedding. May be empty on scan results when
	// the caller only needs the payload.
	Vector []float32 `json:"vector,omitempty"`

	// Payload is the attribute mapping stored with the vector
	Payload map[string]any `json:"payload,omitempty"`
}
