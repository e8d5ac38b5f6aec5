package search

import (
	"context"
	"sync"

	"github.com/fathomdata/retrieval/pkg/vectordb"
)

// fakeStore is an in-memory vectordb.Store with canned per-collection
// results and injectable failures.
type fakeStore struct {
	mu sync.Mutex

	searchResults map[string][]vectordb.ScoredPoint
	scanResults   map[string][]vectordb.Point

	existsErr map[string]error
	searchErr map[string]error
	scanErr   map[string]error

	// Collections listed here block reads until the context expires.
	stalled map[string]bool

	upserted map[string][]vectordb.Point
	deleted  map[string][]string
	ensured  map[string]uint64

	searchCalls []vectordb.VectorSearchRequest
	scanCalls   []vectordb.ScanRequest
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		searchResults: map[string][]vectordb.ScoredPoint{},
		scanResults:   map[string][]vectordb.Point{},
		existsErr:     map[string]error{},
		searchErr:     map[string]error{},
		scanErr:       map[string]error{},
		stalled:       map[string]bool{},
		upserted:      map[string][]vectordb.Point{},
		deleted:       map[string][]string{},
		ensured:       map[string]uint64{},
	}
}

func (s *fakeStore) CollectionExists(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.existsErr[name]; err != nil {
		return false, err
	}
	if _, ok := s.searchResults[name]; ok {
		return true, nil
	}
	if _, ok := s.scanResults[name]; ok {
		return true, nil
	}
	if _, ok := s.ensured[name]; ok {
		return true, nil
	}
	return false, nil
}

func (s *fakeStore) VectorSearch(ctx context.Context, req vectordb.VectorSearchRequest) ([]vectordb.ScoredPoint, error) {
	s.mu.Lock()
	s.searchCalls = append(s.searchCalls, req)
	err := s.searchErr[req.Collection]
	results := s.searchResults[req.Collection]
	stalled := s.stalled[req.Collection]
	s.mu.Unlock()

	if stalled {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *fakeStore) FilteredScan(ctx context.Context, req vectordb.ScanRequest) ([]vectordb.Point, error) {
	s.mu.Lock()
	s.scanCalls = append(s.scanCalls, req)
	err := s.scanErr[req.Collection]
	results := s.scanResults[req.Collection]
	stalled := s.stalled[req.Collection]
	s.mu.Unlock()

	if stalled {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *fakeStore) Upsert(_ context.Context, collection string, points []vectordb.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserted[collection] = append(s.upserted[collection], points...)
	return nil
}

func (s *fakeStore) Delete(_ context.Context, collection string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted[collection] = append(s.deleted[collection], ids...)
	return nil
}

func (s *fakeStore) EnsureCollection(_ context.Context, name string, vectorSize uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensured[name] = vectorSize
	return nil
}

func (s *fakeStore) ListCollections(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.searchResults))
	for name := range s.searchResults {
		names = append(names, name)
	}
	return names, nil
}

var _ vectordb.Store = (*fakeStore)(nil)

// fakeProvider returns a fixed embedding (or error) for every text.
type fakeProvider struct {
	vector []float32
	err    error
}

func (p fakeProvider) Embed(context.Context, string) ([]float32, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.vector, nil
}
