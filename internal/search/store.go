// Package search holds the current page of lawyer search results and runs
// searches against the upstream service.
package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"lawyer-search-backend/internal/httpresp"
	"lawyer-search-backend/internal/localstorage"
	"lawyer-search-backend/internal/model"
)

// ErrNotAuthenticated is returned when no access token is stored.
var ErrNotAuthenticated = errors.New("search: not authenticated")

// Searcher performs the upstream search call.
type Searcher interface {
	Search(ctx context.Context, searchTerm string, page, pageSize int, token string) httpresp.Response[model.LawyerSearchResult]
}

// ErrorReporter surfaces a failed search to the user.
type ErrorReporter interface {
	ShowError(message string, details any)
}

// Store holds the result of the most recently issued successful search.
type Store struct {
	searcher Searcher
	tokens   localstorage.Storage
	errors   ErrorReporter
	pageSize int

	mu       sync.RWMutex
	result   model.LawyerSearchResult
	issued   uint64
	inFlight int
}

// NewStore creates a search store with an empty result.
func NewStore(searcher Searcher, tokens localstorage.Storage, reporter ErrorReporter, pageSize int) *Store {
	return &Store{
		searcher: searcher,
		tokens:   tokens,
		errors:   reporter,
		pageSize: pageSize,
		result:   model.EmptyLawyerSearchResult(),
	}
}

// LawyerSearchResult returns a copy of the held result.
func (s *Store) LawyerSearchResult() model.LawyerSearchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result.Clone()
}

// Pending reports whether a search is awaiting its response.
func (s *Store) Pending() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight > 0
}

// SearchLawyers runs a search for searchTerm at page.
//
// Without a stored access token nothing happens and ErrNotAuthenticated is
// returned; the error reporter is not called. If ctx ends before the search
// returns, the response is discarded and ctx.Err() is returned. An upstream
// failure is handed to the error reporter and SearchLawyers returns nil. A
// successful response
// replaces the held result only if no later search was issued meanwhile.
func (s *Store) SearchLawyers(ctx context.Context, searchTerm string, page int) error {
	token, ok, err := s.tokens.GetItem(ctx, localstorage.AccessTokenKey)
	if err != nil {
		return fmt.Errorf("failed to read access token: %w", err)
	}
	if !ok {
		return ErrNotAuthenticated
	}

	seq := s.begin()
	resp := s.searcher.Search(ctx, searchTerm, page, s.pageSize, token)
	if err := ctx.Err(); err != nil {
		// The caller gave up; whatever the searcher returned is not the backend's answer.
		s.finish(seq, nil)
		return err
	}

	httpresp.Match(resp,
		func(data model.LawyerSearchResult) {
			s.finish(seq, &data)
		},
		func(f httpresp.Failure) {
			s.finish(seq, nil)
			s.errors.ShowError(f.Message, f.Details)
		},
	)
	return nil
}

func (s *Store) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	s.inFlight++
	return s.issued
}

func (s *Store) finish(seq uint64, data *model.LawyerSearchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--
	if data == nil {
		return
	}
	if seq != s.issued {
		log.Printf("Dropping stale search response %d, latest is %d", seq, s.issued)
		return
	}
	s.result = data.Clone()
}
