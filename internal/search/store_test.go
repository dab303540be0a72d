package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lawyer-search-backend/config"
	"lawyer-search-backend/internal/errorstore"
	"lawyer-search-backend/internal/httpresp"
	"lawyer-search-backend/internal/lawyerapi"
	"lawyer-search-backend/internal/localstorage"
	"lawyer-search-backend/internal/model"
)

type searchCall struct {
	term     string
	page     int
	pageSize int
	token    string
}

// mockSearcher is a mock implementation of the Searcher interface.
type mockSearcher struct {
	mu       sync.Mutex
	calls    []searchCall
	SearchFn func(ctx context.Context, term string, page, pageSize int, token string) httpresp.Response[model.LawyerSearchResult]
}

func (m *mockSearcher) Search(ctx context.Context, term string, page, pageSize int, token string) httpresp.Response[model.LawyerSearchResult] {
	m.mu.Lock()
	m.calls = append(m.calls, searchCall{term, page, pageSize, token})
	m.mu.Unlock()
	return m.SearchFn(ctx, term, page, pageSize, token)
}

func (m *mockSearcher) Calls() []searchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]searchCall(nil), m.calls...)
}

func returning(resp httpresp.Response[model.LawyerSearchResult]) *mockSearcher {
	return &mockSearcher{
		SearchFn: func(context.Context, string, int, int, string) httpresp.Response[model.LawyerSearchResult] {
			return resp
		},
	}
}

// failingStorage fails every read.
type failingStorage struct{ localstorage.Storage }

func (failingStorage) GetItem(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}

func newFixture(t *testing.T, token string, searcher Searcher) (*Store, *errorstore.Store) {
	t.Helper()
	tokens := localstorage.NewMemoryStorage()
	if token != "" {
		require.NoError(t, tokens.SetItem(context.Background(), localstorage.AccessTokenKey, token))
	}
	errs := errorstore.New(nil)
	return NewStore(searcher, tokens, errs, 10), errs
}

func smithResult() model.LawyerSearchResult {
	return model.LawyerSearchResult{
		Results: []model.LawyerSearchModel{
			{ID: "7", FirstName: "Jane", LastName: "Smith", Languages: []string{"en", "de"}},
		},
		TotalCount: 1,
		TotalPages: 1,
		Page:       1,
	}
}

func TestNewStore_InitialState(t *testing.T) {
	s, _ := newFixture(t, "", returning(nil))

	assert.Equal(t, model.EmptyLawyerSearchResult(), s.LawyerSearchResult())
	assert.False(t, s.Pending())
}

func TestSearchLawyers(t *testing.T) {
	emptyPageOne := model.LawyerSearchResult{Results: []model.LawyerSearchModel{}, Page: 1}

	testCases := []struct {
		name          string
		token         string
		resp          httpresp.Response[model.LawyerSearchResult]
		expectedErr   error
		expectCall    bool
		expectedState model.LawyerSearchResult
		expectedError errorstore.ErrorState
	}{
		{
			name:          "success replaces result",
			token:         "abc",
			resp:          httpresp.Ok(emptyPageOne),
			expectCall:    true,
			expectedState: emptyPageOne,
		},
		{
			name:          "success with results",
			token:         "abc",
			resp:          httpresp.Ok(smithResult()),
			expectCall:    true,
			expectedState: smithResult(),
		},
		{
			name:          "error response goes to error store",
			token:         "abc",
			resp:          httpresp.Fail[model.LawyerSearchResult]("Not found", "..."),
			expectCall:    true,
			expectedState: model.EmptyLawyerSearchResult(),
			expectedError: errorstore.ErrorState{Visible: true, Message: "Not found", Details: "..."},
		},
		{
			name:          "no token is a silent no-op",
			token:         "",
			resp:          httpresp.Ok(smithResult()),
			expectedErr:   ErrNotAuthenticated,
			expectCall:    false,
			expectedState: model.EmptyLawyerSearchResult(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			searcher := returning(tc.resp)
			s, errs := newFixture(t, tc.token, searcher)

			err := s.SearchLawyers(context.Background(), "Smith", 1)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
			}

			if tc.expectCall {
				assert.Equal(t, []searchCall{{"Smith", 1, 10, tc.token}}, searcher.Calls())
			} else {
				assert.Empty(t, searcher.Calls())
			}

			assert.Equal(t, tc.expectedState, s.LawyerSearchResult())

			state := errs.State()
			state.ShownAt = time.Time{}
			assert.Equal(t, tc.expectedError, state)
			assert.False(t, s.Pending())
		})
	}
}

func TestSearchLawyers_ErrorKeepsPreviousResult(t *testing.T) {
	searcher := returning(httpresp.Ok(smithResult()))
	s, errs := newFixture(t, "abc", searcher)
	require.NoError(t, s.SearchLawyers(context.Background(), "Smith", 1))

	searcher.SearchFn = func(context.Context, string, int, int, string) httpresp.Response[model.LawyerSearchResult] {
		return httpresp.Fail[model.LawyerSearchResult]("Server error", map[string]any{"status": 500})
	}
	require.NoError(t, s.SearchLawyers(context.Background(), "Smith", 2))

	assert.Equal(t, smithResult(), s.LawyerSearchResult())
	assert.Equal(t, "Server error", errs.State().Message)
}

func TestSearchLawyers_FullReplacement(t *testing.T) {
	searcher := returning(httpresp.Ok(smithResult()))
	s, _ := newFixture(t, "abc", searcher)
	require.NoError(t, s.SearchLawyers(context.Background(), "Smith", 1))

	second := model.LawyerSearchResult{Results: []model.LawyerSearchModel{}, TotalCount: 0, TotalPages: 0, Page: 3}
	searcher.SearchFn = func(context.Context, string, int, int, string) httpresp.Response[model.LawyerSearchResult] {
		return httpresp.Ok(second)
	}
	require.NoError(t, s.SearchLawyers(context.Background(), "Nobody", 3))

	assert.Equal(t, second, s.LawyerSearchResult(), "no field may survive from the previous result")
}

func TestSearchLawyers_Idempotent(t *testing.T) {
	once, _ := newFixture(t, "abc", returning(httpresp.Ok(smithResult())))
	twice, _ := newFixture(t, "abc", returning(httpresp.Ok(smithResult())))

	require.NoError(t, once.SearchLawyers(context.Background(), "Smith", 1))
	require.NoError(t, twice.SearchLawyers(context.Background(), "Smith", 1))
	require.NoError(t, twice.SearchLawyers(context.Background(), "Smith", 1))

	assert.Equal(t, once.LawyerSearchResult(), twice.LawyerSearchResult())
}

func TestSearchLawyers_TokenReadError(t *testing.T) {
	searcher := returning(httpresp.Ok(smithResult()))
	errs := errorstore.New(nil)
	s := NewStore(searcher, failingStorage{}, errs, 10)

	err := s.SearchLawyers(context.Background(), "Smith", 1)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotAuthenticated)
	assert.Empty(t, searcher.Calls())
	assert.Equal(t, errorstore.ErrorState{}, errs.State())
}

func TestSearchLawyers_CancelledContext(t *testing.T) {
	testCases := []struct {
		name string
		resp httpresp.Response[model.LawyerSearchResult]
	}{
		{name: "failure is not reported", resp: httpresp.Fail[model.LawyerSearchResult]("search service unreachable", "context canceled")},
		{name: "success is not applied", resp: httpresp.Ok(smithResult())},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, errs := newFixture(t, "abc", returning(tc.resp))
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			err := s.SearchLawyers(ctx, "Smith", 1)

			assert.ErrorIs(t, err, context.Canceled)
			assert.Equal(t, errorstore.ErrorState{}, errs.State())
			assert.Equal(t, model.EmptyLawyerSearchResult(), s.LawyerSearchResult())
			assert.False(t, s.Pending())
		})
	}
}

func TestSearchLawyers_CallerGoneDuringUpstreamCall(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer upstream.Close()

	client := lawyerapi.NewClient(&config.APIConfig{BaseURL: upstream.URL, Timeout: 10 * time.Second})
	s, errs := newFixture(t, "abc", client)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := s.SearchLawyers(ctx, "Smith", 1)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, errorstore.ErrorState{}, errs.State())
	assert.False(t, s.Pending())
}

func TestSearchLawyers_ResultIsACopy(t *testing.T) {
	s, _ := newFixture(t, "abc", returning(httpresp.Ok(smithResult())))
	require.NoError(t, s.SearchLawyers(context.Background(), "Smith", 1))

	got := s.LawyerSearchResult()
	got.Results[0].LastName = "Changed"
	got.Results[0].Languages[0] = "xx"

	assert.Equal(t, smithResult(), s.LawyerSearchResult())
}

// gatedSearcher blocks each search until its term's gate is released.
type gatedSearcher struct {
	started chan string
	gates   map[string]chan struct{}
	results map[string]model.LawyerSearchResult
}

func (g *gatedSearcher) Search(ctx context.Context, term string, page, pageSize int, token string) httpresp.Response[model.LawyerSearchResult] {
	g.started <- term
	<-g.gates[term]
	return httpresp.Ok(g.results[term])
}

func TestSearchLawyers_LastIssuedWins(t *testing.T) {
	older := model.LawyerSearchResult{Results: []model.LawyerSearchModel{{ID: "old"}}, TotalCount: 1, TotalPages: 1, Page: 1}
	newer := model.LawyerSearchResult{Results: []model.LawyerSearchModel{{ID: "new"}}, TotalCount: 1, TotalPages: 1, Page: 1}

	testCases := []struct {
		name       string
		resolveOld bool // resolve the older request first
	}{
		{name: "older response resolves last", resolveOld: false},
		{name: "older response resolves first", resolveOld: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := &gatedSearcher{
				started: make(chan string, 2),
				gates:   map[string]chan struct{}{"old": make(chan struct{}), "new": make(chan struct{})},
				results: map[string]model.LawyerSearchResult{"old": older, "new": newer},
			}
			s, _ := newFixture(t, "abc", g)

			var wg sync.WaitGroup
			search := func(term string) {
				wg.Add(1)
				go func() {
					defer wg.Done()
					assert.NoError(t, s.SearchLawyers(context.Background(), term, 1))
				}()
				<-g.started
			}
			search("old")
			search("new")
			assert.True(t, s.Pending())

			first, second := "new", "old"
			if tc.resolveOld {
				first, second = "old", "new"
			}
			close(g.gates[first])
			close(g.gates[second])
			wg.Wait()

			assert.Equal(t, newer, s.LawyerSearchResult())
			assert.False(t, s.Pending())
		})
	}
}
