package model

// LawyerSearchModel describes one lawyer as returned by the search service.
type LawyerSearchModel struct {
	ID              string   `json:"id"`
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	Firm            string   `json:"firm,omitempty"`
	City            string   `json:"city,omitempty"`
	Canton          string   `json:"canton,omitempty"`
	Email           string   `json:"email,omitempty"`
	Languages       []string `json:"languages,omitempty"`
	Specializations []string `json:"specializations,omitempty"`
}

// LawyerSearchResult is one page of search results.
type LawyerSearchResult struct {
	Results    []LawyerSearchModel `json:"results"`
	TotalCount int                 `json:"totalCount"`
	TotalPages int                 `json:"totalPages"`
	Page       int                 `json:"page"`
}

// EmptyLawyerSearchResult returns the state held before any search succeeds.
func EmptyLawyerSearchResult() LawyerSearchResult {
	return LawyerSearchResult{Results: []LawyerSearchModel{}}
}

// Clone returns a deep copy so callers cannot mutate held state.
func (r LawyerSearchResult) Clone() LawyerSearchResult {
	out := r
	if r.Results != nil {
		out.Results = make([]LawyerSearchModel, len(r.Results))
		for i, l := range r.Results {
			l.Languages = cloneStrings(l.Languages)
			l.Specializations = cloneStrings(l.Specializations)
			out.Results[i] = l
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
