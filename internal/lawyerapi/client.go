package lawyerapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"lawyer-search-backend/config"
	"lawyer-search-backend/internal/httpresp"
	"lawyer-search-backend/internal/model"
)

const searchPath = "/lawyers/search"

// maxErrorBody bounds how much of a non-JSON error body is kept as details.
const maxErrorBody = 4096

// Client calls the upstream lawyer search service.
type Client struct {
	baseURL string
	headers map[string]string
	client  *http.Client
}

// NewClient creates a client for the configured upstream service.
func NewClient(cfg *config.APIConfig) *Client {
	var transport http.RoundTripper = &http.Transport{}
	if cfg.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.HTTPProxy)
		if err != nil {
			log.Printf("Warning: Invalid proxy URL %q: %v. Search client will not use a proxy.", cfg.HTTPProxy, err)
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		headers: cfg.Headers,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
	}
}

// Search fetches one page of lawyers matching searchTerm. Every outcome,
// including transport failures, is reported through the returned envelope.
func (c *Client) Search(ctx context.Context, searchTerm string, page, pageSize int, token string) httpresp.Response[model.LawyerSearchResult] {
	req, err := c.newSearchRequest(ctx, searchTerm, page, pageSize, token)
	if err != nil {
		return httpresp.Fail[model.LawyerSearchResult]("failed to create request", err.Error())
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("Lawyer search request %s failed: %v", req.Header.Get("X-Request-ID"), err)
		return httpresp.Fail[model.LawyerSearchResult]("search service unreachable", err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return httpresp.Fail[model.LawyerSearchResult]("failed to read response body", err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeFailure[model.LawyerSearchResult](resp.StatusCode, body)
	}

	var result model.LawyerSearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return httpresp.Fail[model.LawyerSearchResult]("failed to decode search response", err.Error())
	}
	if result.Results == nil {
		result.Results = []model.LawyerSearchModel{}
	}
	return httpresp.Ok(result)
}

func (c *Client) newSearchRequest(ctx context.Context, searchTerm string, page, pageSize int, token string) (*http.Request, error) {
	u, err := url.Parse(c.baseURL + searchPath)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", c.baseURL, err)
	}
	q := u.Query()
	q.Set("searchTerm", searchTerm)
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// errorBody is the shape of an error response from the search service.
type errorBody struct {
	Message string `json:"message"`
	Details any    `json:"details"`
}

func decodeFailure[T any](status int, body []byte) httpresp.Response[T] {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Message != "" {
		return httpresp.Fail[T](eb.Message, eb.Details)
	}

	message := http.StatusText(status)
	if message == "" {
		message = fmt.Sprintf("unexpected status %d", status)
	}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return httpresp.Fail[T](message, string(body))
}
