package tool

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"github.com/Tpanarchist/AgentForge/core"
)

const (
	defaultBraveBaseURL = "https://api.search.brave.com"
	braveSearchPath     = "/res/v1/web/search"
)

// BraveSearchOptions configures a BraveSearchTool instance.
type BraveSearchOptions struct {
	// APIKey is the Brave subscription token. Defaults to the BRAVE_API_KEY
	// environment variable.
	APIKey string

	// BaseURL overrides the API endpoint, mainly for tests.
	BaseURL string

	// HTTPClient performs the requests. Defaults to a client with a 30 second
	// timeout. No Accept-Encoding header is set; the transport negotiates
	// gzip transparently.
	HTTPClient *http.Client

	// MaxResults is the number of web results requested when the caller does
	// not pass a count argument.
	MaxResults int
}

// BraveSearchTool performs web searches through the Brave Search API and
// returns parsed web and video results: titles, URLs, descriptions and any
// extra snippets, with missing fields normalized to "No data". The Summarize
// method additionally exposes the Summarizer API for AI-generated summaries
// on subscriptions that include it.
//
// An API key is required; set it via BRAVE_API_KEY or the APIKey option.
type BraveSearchTool struct {
	name        string
	description string
	opts        BraveSearchOptions
}

// NewBraveSearchTool creates a Brave web search tool.
func NewBraveSearchTool(optFns ...func(o *BraveSearchOptions)) *BraveSearchTool {
	opts := BraveSearchOptions{
		APIKey:     os.Getenv("BRAVE_API_KEY"),
		BaseURL:    defaultBraveBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		MaxResults: 5,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &BraveSearchTool{
		name: "brave_search",
		description: "Search the web with the Brave Search API. Returns titles, URLs, " +
			"descriptions and extra snippets for matching pages plus any video results.",
		opts: opts,
	}
}

// Name returns the tool identifier.
func (t *BraveSearchTool) Name() string {
	return t.name
}

// Description returns the tool description.
func (t *BraveSearchTool) Description() string {
	return t.description
}

// Parameters returns the JSON schema for tool parameters.
func (t *BraveSearchTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The search query",
			},
			"count": map[string]any{
				"type":        "integer",
				"description": "Number of web results to request",
			},
		},
		"required": []string{"query"},
	}
}

// Call performs a web search and parses the response into web and video
// result lists.
func (t *BraveSearchTool) Call(toolCtx *core.ToolContext, args map[string]any) (any, error) {
	query, ok := args["query"].(string)
	if !ok || query == "" {
		return nil, fmt.Errorf("query parameter is required for brave_search")
	}

	count := t.opts.MaxResults
	switch c := args["count"].(type) {
	case float64:
		count = int(c)
	case int:
		count = c
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(count))

	toolCtx.Logger().Debug("tool.brave_search.request", "query", query, "count", count)

	body, err := t.get(toolCtx, params)
	if err != nil {
		return nil, err
	}

	webResults := parseWebResults(body)
	videoResults := parseVideoResults(body, false)

	toolCtx.Logger().Debug("tool.brave_search.response",
		"query", query, "web_results", len(webResults), "video_results", len(videoResults))

	return map[string]any{
		"web_results":   webResults,
		"video_results": videoResults,
	}, nil
}

// Summarize asks the Summarizer API for an AI-generated summary of the query.
// Subscriptions without summarizer access receive a plain search payload
// instead, so the response is branched on its reported type: summarizer
// responses carry the summary text, follow-up questions and entity info,
// search responses carry parsed web and video results.
func (t *BraveSearchTool) Summarize(toolCtx *core.ToolContext, args map[string]any) (any, error) {
	query, ok := args["query"].(string)
	if !ok || query == "" {
		return nil, fmt.Errorf("query parameter is required for brave_search")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("summary", "1")

	toolCtx.Logger().Debug("tool.brave_search.summarize", "query", query)

	body, err := t.get(toolCtx, params)
	if err != nil {
		return nil, err
	}

	switch typ := gjson.GetBytes(body, "type").String(); typ {
	case "summarizer":
		summary := make([]string, 0)
		gjson.GetBytes(body, "summary").ForEach(func(_, m gjson.Result) bool {
			summary = append(summary, m.Get("content").String())
			return true
		})

		followups := make([]string, 0)
		gjson.GetBytes(body, "followups").ForEach(func(_, f gjson.Result) bool {
			followups = append(followups, f.String())
			return true
		})

		entities := gjson.GetBytes(body, "entities_infos").Value()
		if entities == nil {
			entities = map[string]any{}
		}

		info := map[string]any{
			"status":    gjson.GetBytes(body, "status").String(),
			"title":     gjson.GetBytes(body, "title").String(),
			"summary":   summary,
			"followups": followups,
			"entities":  entities,
		}
		if enrichments := gjson.GetBytes(body, "enrichments"); enrichments.Exists() {
			info["enrichments"] = enrichments.Value()
		}

		return info, nil

	case "search":
		return map[string]any{
			"query":   gjson.GetBytes(body, "query.original").String(),
			"results": parseWebResults(body),
			"videos":  parseVideoResults(body, true),
		}, nil

	default:
		return nil, fmt.Errorf("brave search: unexpected response type %q", typ)
	}
}

// get performs one GET against the search endpoint with the given query
// parameters and returns the response body.
func (t *BraveSearchTool) get(toolCtx *core.ToolContext, params url.Values) ([]byte, error) {
	if t.opts.APIKey == "" {
		return nil, fmt.Errorf("brave search: missing API key (set BRAVE_API_KEY)")
	}

	endpoint, err := url.Parse(t.opts.BaseURL + braveSearchPath)
	if err != nil {
		return nil, fmt.Errorf("brave search: invalid base url: %w", err)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(toolCtx.Context(), http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("brave search: build request: %w", err)
	}

	req.Header.Set("X-Subscription-Token", t.opts.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := t.opts.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("brave search request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("brave search: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("brave search: unexpected status %s", resp.Status)
	}

	return body, nil
}

// parseWebResults extracts web search hits, normalizing missing fields to
// "No data".
func parseWebResults(body []byte) []map[string]any {
	results := make([]map[string]any, 0)
	gjson.GetBytes(body, "web.results").ForEach(func(_, r gjson.Result) bool {
		entry := map[string]any{
			"type":        "web_result",
			"title":       stringOr(r.Get("title"), "No data"),
			"url":         stringOr(r.Get("url"), "No data"),
			"description": stringOr(r.Get("description"), "No data"),
		}

		snippets := make([]string, 0)
		r.Get("extra_snippets").ForEach(func(_, s gjson.Result) bool {
			snippets = append(snippets, s.String())
			return true
		})
		if len(snippets) == 0 {
			snippets = []string{"No data"}
		}
		entry["extra_snippets"] = snippets

		results = append(results, entry)
		return true
	})

	return results
}

// parseVideoResults extracts video hits; the summarizer's search fallback
// additionally carries each video's thumbnail.
func parseVideoResults(body []byte, withThumbnail bool) []map[string]any {
	results := make([]map[string]any, 0)
	gjson.GetBytes(body, "videos.results").ForEach(func(_, r gjson.Result) bool {
		entry := map[string]any{
			"type":        "video_result",
			"title":       stringOr(r.Get("title"), "No data"),
			"url":         stringOr(r.Get("url"), "No data"),
			"description": stringOr(r.Get("description"), "No data"),
		}
		if withThumbnail {
			entry["thumbnail"] = r.Get("thumbnail.src").String()
		}
		results = append(results, entry)
		return true
	})

	return results
}

func stringOr(r gjson.Result, fallback string) string {
	if r.Exists() {
		return r.String()
	}
	return fallback
}
