package tool

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tpanarchist/AgentForge/core"
	"github.com/Tpanarchist/AgentForge/internal/testutil"
	"github.com/Tpanarchist/AgentForge/internal/util"
	"github.com/Tpanarchist/AgentForge/results"
)

// -------------------- Schema & Validation Tests --------------------

type sampleSchema struct {
	A string `json:"a" description:"Field A"`
	B *int   `json:"b" description:"Optional pointer field"`
	C int    `json:"c,omitempty" description:"Omit empty field"`
}

func TestCreateSchema(t *testing.T) {
	schema := util.CreateSchema(sampleSchema{})
	props, ok := schema["properties"].(map[string]any)
	assert.True(t, ok)
	// Properties present
	assert.Contains(t, props, "a")
	assert.Contains(t, props, "b")
	assert.Contains(t, props, "c")
	// Required only includes non-pointer, non-omitempty exported fields
	req, _ := schema["required"].([]string)
	assert.ElementsMatch(t, []string{"a"}, req)
}

func TestValidateParameters(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"x": map[string]any{"type": "integer"},
		},
		// Use []any to mirror a JSON decoded schema shape
		"required": []any{"x"},
	}

	// Success
	err := util.ValidateParameters(map[string]any{"x": 5}, schema)
	assert.NoError(t, err)

	// Missing required
	err = util.ValidateParameters(map[string]any{}, schema)
	assert.Error(t, err)
	if vErr, ok := err.(*ValidationError); ok {
		assert.Equal(t, "x", vErr.Field)
	} else {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	// Wrong type
	err = util.ValidateParameters(map[string]any{"x": "not-int"}, schema)
	assert.Error(t, err)
	if vErr, ok := err.(*ValidationError); ok {
		assert.Contains(t, vErr.Message, "expected type integer")
	} else {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	// Required declared as []string (schema built in Go)
	goSchema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"x": map[string]any{"type": "integer"},
		},
		"required": []string{"x"},
	}
	err = util.ValidateParameters(map[string]any{}, goSchema)
	assert.Error(t, err)
}

// -------------------- Test Fixtures --------------------

func newToolContext(store core.ResultStore) *core.ToolContext {
	runCtx := testutil.NewRunContextBuilder().Agent("Agent").Results(store).Build()
	return core.NewToolContext(runCtx)
}

// -------------------- FuncTool Tests --------------------

func TestFuncTool_Success(t *testing.T) {
	params := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"a": map[string]any{"type": "number"},
			"b": map[string]any{"type": "number"},
		},
		"required": []string{"a", "b"},
	}

	sumTool := NewFuncTool("sum", "Add numbers", params, func(_ *core.ToolContext, args map[string]any) (any, error) {
		a := args["a"].(float64)
		b := args["b"].(float64)
		return a + b, nil
	})

	tc := newToolContext(nil)
	result, err := sumTool.Call(tc, map[string]any{"a": 2.0, "b": 3.0})
	assert.NoError(t, err)
	assert.Equal(t, 5.0, result)
}

func TestFuncTool_ValidationError(t *testing.T) {
	params := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"a": map[string]any{"type": "number"},
		},
		"required": []any{"a"},
	}
	tTool := NewFuncTool("test", "Test", params, func(_ *core.ToolContext, _ map[string]any) (any, error) {
		return 0, nil
	})
	tc := newToolContext(nil)
	_, err := tTool.Call(tc, map[string]any{})
	assert.Error(t, err)
	toolErr, ok := err.(*ToolError)
	assert.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", toolErr.Code)
}

func TestFuncTool_ExecutionError(t *testing.T) {
	params := map[string]any{"type": "object", "properties": map[string]any{}}
	execTool := NewFuncTool("fail", "Fails", params, func(_ *core.ToolContext, _ map[string]any) (any, error) {
		return nil, errors.New("boom")
	})
	tc := newToolContext(nil)
	_, err := execTool.Call(tc, map[string]any{})
	assert.Error(t, err)
	toolErr, ok := err.(*ToolError)
	assert.True(t, ok)
	assert.Equal(t, "EXECUTION_ERROR", toolErr.Code)
}

func TestFuncTool_ToolErrorPassthrough(t *testing.T) {
	params := map[string]any{"type": "object", "properties": map[string]any{}}
	custom := NewToolError("quota", "limit reached", "QUOTA_EXCEEDED")
	quotaTool := NewFuncTool("quota", "Quota", params, func(_ *core.ToolContext, _ map[string]any) (any, error) {
		return nil, custom
	})
	tc := newToolContext(nil)
	_, err := quotaTool.Call(tc, map[string]any{})
	assert.Same(t, custom, err)
}

// -------------------- RunStateTool Tests --------------------

func TestRunStateTool_SetAndGetValue(t *testing.T) {
	rs := NewRunStateTool()
	tc := newToolContext(nil)

	// set_value
	res, err := rs.Call(tc, map[string]any{"operation": "set_value", "key": "foo", "value": "bar"})
	assert.NoError(t, err)

	m := res.(map[string]any)
	assert.Equal(t, "foo", m["key"])
	assert.Equal(t, "bar", m["value"])

	// get_value sees the staged value through the same run
	res, err = rs.Call(tc, map[string]any{"operation": "get_value", "key": "foo"})
	assert.NoError(t, err)
	gm := res.(map[string]any)
	assert.True(t, gm["exists"].(bool))
	assert.Equal(t, "bar", gm["value"])

	// get_value for an unknown key reports absence without error
	res, err = rs.Call(tc, map[string]any{"operation": "get_value", "key": "nope"})
	assert.NoError(t, err)
	gm = res.(map[string]any)
	assert.False(t, gm["exists"].(bool))
}

func TestRunStateTool_PersistResult(t *testing.T) {
	store := results.NewInMemoryStore()
	rs := NewRunStateTool()
	tc := newToolContext(store)

	res, err := rs.Call(tc, map[string]any{"operation": "persist_result", "result": map[string]any{"answer": 42}})
	require.NoError(t, err)

	m := res.(map[string]any)
	assert.Equal(t, "Agent", m["agent"])
	assert.Equal(t, "run-1", m["run_id"])

	stored, err := store.Get("Agent", "run-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"answer": 42}, stored)
}

func TestRunStateTool_RunInfo(t *testing.T) {
	rs := NewRunStateTool()
	tc := newToolContext(nil)

	res, err := rs.Call(tc, map[string]any{"operation": "run_info"})
	require.NoError(t, err)

	m := res.(map[string]any)
	assert.Equal(t, "run-1", m["run_id"])
	assert.Equal(t, "Agent", m["agent_name"])
	assert.NotEmpty(t, m["call_id"])
}

func TestRunStateTool_UnknownOperation(t *testing.T) {
	rs := NewRunStateTool()
	tc := newToolContext(nil)

	_, err := rs.Call(tc, map[string]any{"operation": "launch_missiles"})
	assert.ErrorContains(t, err, "unknown operation")

	_, err = rs.Call(tc, map[string]any{"operation": "set_value"})
	assert.ErrorContains(t, err, "key parameter is required")
}

// -------------------- BraveSearchTool Tests --------------------

// roundTripFunc allows using a function as an HTTP RoundTripper.
type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

const braveResponse = `{
	"web": {"results": [
		{"title": "Go", "url": "https://go.dev", "description": "The Go language", "extra_snippets": ["snippet one", "snippet two"]},
		{"title": "Gopher", "url": "https://go.dev/blog/gopher"}
	]},
	"videos": {"results": [
		{"title": "Go talk", "url": "https://example.com/v", "description": "A talk"}
	]}
}`

func TestBraveSearchTool_ParsesResults(t *testing.T) {
	var captured *http.Request
	client := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		captured = req
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(braveResponse)),
			Header:     make(http.Header),
		}, nil
	})}

	search := NewBraveSearchTool(func(o *BraveSearchOptions) {
		o.APIKey = "test-key"
		o.HTTPClient = client
	})

	tc := newToolContext(nil)
	res, err := search.Call(tc, map[string]any{"query": "golang", "count": 2.0})
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, "test-key", captured.Header.Get("X-Subscription-Token"))
	assert.Equal(t, "golang", captured.URL.Query().Get("q"))
	assert.Equal(t, "2", captured.URL.Query().Get("count"))

	m := res.(map[string]any)
	web := m["web_results"].([]map[string]any)
	require.Len(t, web, 2)
	assert.Equal(t, "Go", web[0]["title"])
	assert.Equal(t, []string{"snippet one", "snippet two"}, web[0]["extra_snippets"])
	// Missing fields are normalized
	assert.Equal(t, "No data", web[1]["description"])
	assert.Equal(t, []string{"No data"}, web[1]["extra_snippets"])

	videos := m["video_results"].([]map[string]any)
	require.Len(t, videos, 1)
	assert.Equal(t, "Go talk", videos[0]["title"])
}

func TestBraveSearchTool_RequiresAPIKey(t *testing.T) {
	search := NewBraveSearchTool(func(o *BraveSearchOptions) {
		o.APIKey = ""
	})

	tc := newToolContext(nil)
	_, err := search.Call(tc, map[string]any{"query": "golang"})
	assert.ErrorContains(t, err, "missing API key")
}

func TestBraveSearchTool_HTTPError(t *testing.T) {
	client := &http.Client{Transport: roundTripFunc(func(_ *http.Request) (*http.Response, error) {
		return &http.Response{
			Status:     "429 Too Many Requests",
			StatusCode: http.StatusTooManyRequests,
			Body:       io.NopCloser(strings.NewReader(`{"error": "rate limited"}`)),
			Header:     make(http.Header),
		}, nil
	})}

	search := NewBraveSearchTool(func(o *BraveSearchOptions) {
		o.APIKey = "test-key"
		o.HTTPClient = client
	})

	tc := newToolContext(nil)
	_, err := search.Call(tc, map[string]any{"query": "golang"})
	assert.ErrorContains(t, err, "429")
}

func TestBraveSearchTool_RequiresQuery(t *testing.T) {
	search := NewBraveSearchTool(func(o *BraveSearchOptions) {
		o.APIKey = "test-key"
	})

	tc := newToolContext(nil)
	_, err := search.Call(tc, map[string]any{})
	assert.ErrorContains(t, err, "query parameter is required")
}

const braveSummarizerResponse = `{
	"type": "summarizer",
	"status": "complete",
	"title": "Go (programming language)",
	"summary": [
		{"type": "token", "content": "Go is a statically typed language."},
		{"type": "token", "content": "It was designed at Google."}
	],
	"followups": ["Who created Go?"],
	"entities_infos": {"Go": {"provider": "wikipedia"}}
}`

func TestBraveSearchTool_SummarizeParsesSummary(t *testing.T) {
	var captured *http.Request
	client := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		captured = req
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(braveSummarizerResponse)),
			Header:     make(http.Header),
		}, nil
	})}

	search := NewBraveSearchTool(func(o *BraveSearchOptions) {
		o.APIKey = "test-key"
		o.HTTPClient = client
	})

	tc := newToolContext(nil)
	res, err := search.Summarize(tc, map[string]any{"query": "golang"})
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, "1", captured.URL.Query().Get("summary"))
	assert.Equal(t, "golang", captured.URL.Query().Get("q"))

	m := res.(map[string]any)
	assert.Equal(t, "complete", m["status"])
	assert.Equal(t, "Go (programming language)", m["title"])
	assert.Equal(t, []string{
		"Go is a statically typed language.",
		"It was designed at Google.",
	}, m["summary"])
	assert.Equal(t, []string{"Who created Go?"}, m["followups"])
	assert.Contains(t, m["entities"].(map[string]any), "Go")
}

func TestBraveSearchTool_SummarizeFallsBackToSearch(t *testing.T) {
	// Subscriptions without summarizer access get a plain search payload.
	body := `{
		"type": "search",
		"query": {"original": "golang"},
		"web": {"results": [{"title": "Go", "url": "https://go.dev", "description": "The Go language"}]},
		"videos": {"results": [{"title": "Go talk", "url": "https://example.com/v", "thumbnail": {"src": "https://example.com/t.jpg"}}]}
	}`
	client := &http.Client{Transport: roundTripFunc(func(_ *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(http.Header),
		}, nil
	})}

	search := NewBraveSearchTool(func(o *BraveSearchOptions) {
		o.APIKey = "test-key"
		o.HTTPClient = client
	})

	tc := newToolContext(nil)
	res, err := search.Summarize(tc, map[string]any{"query": "golang"})
	require.NoError(t, err)

	m := res.(map[string]any)
	assert.Equal(t, "golang", m["query"])
	results := m["results"].([]map[string]any)
	require.Len(t, results, 1)
	assert.Equal(t, "Go", results[0]["title"])
	videos := m["videos"].([]map[string]any)
	require.Len(t, videos, 1)
	assert.Equal(t, "https://example.com/t.jpg", videos[0]["thumbnail"])
}

func TestBraveSearchTool_SummarizeUnexpectedType(t *testing.T) {
	client := &http.Client{Transport: roundTripFunc(func(_ *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"type": "mystery"}`)),
			Header:     make(http.Header),
		}, nil
	})}

	search := NewBraveSearchTool(func(o *BraveSearchOptions) {
		o.APIKey = "test-key"
		o.HTTPClient = client
	})

	tc := newToolContext(nil)
	_, err := search.Summarize(tc, map[string]any{"query": "golang"})
	assert.ErrorContains(t, err, "unexpected response type")
}

// -------------------- ToolError Formatting --------------------

func TestToolErrorFormatting(t *testing.T) {
	err := NewToolError("demo", "something failed", "E123")
	assert.Contains(t, err.Error(), "E123")
	assert.Contains(t, err.Error(), "demo")
}
