package hxfrp

import (
	"bytes"
	"context"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// TestResult holds rendered output and response metadata for assertions.
type TestResult struct {
	HTML       string
	StatusCode int
	Headers    http.Header

	// Renders is how many times the tree rendered while mounted. Only set
	// by TestRender.
	Renders int
}

// TestRender builds a tree against a fresh HTMLHost, mounts it, renders the
// current nodes to HTML and unmounts it again.
//
// Use this for unit tests of composition when no events are involved:
//
//	result, err := hxfrp.TestRender(func(h hxfrp.Host) hxfrp.Fragments {
//	    return hxfrp.El(h, "p", nil, hxfrp.Text(h, "hi")).Fragments
//	})
//	if !result.HTMLContains("<p>hi</p>") {
//	    t.Fatal("missing paragraph")
//	}
func TestRender(build func(h Host) Fragments) (*TestResult, error) {
	h := NewHTMLHost(nil)
	view := Mount(build(h), nil)
	defer view.Unmount()

	if err := view.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := RenderNodes(context.Background(), &buf, view.Nodes()); err != nil {
		return nil, err
	}

	return &TestResult{
		HTML:       buf.String(),
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
		Renders:    view.Renders(),
	}, nil
}

// TestDispatch posts ev to eventURL through handler the way HTMX would and
// returns the response. eventURL is typically taken from a previous
// result's EventURLs.
//
//	page := httptest.NewRecorder()
//	reg.Page(build, nil).ServeHTTP(page, httptest.NewRequest("GET", "/", nil))
//	urls := (&hxfrp.TestResult{HTML: page.Body.String()}).EventURLs()
//	result, err := hxfrp.TestDispatch(reg.Handler(), urls[0], hxfrp.Event{Type: hxfrp.EventInput, Value: "a"})
func TestDispatch(handler http.Handler, eventURL string, ev Event) (*TestResult, error) {
	form := url.Values{}
	form.Set(fieldEvent, ev.Type)
	form.Set(fieldValue, ev.Value)
	form.Set(fieldKey, strconv.Itoa(ev.Key))

	req, err := http.NewRequest(http.MethodPost, eventURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return &TestResult{
		HTML:       rec.Body.String(),
		StatusCode: rec.Code,
		Headers:    rec.Header(),
	}, nil
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all the given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// HTMLContainsAny checks if the HTML contains any of the given substrings.
func (r *TestResult) HTMLContainsAny(substrs ...string) bool {
	for _, s := range substrs {
		if strings.Contains(r.HTML, s) {
			return true
		}
	}
	return false
}

// IsOK checks if the status code is 200.
func (r *TestResult) IsOK() bool {
	return r.StatusCode == http.StatusOK
}

// HasStatus checks if the status code matches.
func (r *TestResult) HasStatus(code int) bool {
	return r.StatusCode == code
}

// HasHeader checks if a header is set with the given value.
func (r *TestResult) HasHeader(key, value string) bool {
	return r.Headers.Get(key) == value
}

// GetHeader returns the value of a header.
func (r *TestResult) GetHeader(key string) string {
	return r.Headers.Get(key)
}

var hxPostAttr = regexp.MustCompile(`hx-post="([^"]*)"`)

// EventURLs returns the hx-post targets of every wired element in the HTML,
// in document order.
func (r *TestResult) EventURLs() []string {
	var urls []string
	for _, m := range hxPostAttr.FindAllStringSubmatch(r.HTML, -1) {
		urls = append(urls, html.UnescapeString(m[1]))
	}
	return urls
}
