package pagination

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/call_history"+query, nil)
	rec := httptest.NewRecorder()
	return FromContext(e.NewContext(req, rec))
}

func TestFromContext(t *testing.T) {
	cases := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", DefaultLimit, 0},
		{"explicit", "?limit=5&offset=10", 5, 10},
		{"limit capped", "?limit=500", MaxLimit, 0},
		{"garbage ignored", "?limit=abc&offset=xyz", DefaultLimit, 0},
		{"negative limit ignored", "?limit=-3", DefaultLimit, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := paramsFor(t, tc.query)
			if p.Limit != tc.wantLimit || p.Offset != tc.wantOffset {
				t.Errorf("got %+v, want limit=%d offset=%d", p, tc.wantLimit, tc.wantOffset)
			}
		})
	}
}

func TestNewResponse(t *testing.T) {
	resp := NewResponse([]string{"a", "b"}, 10, 2, 0)
	if !resp.HasMore {
		t.Error("expected HasMore with 10 total and page of 2")
	}
	resp = NewResponse([]string{"a", "b"}, 2, 20, 0)
	if resp.HasMore {
		t.Error("expected HasMore=false when everything fits")
	}
}

// Tool clients read every reply's payload from the "result" key, paginated
// listings included.
func TestResponsePayloadKey(t *testing.T) {
	raw, err := json.Marshal(NewResponse([]string{"a"}, 1, 20, 0))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]json.RawMessage
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := got["result"]; !ok {
		t.Errorf("payload key missing, body = %s", raw)
	}
	if _, ok := got["data"]; ok {
		t.Errorf("stray data key, body = %s", raw)
	}
}

func TestOffsets(t *testing.T) {
	p := Params{Limit: 20, Offset: 20}
	if !p.HasNext(100) || p.NextOffset() != 40 {
		t.Errorf("next: %+v", p)
	}
	if !p.HasPrevious() || p.PreviousOffset() != 0 {
		t.Errorf("previous: %+v", p)
	}
	p = Params{Limit: 20, Offset: 10}
	if p.PreviousOffset() != 0 {
		t.Error("previous offset should clamp at 0")
	}
	if p.SQL() != "LIMIT 20 OFFSET 10" {
		t.Errorf("SQL() = %q", p.SQL())
	}
}
