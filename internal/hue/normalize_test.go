package hue

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testURL = "http://bridge/api/***/lights"

func TestNormalize_Values(t *testing.T) {
	tests := []struct {
		name string
		body string
		want any
	}{
		{
			name: "success elements are unwrapped",
			body: `[{"success":{"username":"abc"}}]`,
			want: []any{map[string]any{"username": "abc"}},
		},
		{
			name: "plain elements pass through",
			body: `[{"a":1},{"success":2},"x"]`,
			want: []any{map[string]any{"a": float64(1)}, float64(2), "x"},
		},
		{
			name: "empty array",
			body: `[]`,
			want: []any{},
		},
		{
			name: "object without envelope is unchanged",
			body: `{"1":{"name":"Desk"}}`,
			want: map[string]any{"1": map[string]any{"name": "Desk"}},
		},
		{
			name: "object success is unwrapped",
			body: `{"success":{"ok":true}}`,
			want: map[string]any{"ok": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize([]byte(tt.body), testURL)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_FirstErrorWins(t *testing.T) {
	body := `[{"success":{"x":1}},{"error":{"type":7,"address":"/a","description":"first"}},{"error":{"type":8,"description":"second"}}]`

	_, err := Normalize([]byte(body), testURL)

	var apiErr *BridgeAPIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 7, apiErr.Code)
	assert.Equal(t, "first", apiErr.Description)
	assert.Equal(t, "/a", apiErr.Address)
	assert.Equal(t, testURL, apiErr.URL)
}

func TestNormalize_ObjectError(t *testing.T) {
	_, err := Normalize([]byte(`{"error":{"type":101,"description":"link button not pressed"}}`), testURL)
	if !IsLinkButtonNotPressed(err) {
		t.Fatalf("IsLinkButtonNotPressed(%v) = false, want true", err)
	}
}

func TestNormalize_LenientErrorFields(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantDesc string
	}{
		{"missing fields", `[{"error":{}}]`, 0, "no error description"},
		{"description not a string", `[{"error":{"type":3,"description":42}}]`, 3, "incorrect error description type"},
		{"type not a number", `[{"error":{"type":"x","description":"d"}}]`, 0, "d"},
		{"error value not an object", `{"error":"boom"}`, 0, "invalid error response object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize([]byte(tt.body), testURL)
			var apiErr *BridgeAPIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.Equal(t, tt.wantDesc, apiErr.Description)
		})
	}
}

func TestNormalize_Malformed(t *testing.T) {
	for _, body := range []string{``, `not json`, `{"a":`, `42`, `"text"`, `null`, `true`} {
		_, err := Normalize([]byte(body), testURL)
		var malformed *MalformedResponseError
		if !errors.As(err, &malformed) {
			t.Fatalf("Normalize(%q) error = %v, want MalformedResponseError", body, err)
		}
		if malformed.URL != testURL {
			t.Fatalf("URL = %q, want %q", malformed.URL, testURL)
		}
	}
}

func TestNormalize_ResultIsExclusive(t *testing.T) {
	bodies := []string{`[]`, `{}`, `[{"error":{}}]`, `[{"success":1}]`, `nope`}
	for _, body := range bodies {
		v, err := Normalize([]byte(body), testURL)
		if (v == nil) == (err == nil) {
			t.Fatalf("Normalize(%q) = (%v, %v), want exactly one of value or error", body, v, err)
		}
	}
}
