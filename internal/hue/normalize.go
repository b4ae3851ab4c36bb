package hue

import (
	"encoding/json"
	"fmt"
)

const (
	keyError   = "error"
	keySuccess = "success"
)

// Normalize parses a 2xx response body and collapses the bridge's two
// response shapes into one value.
//
// Arrays are scanned in order: the first element carrying an "error" object
// fails the whole call, elements carrying "success" are replaced by the
// wrapped value and anything else passes through. A bare object resolves to
// its "error" (as an error), its "success" value, or itself.
func Normalize(body []byte, url string) (any, error) {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &MalformedResponseError{Reason: "body is not valid JSON", URL: url, Err: err}
	}

	switch v := parsed.(type) {
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				out = append(out, item)
				continue
			}
			if errVal, ok := obj[keyError]; ok {
				return nil, bridgeError(errVal, url)
			}
			if success, ok := obj[keySuccess]; ok {
				out = append(out, success)
				continue
			}
			out = append(out, obj)
		}
		return out, nil
	case map[string]any:
		if errVal, ok := v[keyError]; ok {
			return nil, bridgeError(errVal, url)
		}
		if success, ok := v[keySuccess]; ok {
			return success, nil
		}
		return v, nil
	default:
		return nil, &MalformedResponseError{
			Reason: fmt.Sprintf("top-level value is %s, want object or array", jsonKind(parsed)),
			URL:    url,
		}
	}
}

// bridgeError decodes an "error" value leniently: missing or mistyped fields
// fall back to defaults instead of failing the call.
func bridgeError(v any, url string) *BridgeAPIError {
	obj, ok := v.(map[string]any)
	if !ok {
		return &BridgeAPIError{Code: 0, Description: "invalid error response object", URL: url}
	}

	apiErr := &BridgeAPIError{URL: url, Description: "no error description"}
	if n, ok := obj["type"].(float64); ok {
		apiErr.Code = int(n)
	}
	if raw, ok := obj["description"]; ok {
		if s, ok := raw.(string); ok {
			apiErr.Description = s
		} else {
			apiErr.Description = "incorrect error description type"
		}
	}
	if addr, ok := obj["address"].(string); ok {
		apiErr.Address = addr
	}
	return apiErr
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case float64:
		return "a number"
	case string:
		return "a string"
	default:
		return fmt.Sprintf("%T", v)
	}
}
