package hue

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/amimof/huego"
)

// fakeBridge is a minimal v1 bridge: pairing, the light listing and state
// updates, in the shape a real bridge uses.
type fakeBridge struct {
	t *testing.T

	mu          sync.Mutex
	linkPressed bool
	username    string
	lights      map[string]*huego.Light
	updates     []stateUpdate
	headers     []http.Header
}

type stateUpdate struct {
	ID   string
	Body StateUpdate
}

func newFakeBridge(t *testing.T) (*fakeBridge, *httptest.Server) {
	t.Helper()
	fb := &fakeBridge{
		t:        t,
		username: "user-1",
		lights: map[string]*huego.Light{
			"1":  {Name: "Desk", State: &huego.State{On: true, Bri: 200, Reachable: true}},
			"2":  {Name: "Hall", State: &huego.State{On: false, Bri: 0, Reachable: false}},
			"10": {Name: "Porch", State: &huego.State{On: true, Bri: 254, Reachable: true}},
		},
	}
	srv := httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(srv.Close)
	return fb, srv
}

func (fb *fakeBridge) pressLink() {
	fb.mu.Lock()
	fb.linkPressed = true
	fb.mu.Unlock()
}

func (fb *fakeBridge) recordedUpdates() []stateUpdate {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]stateUpdate(nil), fb.updates...)
}

func (fb *fakeBridge) serve(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.headers = append(fb.headers, r.Header.Clone())
	w.Header().Set("Content-Type", "application/json")

	if r.URL.Path == "/api" && r.Method == http.MethodPost {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body["devicetype"] == "" {
			fb.write(w, []any{map[string]any{"error": map[string]any{"type": 5, "address": "/", "description": "invalid/missing parameters in body"}}})
			return
		}
		if !fb.linkPressed {
			fb.write(w, []any{map[string]any{"error": map[string]any{"type": 101, "address": "", "description": "link button not pressed"}}})
			return
		}
		fb.write(w, []any{map[string]any{"success": map[string]any{"username": fb.username}}})
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 3 || parts[0] != "api" || parts[2] != "lights" {
		http.NotFound(w, r)
		return
	}
	if parts[1] != fb.username {
		fb.write(w, []any{map[string]any{"error": map[string]any{"type": 1, "address": "/lights", "description": "unauthorized user"}}})
		return
	}

	switch {
	case len(parts) == 3 && r.Method == http.MethodGet:
		fb.write(w, fb.lights)
	case len(parts) == 5 && parts[4] == "state" && r.Method == http.MethodPut:
		id := parts[3]
		var body StateUpdate
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			fb.t.Errorf("decode state body: %v", err)
		}
		fb.updates = append(fb.updates, stateUpdate{ID: id, Body: body})
		fb.write(w, []any{
			map[string]any{"success": map[string]any{"/lights/" + id + "/state/on": body.On}},
			map[string]any{"success": map[string]any{"/lights/" + id + "/state/bri": body.Bri}},
		})
	default:
		http.NotFound(w, r)
	}
}

func (fb *fakeBridge) write(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fb.t.Errorf("encode response: %v", err)
	}
}
