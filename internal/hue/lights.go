package hue

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/amimof/huego"
)

// MaxBrightness is the highest brightness the bridge accepts.
const MaxBrightness = 254

// Light is a snapshot of one light from the bridge listing.
type Light struct {
	ID         string
	Name       string
	On         bool
	Brightness int
	Reachable  bool
}

// StateUpdate is the body sent to /lights/{id}/state.
type StateUpdate struct {
	On             bool `json:"on"`
	Bri            int  `json:"bri"`
	TransitionTime int  `json:"transitiontime"`
}

// BrightnessUpdate builds the state change for brightness bri. The light is
// switched off at zero and on otherwise.
func BrightnessUpdate(bri int) StateUpdate {
	bri = ClampBrightness(bri)
	return StateUpdate{On: bri > 0, Bri: bri, TransitionTime: 1}
}

// ClampBrightness limits bri to 0..MaxBrightness.
func ClampBrightness(bri int) int {
	if bri < 0 {
		return 0
	}
	if bri > MaxBrightness {
		return MaxBrightness
	}
	return bri
}

// Lights fetches the light listing.
func (s *Session) Lights(ctx context.Context) ([]Light, error) {
	value, err := s.AuthenticatedRequest(ctx, http.MethodGet, "/lights", nil)
	if err != nil {
		return nil, fmt.Errorf("list lights: %w", err)
	}
	lights, err := decodeLights(value)
	if err != nil {
		return nil, fmt.Errorf("list lights: %w", err)
	}
	return lights, nil
}

// SetBrightness sends one brightness update for light id.
func (s *Session) SetBrightness(ctx context.Context, id string, bri int) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("set brightness: light id is required")
	}
	path := "/lights/" + id + "/state"
	if _, err := s.AuthenticatedRequest(ctx, http.MethodPut, path, BrightnessUpdate(bri)); err != nil {
		return fmt.Errorf("set brightness of light %s: %w", id, err)
	}
	return nil
}

func decodeLights(value any) ([]Light, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, &MalformedResponseError{Reason: fmt.Sprintf("light listing is %s, want object", jsonKind(value))}
	}

	lights := make([]Light, 0, len(obj))
	for id, raw := range obj {
		data, err := json.Marshal(raw)
		if err != nil {
			return nil, &MalformedResponseError{Reason: fmt.Sprintf("light %q", id), Err: err}
		}
		var hl huego.Light
		if err := json.Unmarshal(data, &hl); err != nil {
			return nil, &MalformedResponseError{Reason: fmt.Sprintf("light %q", id), Err: err}
		}
		if hl.State == nil {
			return nil, &MalformedResponseError{Reason: fmt.Sprintf("light %q has no state", id)}
		}
		name := strings.TrimSpace(hl.Name)
		if name == "" {
			name = "Light " + id
		}
		lights = append(lights, Light{
			ID:         id,
			Name:       name,
			On:         hl.State.On,
			Brightness: ClampBrightness(int(hl.State.Bri)),
			Reachable:  hl.State.Reachable,
		})
	}

	sort.Slice(lights, func(i, j int) bool {
		return lessID(lights[i].ID, lights[j].ID)
	})
	return lights, nil
}

// lessID orders numeric ids numerically and puts them before any other id.
func lessID(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}
