package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/five82/lumen/internal/hue"
)

func TestParseBrightness(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{" 128 ", 128, false},
		{"254", 254, false},
		{"255", 0, true},
		{"-1", 0, true},
		{"bright", 0, true},
	}
	for _, tt := range tests {
		got, err := parseBrightness(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parseBrightness(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("parseBrightness(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDescribeLevel(t *testing.T) {
	if got := describeLevel(0, true); got != "off" {
		t.Fatalf("describeLevel(0, true) = %q, want off", got)
	}
	if got := describeLevel(200, false); got != "off" {
		t.Fatalf("describeLevel(200, false) = %q, want off", got)
	}
	if got := describeLevel(254, true); got != "100% (254)" {
		t.Fatalf("describeLevel(254, true) = %q, want 100%% (254)", got)
	}
}

func TestPrintLights_HidesUnreachable(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	lights := []hue.Light{
		{ID: "1", Name: "Desk", On: true, Brightness: 127, Reachable: true},
		{ID: "2", Name: "Hallway", Reachable: false},
	}

	var buf bytes.Buffer
	printLights(&buf, lights, false)
	out := buf.String()
	if !strings.Contains(out, "Desk") || !strings.Contains(out, "50% (127)") {
		t.Fatalf("printLights() = %q, want Desk at 50%%", out)
	}
	if strings.Contains(out, "Hallway") {
		t.Fatalf("printLights() = %q, want Hallway hidden", out)
	}

	buf.Reset()
	printLights(&buf, lights, true)
	if !strings.Contains(buf.String(), "unreachable") {
		t.Fatalf("printLights(all) = %q, want unreachable row", buf.String())
	}
}

func TestPrintLights_Empty(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	printLights(&buf, nil, false)
	if !strings.Contains(buf.String(), "No lights found") {
		t.Fatalf("printLights(nil) = %q", buf.String())
	}
}

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"pair", "lights", "set", "logs"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("Find(%q) = %v, %v", name, cmd, err)
		}
	}
	for _, flag := range []string{"config", "host", "debug", "verbose"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Fatalf("missing persistent flag --%s", flag)
		}
	}
}
