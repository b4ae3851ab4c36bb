// Package ui provides the terminal interface for lumen, built on Bubble Tea.
//
// # Model
//
// Model is the single owner of UI state. Key presses, window resizes, timer
// ticks and bridge completions all arrive through Update as messages, so no
// state is shared with the goroutines that run bridge requests. Requests are
// issued as tea.Cmd values (see commands.go) and report back with lightsMsg,
// pairMsg and brightnessMsg.
//
// # Brightness Drags
//
// Adjusting a light updates the state.Store immediately so the bar follows
// the key repeat. Network writes go through a throttle.Set: the first change
// in a quiet period arms a flush, and the flush fires one interval later with
// whatever value the store holds at that moment. A burst of key presses thus
// produces at most one write per light per interval, and the final value is
// always sent.
//
// # Layout
//
//   - Header: logo, bridge host, pairing state, last refresh time
//   - Body: one row per light with a brightness bar, or a loading, error
//     or empty state
//   - Footer: status line and short key help
//
// Pressing h or ? opens a centered help overlay; any key closes it.
//
// # Themes
//
// Nightfox, Kanagawa and Slate are built in. T cycles through them and the
// choice is persisted with the rest of the preferences.
package ui
