// Package viz renders a field-boost scenario in the terminal.
//
// The package has three layers:
//
//   - [Arrows] and [Camera]: the visible vectors of a scenario and an
//     orthographic projection shared by the terminal and SVG renderers
//   - [Canvas]: Braille-based pixel canvas the arrows are drawn onto
//   - [Run]: interactive Bubble Tea application editing a [state.Store]
//
// # Key Bindings
//
//	j/k, up/down  - Select input field
//	h/l, ←/→      - Nudge selected field
//	enter         - Edit selected field as text
//	f             - Flip boost direction
//	r             - Reset inputs (keeps display toggles)
//	p             - Cycle presets
//	1-7           - Toggle E, B, S, primed, particle, force, acceleration
//	t             - Cycle color themes
//	[ / ]         - Rotate camera
//	q             - Quit
package viz
