// Package nodeflags formats bspwm node flags for a status bar.
//
// Input is the JSON of a node, typically from `bspc query -T -n focused`.
// Output is a space followed by one letter per set flag, in the order
// S (sticky), X (locked), M (marked), P (private), or an empty string when
// no flag is set so the bar clears.
package nodeflags

import (
	"encoding/json"
	"strings"

	"github.com/aiden/nedots/pkg/errors"
)

// Flags are the node states shown on the bar. Missing keys decode as false.
type Flags struct {
	Sticky  bool `json:"sticky"`
	Locked  bool `json:"locked"`
	Marked  bool `json:"marked"`
	Private bool `json:"private"`
}

// Parse decodes a node tree, ignoring every field but the flags
func Parse(data []byte) (Flags, error) {
	var f Flags
	if err := json.Unmarshal(data, &f); err != nil {
		return Flags{}, errors.Wrap(err, errors.ErrInvalidInput, "invalid node JSON")
	}
	return f, nil
}

// Format renders the flags, e.g. " SM"
func (f Flags) Format() string {
	var b strings.Builder
	for _, flag := range []struct {
		set  bool
		code byte
	}{
		{f.Sticky, 'S'},
		{f.Locked, 'X'},
		{f.Marked, 'M'},
		{f.Private, 'P'},
	} {
		if flag.set {
			b.WriteByte(flag.code)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return " " + b.String()
}
