package proc

import "os"

// Elevator prefixes commands that need root privileges
type Elevator struct {
	prefix []string
	euid   func() int
}

// NewElevator creates an Elevator using prefix (e.g. ["sudo"]). An empty
// prefix disables elevation.
func NewElevator(prefix []string) *Elevator {
	p := make([]string, len(prefix))
	copy(p, prefix)
	return &Elevator{prefix: p, euid: os.Geteuid}
}

// Needed reports whether commands will be prefixed. Running as root, or
// with no elevation tool configured, needs none.
func (e *Elevator) Needed() bool {
	return len(e.prefix) > 0 && e.euid() != 0
}

// Tool is the elevation program, or "" when elevation is disabled
func (e *Elevator) Tool() string {
	if len(e.prefix) == 0 {
		return ""
	}
	return e.prefix[0]
}

// Wrap returns argv prefixed with the elevation tool when Needed
func (e *Elevator) Wrap(argv ...string) []string {
	if !e.Needed() {
		out := make([]string, len(argv))
		copy(out, argv)
		return out
	}
	out := make([]string, 0, len(e.prefix)+len(argv))
	out = append(out, e.prefix...)
	return append(out, argv...)
}
