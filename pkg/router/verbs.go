package router

import "strings"

// Verb is a top-level command
type Verb int

const (
	VerbNone Verb = iota
	VerbAddChanges
	VerbInstall
)

// InstallVerb is a sub-command of install
type InstallVerb int

const (
	InstallNone InstallVerb = iota
	InstallConfigs
	InstallPkgs
	InstallFlatpaks
	InstallWM
)

// Group is a package group. The zero value is GroupCommon, the group used
// when none is given.
type Group int

const (
	GroupCommon Group = iota
	GroupXorg
	GroupBspwm
	GroupWayland
	GroupSway
	GroupUnknown
)

// Alias is a verb name with its accepted abbreviations. Canonical comes
// first.
type Alias struct {
	Canonical string
	Aliases   []string
}

// Names returns the canonical name followed by its aliases
func (a Alias) Names() []string {
	return append([]string{a.Canonical}, a.Aliases...)
}

var verbAliases = map[Verb]Alias{
	VerbAddChanges: {"addchanges", []string{"add", "a"}},
	VerbInstall:    {"install", []string{"i"}},
}

var installAliases = map[InstallVerb]Alias{
	InstallConfigs:  {"configs", []string{"c"}},
	InstallPkgs:     {"pkgs", []string{"p"}},
	InstallFlatpaks: {"flatpaks", []string{"f"}},
	InstallWM:       {"wm", []string{"w"}},
}

var groupAliases = map[Group]Alias{
	GroupCommon:  {"common", []string{"c"}},
	GroupXorg:    {"xorg", []string{"x"}},
	GroupBspwm:   {"bspwm", []string{"b"}},
	GroupWayland: {"wayland", []string{"w"}},
	GroupSway:    {"sway", []string{"s"}},
}

// Window managers installable with "install wm". They have no short forms.
var windowManagers = map[string]Group{
	"bspwm": GroupBspwm,
	"sway":  GroupSway,
}

// VerbAlias returns the names accepted for v
func VerbAlias(v Verb) Alias { return verbAliases[v] }

// InstallVerbAlias returns the names accepted for v
func InstallVerbAlias(v InstallVerb) Alias { return installAliases[v] }

// GroupAlias returns the names accepted for g
func GroupAlias(g Group) Alias { return groupAliases[g] }

// LookupVerb resolves a top-level verb name or alias
func LookupVerb(name string) (Verb, bool) {
	for v, a := range verbAliases {
		if a.matches(name) {
			return v, true
		}
	}
	return VerbNone, false
}

// LookupInstallVerb resolves an install sub-command name or alias
func LookupInstallVerb(name string) (InstallVerb, bool) {
	for v, a := range installAliases {
		if a.matches(name) {
			return v, true
		}
	}
	return InstallNone, false
}

// LookupGroup resolves a package group name or alias. An empty name is
// the default group.
func LookupGroup(name string) (Group, bool) {
	if name == "" {
		return GroupCommon, true
	}
	for g, a := range groupAliases {
		if a.matches(name) {
			return g, true
		}
	}
	return GroupUnknown, false
}

// LookupWindowManager resolves a window manager name
func LookupWindowManager(name string) (Group, bool) {
	g, ok := windowManagers[name]
	if !ok {
		return GroupUnknown, false
	}
	return g, true
}

// WindowManagerNames lists the installable window managers
func WindowManagerNames() []string {
	return []string{"bspwm", "sway"}
}

func (a Alias) matches(name string) bool {
	name = strings.TrimSpace(name)
	if name == a.Canonical {
		return true
	}
	for _, alias := range a.Aliases {
		if name == alias {
			return true
		}
	}
	return false
}

func (v Verb) String() string {
	if a, ok := verbAliases[v]; ok {
		return a.Canonical
	}
	return "none"
}

func (v InstallVerb) String() string {
	if a, ok := installAliases[v]; ok {
		return a.Canonical
	}
	return "none"
}

func (g Group) String() string {
	if a, ok := groupAliases[g]; ok {
		return a.Canonical
	}
	return "unknown"
}
