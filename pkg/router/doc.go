// Package router turns a parsed command line into exactly one operation.
//
// The CLI layer builds an immutable Selector; Resolve maps it to a Plan and
// Dispatch runs the plan against the engines:
//
//	START   -> addchanges | install | unknown
//	install -> configs | pkgs | flatpaks | wm | unknown
//	pkgs    -> common (default) | xorg | bspwm | wayland | sway | unknown
//	wm      -> bspwm | sway | unknown
//
// Every unknown branch resolves to OpNothing, which prints NothingMessage
// and touches neither the filesystem nor any external program.
package router
