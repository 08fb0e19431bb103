// Package config loads nedots settings.
//
// Settings are layered with koanf, each layer overriding the previous one:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file, $XDG_CONFIG_HOME/nedots/nedots.toml
//  3. NEDOTS_* environment variables (NEDOTS_REPO_ROOT -> repo.root)
//  4. explicit overrides, usually command-line flags
//
// Settings describe where the managed repository lives and how packages are
// installed. They are distinct from the manifest (nedots.json), which lists
// what is tracked and is handled by pkg/manifest.
package config
