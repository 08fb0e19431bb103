// Package manifest loads the declarative description of what nedots tracks:
// files and directories per scope, and package groups per tier.
//
// The manifest is a JSON document at <repo>/nedots.json:
//
//	{
//	  "files":       {"etc": ["hosts"], "home": [".bashrc"]},
//	  "directories": {"home": [".config/nvim"]},
//	  "packages": {
//	    "core":    {"fedora.common": ["git", "vim"]},
//	    "extras":  {"fedora.sway": ["sway"]},
//	    "flatpak": [{"remote": "flathub", "url": "https://flathub.org/repo/flathub.flatpakrepo", "packages": ["org.mozilla.firefox"]}]
//	  }
//	}
//
// It is loaded fresh on every invocation and never written by nedots.
package manifest
