// Package install applies the managed repository to the machine.
//
// It has three operations:
//
//	ApplyConfigs   copy tracked entries from the repository back to the system
//	ApplyPackages  install one resolved package group with the distro's
//	               package manager, in a single invocation
//	ApplyFlatpaks  resolve and report the declared flatpak remotes
//
// Entries under /etc are written through the elevation tool as argv
// commands (mkdir -p, then cp -rT); entries under the home directory are
// copied in-process. ApplyFlatpaks never invokes flatpak: it only reports
// what is declared.
package install
