package main

import (
	"dotstrap/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// This design cleanly separates the CLI interface (cmd package) from main,
// allowing easier testing, extension, and reuse of the CLI commands.
//
// The dotstrap project is a machine-bootstrap installer for a dotfiles repository that:
//   - Verifies required commands and network reachability before touching anything (preflight)
//   - Archives any pre-existing home-directory configuration into a timestamped backup set,
//     preserving backup sets from earlier runs instead of overwriting them
//   - Creates symbolic links from the dotfiles source tree into the home directory,
//     skipping (never clobbering) any path that already exists
//   - Provisions Homebrew if absent (separate macOS and Linux branches) and ensures a
//     baseline manifest of CLI packages, tolerating individual package failures
//   - Writes a completion marker inside the dotfiles tree so accidental re-runs are
//     refused unless --force is supplied
//   - Can restore a previous backup set (plain directory or compressed snapshot)
//     back into the home directory
//
// Error handling strategy:
//   - Recoverable per-item failures (an occupied link target, a failed backup copy,
//     a package that will not install) are logged and skipped so one bad item does
//     not abort the whole run
//   - Fatal conditions (already installed without --force, missing required command,
//     unreachable network, unusable package manager after bootstrap) terminate the
//     process with a non-zero status through the logger's fatal level
//
// Integration points:
//   - Invokes the system package manager (brew) for queries and installs
//   - Fetches the package manager's official bootstrap script over HTTP and runs it
//   - Appends PATH setup lines to the user's login-shell startup files on Linux
//   - Re-sources the user's shell profile at the very end, best effort
func main() {
	cmd.Execute()
}
