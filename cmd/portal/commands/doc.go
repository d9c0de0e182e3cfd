// Package commands defines the portal CLI.
//
// Commands
//
//   - (none)      Render the screen for the current session
//   - status      Print the gate state
//   - login       Check credentials and start a session
//   - logout      End the session
//   - profile     Complete the first-login profile
//   - dashboard   List the portal resources
//   - refs        List a reference set (admins only)
//
// The root command loads config from the environment and wires the core
// before any subcommand runs, then restores the persisted session so every
// command starts from the same state a restarted browser tab would.
package commands
