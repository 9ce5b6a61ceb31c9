// Package cli provides the command-line surface of searxup.
//
//   - cli/cmd: The command tree (provision, verify) and its wiring into the
//     shared runtime container
package cli
