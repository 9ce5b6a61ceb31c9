// Package io provides configuration loading and artifact generation.
//
// Subpackages:
//   - configmanager: Provisioning document loading from file, env and flags
//   - generator: Rendering of the configuration artifacts installed into the
//     target (settings.yml, the systemd service unit)
package io
