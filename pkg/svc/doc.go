// Package svc provides the service layer for searxup.
//
// This package contains the business logic that coordinates between the CLI
// commands and the target backend.
//
// Subpackages:
//   - provider: Target control backends (Docker)
//   - provisioner: The idempotent provisioning step sequence
//   - secret: Secret key generation for the installed service
package svc
