// Package provider defines the narrow target control interface the
// provisioner runs against, so the provisioning core can be tested against a
// fake backend without real infrastructure.
package provider
