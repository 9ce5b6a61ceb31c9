// Package v1alpha1 contains the versioned configuration types for searxup
// provisioning documents (searxup.yaml).
package v1alpha1
