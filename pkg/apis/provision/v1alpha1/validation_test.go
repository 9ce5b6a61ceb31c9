package v1alpha1_test

import (
	"testing"

	"github.com/Vakrehus/searxup/pkg/apis/provision/v1alpha1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDefaults(t *testing.T) {
	t.Parallel()

	doc := v1alpha1.NewProvision()

	require.NoError(t, doc.Validate())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(doc *v1alpha1.Provision)
		expected error
	}{
		{
			name:     "empty target name",
			mutate:   func(doc *v1alpha1.Provision) { doc.Spec.Target.Name = "" },
			expected: v1alpha1.ErrTargetNameEmpty,
		},
		{
			name:     "empty target image",
			mutate:   func(doc *v1alpha1.Provision) { doc.Spec.Target.Image = "" },
			expected: v1alpha1.ErrTargetImageEmpty,
		},
		{
			name:     "zero cores",
			mutate:   func(doc *v1alpha1.Provision) { doc.Spec.Target.Sizing.Cores = 0 },
			expected: v1alpha1.ErrInvalidSizing,
		},
		{
			name:     "negative memory",
			mutate:   func(doc *v1alpha1.Provision) { doc.Spec.Target.Sizing.MemoryMB = -1 },
			expected: v1alpha1.ErrInvalidSizing,
		},
		{
			name:     "empty bind address",
			mutate:   func(doc *v1alpha1.Provision) { doc.Spec.Service.BindAddress = "" },
			expected: v1alpha1.ErrBindAddressEmpty,
		},
		{
			name:     "port too low",
			mutate:   func(doc *v1alpha1.Provision) { doc.Spec.Service.Port = 0 },
			expected: v1alpha1.ErrInvalidPort,
		},
		{
			name:     "port too high",
			mutate:   func(doc *v1alpha1.Provision) { doc.Spec.Service.Port = 65536 },
			expected: v1alpha1.ErrInvalidPort,
		},
		{
			name:     "empty cache URL",
			mutate:   func(doc *v1alpha1.Provision) { doc.Spec.Service.CacheURL = "" },
			expected: v1alpha1.ErrCacheURLEmpty,
		},
		{
			name: "engine without shortcut",
			mutate: func(doc *v1alpha1.Provision) {
				doc.Spec.Service.Engines = []v1alpha1.Engine{
					{Name: "google", Driver: "google"},
				}
			},
			expected: v1alpha1.ErrEngineIncomplete,
		},
		{
			name: "duplicate engine shortcut",
			mutate: func(doc *v1alpha1.Provision) {
				doc.Spec.Service.Engines = []v1alpha1.Engine{
					{Name: "google", Driver: "google", Shortcut: "gg"},
					{Name: "github", Driver: "github", Shortcut: "gg"},
				}
			},
			expected: v1alpha1.ErrDuplicateShortcut,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			doc := v1alpha1.NewProvision()
			test.mutate(doc)

			assert.ErrorIs(t, doc.Validate(), test.expected)
		})
	}
}

func TestNewProvisionDefaults(t *testing.T) {
	t.Parallel()

	doc := v1alpha1.NewProvision()

	assert.Equal(t, v1alpha1.APIVersion, doc.APIVersion)
	assert.Equal(t, v1alpha1.Kind, doc.Kind)
	assert.Equal(t, "searxng", doc.Spec.Target.Name)
	assert.Equal(t, "searxng-server", doc.Spec.Target.Hostname)
	assert.Equal(t, "debian:12", doc.Spec.Target.Image)
	assert.Equal(t, 8888, doc.Spec.Service.Port)
	assert.Equal(t, "0.0.0.0", doc.Spec.Service.BindAddress)
	assert.Len(t, doc.Spec.Service.Engines, 4)
}
