package di_test

import (
	"testing"

	"github.com/Vakrehus/searxup/pkg/di"
	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRuntimeResolvesDefaults(t *testing.T) {
	t.Parallel()

	runtime := di.NewRuntime()

	tmr, err := di.ResolveTimer(runtime.Injector())
	require.NoError(t, err)
	assert.NotNil(t, tmr)

	providerFactory, err := di.ResolveProviderFactory(runtime.Injector())
	require.NoError(t, err)
	assert.NotNil(t, providerFactory)

	provisionerFactory, err := di.ResolveProvisionerFactory(runtime.Injector())
	require.NoError(t, err)
	assert.NotNil(t, provisionerFactory)
	assert.NotNil(t, provisionerFactory())
}

func TestResolveFailsWithoutProviders(t *testing.T) {
	t.Parallel()

	runtime := di.New()

	_, err := di.ResolveTimer(runtime.Injector())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve timer dependency")

	_, err = di.ResolveProviderFactory(runtime.Injector())
	require.Error(t, err)

	_, err = di.ResolveProvisionerFactory(runtime.Injector())
	require.Error(t, err)
}

func TestRuntimeAcceptsCustomProviders(t *testing.T) {
	t.Parallel()

	type marker struct{ name string }

	runtime := di.New(func(injector di.Injector) error {
		do.Provide(injector, func(di.Injector) (*marker, error) {
			return &marker{name: "custom"}, nil
		})

		return nil
	})

	resolved, err := do.Invoke[*marker](runtime.Injector())
	require.NoError(t, err)
	assert.Equal(t, "custom", resolved.name)
}
