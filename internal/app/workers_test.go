package app

import (
	"testing"

	"admissions-workers/internal/common/errors"
	"admissions-workers/pkg/registry"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityRegistryMatchesWorkers(t *testing.T) {
	reg, err := registry.LoadRegistry(afero.NewOsFs(), "../../"+registry.DefaultPath)
	require.NoError(t, err)

	assert.NoError(t, reg.Validate(TaskTypes(), errors.Codes()))
	assert.ElementsMatch(t, TaskTypes(), reg.TaskTypes())
}
