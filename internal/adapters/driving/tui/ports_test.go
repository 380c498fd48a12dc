package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redlinehq/redline/internal/adapters/driven/storage/memory"
	"github.com/redlinehq/redline/internal/core/services"
)

func TestPortsValidate(t *testing.T) {
	annotations := services.NewAnnotationService(memory.NewAnnotationStore())
	workspace := services.NewWorkspaceService(memory.NewWorkspaceStore())

	t.Run("valid with required ports", func(t *testing.T) {
		p := &Ports{Annotations: annotations, Workspace: workspace}
		assert.NoError(t, p.Validate())
	})

	t.Run("missing annotation service", func(t *testing.T) {
		p := &Ports{Workspace: workspace}
		assert.ErrorIs(t, p.Validate(), ErrMissingAnnotationService)
	})

	t.Run("missing workspace service", func(t *testing.T) {
		p := &Ports{Annotations: annotations}
		assert.ErrorIs(t, p.Validate(), ErrMissingWorkspaceService)
	})

	t.Run("sync and bridge are optional", func(t *testing.T) {
		p := &Ports{Annotations: annotations, Workspace: workspace}
		assert.Nil(t, p.Sync)
		assert.Nil(t, p.Bridge)
		assert.NoError(t, p.Validate())
	})
}
