package collectionmethod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mutual/loanlifecycle/internal/pkg/consts"
	"mutual/loanlifecycle/internal/pkg/models"
)

func TestBatchStaging(t *testing.T) {
	t.Run("Staged entries start as drafts", func(t *testing.T) {
		batch := NewBatch()
		batch.Stage("EFE", "Efectivo")
		batch.Stage("DEB", "Débito automático")

		require.Equal(t, 2, batch.Len())
		for _, entry := range batch.Entries() {
			assert.False(t, entry.Edited)
		}
	})

	t.Run("Editing marks the entry as touched", func(t *testing.T) {
		batch := NewBatch()
		batch.Stage("EFE", "Efectivo")

		require.NoError(t, batch.Edit(0, "EFE", "Efectivo en ventanilla"))

		entries := batch.Entries()
		assert.True(t, entries[0].Edited)
		assert.Equal(t, "Efectivo en ventanilla", entries[0].Name)
	})

	t.Run("Draft entries can be removed", func(t *testing.T) {
		batch := NewBatch()
		batch.Stage("EFE", "Efectivo")
		batch.Stage("DEB", "Débito automático")

		require.NoError(t, batch.Remove(0))

		require.Equal(t, 1, batch.Len())
		assert.Equal(t, "DEB", batch.Entries()[0].Code)
	})

	t.Run("Touched entries cannot be removed", func(t *testing.T) {
		batch := NewBatch()
		batch.Stage("EFE", "Efectivo")
		require.NoError(t, batch.Edit(0, "EFE", "Efectivo en caja"))

		err := batch.Remove(0)

		var de *models.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, models.KindConflict, de.Kind)
		assert.Equal(t, consts.MsgBatchEntryTouched, de.Message)
		assert.Equal(t, 1, batch.Len())
	})

	t.Run("Out-of-range indexes", func(t *testing.T) {
		batch := NewBatch()
		batch.Stage("EFE", "Efectivo")

		assert.Error(t, batch.Edit(5, "X", "Y"))
		assert.Error(t, batch.Edit(-1, "X", "Y"))
		assert.Error(t, batch.Remove(5))
		assert.Error(t, batch.Remove(-1))
	})

	t.Run("Entries are trimmed on staging and editing", func(t *testing.T) {
		batch := NewBatch()
		batch.Stage("  EFE  ", "  Efectivo  ")

		entries := batch.Entries()
		assert.Equal(t, "EFE", entries[0].Code)
		assert.Equal(t, "Efectivo", entries[0].Name)
	})
}
