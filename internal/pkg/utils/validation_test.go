package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mutual/loanlifecycle/internal/pkg/models"
)

func TestValidateStruct(t *testing.T) {
	t.Run("Valid entry", func(t *testing.T) {
		entry := models.CollectionMethodEntry{Code: "EFE", Name: "Efectivo"}
		assert.NoError(t, ValidateStruct(entry))
	})

	t.Run("Missing code", func(t *testing.T) {
		entry := models.CollectionMethodEntry{Name: "Efectivo"}
		assert.Error(t, ValidateStruct(entry))
	})

	t.Run("Missing name", func(t *testing.T) {
		entry := models.CollectionMethodEntry{Code: "EFE"}
		assert.Error(t, ValidateStruct(entry))
	})
}
