package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "exportacao", Fold("Exportação"))
	assert.Equal(t, "sao paulo", Fold("  SÃO Paulo "))
	assert.Equal(t, "bio-2024-001", Fold("BIO-2024-001"))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("", "qualquer"))
	assert.True(t, ContainsFold("ceara", "Unidade Ceará"))
	assert.True(t, ContainsFold("biocol", "DA-001", "Biocol Ltda"))
	assert.False(t, ContainsFold("santos", "Pecém", "Itajaí"))
}
