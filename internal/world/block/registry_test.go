package block_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-builder/internal/world/block"
	_ "github.com/annel0/voxel-builder/internal/world/block/implementations"
)

func TestRegistry_StandardBlocksRegistered(t *testing.T) {
	ids := []block.BlockID{
		block.CubeBlockID,
		block.SlopeBlockID,
		block.PyramidBlockID,
		block.StoneBlockID,
		block.WoodBlockID,
	}

	for _, id := range ids {
		behavior, exists := block.Get(id)
		require.True(t, exists, "тип %s должен быть зарегистрирован", id)
		assert.Equal(t, id, behavior.ID())
		assert.NotEmpty(t, behavior.DisplayName())
		assert.NotEmpty(t, behavior.Color())
	}
}

func TestRegistry_IsValidBlockID(t *testing.T) {
	assert.True(t, block.IsValidBlockID(block.CubeBlockID))
	assert.False(t, block.IsValidBlockID(block.BlockID("crystal")))
}

func TestRegistry_ColorOfUnknownFallsBackToCube(t *testing.T) {
	cube, exists := block.Get(block.CubeBlockID)
	require.True(t, exists)

	// Неизвестный тег рисуется цветом куба
	assert.Equal(t, cube.Color(), block.ColorOf(block.BlockID("crystal")))
}

func TestRegistry_RegisteredIDs(t *testing.T) {
	ids := block.RegisteredIDs()
	assert.GreaterOrEqual(t, len(ids), 5, "должно быть минимум пять стандартных типов")
}
