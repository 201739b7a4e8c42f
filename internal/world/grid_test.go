package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-builder/internal/vec"
	"github.com/annel0/voxel-builder/internal/world/block"
)

func TestGridStore_PlaceAndRemove(t *testing.T) {
	gs := NewGridStore()
	c := vec.Vec3{X: 3, Y: 4, Z: 5}

	// Установка в пустую ячейку
	assert.True(t, gs.Place(c, block.CubeBlockID), "установка в пустую ячейку должна пройти")
	assert.True(t, gs.Occupied(c), "ячейка должна быть занята")
	assert.Equal(t, 1, gs.Count())

	// Удаление возвращает сетку к исходному состоянию
	assert.True(t, gs.Remove(c), "удаление занятой ячейки должно пройти")
	assert.False(t, gs.Occupied(c), "ячейка должна быть пуста")
	assert.Equal(t, 0, gs.Count())
}

func TestGridStore_PlaceRejectsOccupied(t *testing.T) {
	gs := NewGridStore()
	c := vec.Vec3{X: 1, Y: 1, Z: 1}

	require.True(t, gs.Place(c, block.StoneBlockID))

	// Повторная установка отклоняется и ничего не меняет
	assert.False(t, gs.Place(c, block.WoodBlockID), "занятая ячейка должна отклонить установку")
	assert.Equal(t, 1, gs.Count())

	// Блок сохраняет исходный тип
	occupant, exists := gs.Get(c)
	require.True(t, exists)
	assert.Equal(t, block.StoneBlockID, occupant.Type, "тип первоначального блока должен сохраниться")
}

func TestGridStore_Bounds(t *testing.T) {
	gs := NewGridStore()

	outOfBounds := []vec.Vec3{
		{X: -1, Y: 0, Z: 0},
		{X: 0, Y: -1, Z: 0},
		{X: 0, Y: 0, Z: -1},
		{X: 10, Y: 0, Z: 0},
		{X: 0, Y: 10, Z: 0},
		{X: 0, Y: 0, Z: 10},
		{X: 100, Y: -50, Z: 7},
	}

	for _, c := range outOfBounds {
		assert.False(t, gs.Place(c, block.CubeBlockID), "установка вне границ %+v должна отклоняться", c)
		assert.False(t, gs.Remove(c), "удаление вне границ %+v должно отклоняться", c)
	}
	assert.Equal(t, 0, gs.Count(), "отклонённые операции не должны мутировать сетку")

	// Граничные ячейки допустимы
	assert.True(t, gs.Place(vec.Vec3{X: 0, Y: 0, Z: 0}, block.CubeBlockID))
	assert.True(t, gs.Place(vec.Vec3{X: 9, Y: 9, Z: 9}, block.CubeBlockID))
}

func TestGridStore_RemoveEmptyCell(t *testing.T) {
	gs := NewGridStore()

	assert.False(t, gs.Remove(vec.Vec3{X: 5, Y: 5, Z: 5}), "удаление из пустой ячейки должно отклоняться")
	assert.Equal(t, 0, gs.Count())
}

func TestGridStore_Clear(t *testing.T) {
	gs := NewGridStore()
	gs.Place(vec.Vec3{X: 0, Y: 0, Z: 0}, block.CubeBlockID)
	gs.Place(vec.Vec3{X: 1, Y: 0, Z: 0}, block.SlopeBlockID)

	gs.Clear()

	assert.Equal(t, 0, gs.Count())
	assert.Empty(t, gs.Snapshot())
}

func TestGridStore_SnapshotOrder(t *testing.T) {
	gs := NewGridStore()
	cells := []vec.Vec3{
		{X: 9, Y: 0, Z: 9},
		{X: 0, Y: 5, Z: 0},
		{X: 4, Y: 4, Z: 4},
	}
	for _, c := range cells {
		require.True(t, gs.Place(c, block.CubeBlockID))
	}

	snapshot := gs.Snapshot()
	require.Len(t, snapshot, len(cells))

	// Snapshot сохраняет порядок установки
	for i, c := range cells {
		assert.Equal(t, c, snapshot[i].Cell, "позиция %d в снимке", i)
	}
}

func TestGridStore_SnapshotIsCopy(t *testing.T) {
	gs := NewGridStore()
	gs.Place(vec.Vec3{X: 2, Y: 2, Z: 2}, block.CubeBlockID)

	snapshot := gs.Snapshot()
	gs.Clear()

	// Снимок не зависит от последующих мутаций
	assert.Len(t, snapshot, 1)
	assert.Equal(t, 0, gs.Count())
}

func TestGridStore_UnknownTypeStoredVerbatim(t *testing.T) {
	gs := NewGridStore()
	c := vec.Vec3{X: 7, Y: 7, Z: 7}

	require.True(t, gs.Place(c, block.BlockID("crystal")))

	occupant, exists := gs.Get(c)
	require.True(t, exists)
	assert.Equal(t, block.BlockID("crystal"), occupant.Type, "неизвестный тег хранится как есть")
}

func TestGridStore_FullOccupancy(t *testing.T) {
	gs := NewGridStore()

	for x := 0; x < GridSize; x++ {
		for y := 0; y < GridSize; y++ {
			for z := 0; z < GridSize; z++ {
				require.True(t, gs.Place(vec.Vec3{X: x, Y: y, Z: z}, block.CubeBlockID))
			}
		}
	}

	assert.Equal(t, 1000, gs.Count(), "полная сетка содержит 1000 блоков")
	assert.Len(t, gs.Snapshot(), 1000)
}
