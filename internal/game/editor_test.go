package game

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-builder/internal/persist"
	"github.com/annel0/voxel-builder/internal/storage"
	"github.com/annel0/voxel-builder/internal/vec"
	"github.com/annel0/voxel-builder/internal/world"
	"github.com/annel0/voxel-builder/internal/world/block"
)

// recordingRenderer фиксирует уведомления контроллера, чтобы проверить
// контракт «рендерер уведомляется только об успешных операциях».
type recordingRenderer struct {
	added   []vec.Vec3
	removed []vec.Vec3
	hit     mgl64.Vec3
	hasHit  bool
}

func (r *recordingRenderer) AddBlock(cell vec.Vec3, _ block.BlockID) {
	r.added = append(r.added, cell)
}

func (r *recordingRenderer) RemoveBlock(cell vec.Vec3) {
	r.removed = append(r.removed, cell)
}

func (r *recordingRenderer) CastRay(_ Ray) (mgl64.Vec3, bool) {
	return r.hit, r.hasHit
}

func newTestEditor(rend Renderer) (*Editor, *world.GridStore) {
	grid := world.NewGridStore()
	adapter := persist.NewAdapter(storage.NewMemorySlotStorage(), "test:slot", false)
	return NewEditor(grid, rend, NewOrbitCamera(), adapter), grid
}

func TestEditor_PlaceNotifiesRendererOnSuccess(t *testing.T) {
	rend := &recordingRenderer{hit: mgl64.Vec3{3, 0, 3}, hasHit: true}
	ed, grid := newTestEditor(rend)

	cell, ok := ed.PlaceAtPointer(0, 0)
	require.True(t, ok)
	assert.Equal(t, vec.Vec3{X: 3, Y: 0, Z: 3}, cell)
	assert.Equal(t, 1, grid.Count())
	require.Len(t, rend.added, 1)
	assert.Equal(t, cell, rend.added[0])
}

func TestEditor_PlaceIntoOccupiedIsSilentNoop(t *testing.T) {
	rend := &recordingRenderer{hit: mgl64.Vec3{3, 0, 3}, hasHit: true}
	ed, grid := newTestEditor(rend)

	_, ok := ed.PlaceAtPointer(0, 0)
	require.True(t, ok)

	// Повторная установка в ту же ячейку: сетка не меняется,
	// рендерер не получает второго уведомления.
	_, ok = ed.PlaceAtPointer(0, 0)
	assert.False(t, ok)
	assert.Equal(t, 1, grid.Count())
	assert.Len(t, rend.added, 1, "рендерер уведомляется только при изменении сетки")
}

func TestEditor_PlaceWithoutIntersection(t *testing.T) {
	rend := &recordingRenderer{hasHit: false}
	ed, grid := newTestEditor(rend)

	_, ok := ed.PlaceAtPointer(0, 0)
	assert.False(t, ok)
	assert.Equal(t, 0, grid.Count())
	assert.Empty(t, rend.added)
}

func TestEditor_RemoveAtPointer(t *testing.T) {
	rend := &recordingRenderer{hit: mgl64.Vec3{5, 0, 5}, hasHit: true}
	ed, grid := newTestEditor(rend)

	_, ok := ed.PlaceAtPointer(0, 0)
	require.True(t, ok)

	cell, ok := ed.RemoveAtPointer(0, 0)
	require.True(t, ok)
	assert.Equal(t, vec.Vec3{X: 5, Y: 0, Z: 5}, cell)
	assert.Equal(t, 0, grid.Count())
	require.Len(t, rend.removed, 1)

	// Удаление из уже пустой ячейки — молчаливый no-op
	_, ok = ed.RemoveAtPointer(0, 0)
	assert.False(t, ok)
	assert.Len(t, rend.removed, 1)
}

func TestEditor_SelectBlockType(t *testing.T) {
	rend := &recordingRenderer{hit: mgl64.Vec3{1, 0, 1}, hasHit: true}
	ed, grid := newTestEditor(rend)

	assert.Equal(t, block.CubeBlockID, ed.SelectedBlockType(), "тип по умолчанию — куб")

	assert.False(t, ed.SelectBlockType(""), "пустой тег отклоняется")
	assert.Equal(t, block.CubeBlockID, ed.SelectedBlockType())

	// Незнакомый тег допустим и сохраняется в сетку как есть
	require.True(t, ed.SelectBlockType(block.BlockID("crystal")))
	_, ok := ed.PlaceAtPointer(0, 0)
	require.True(t, ok)

	placed, exists := grid.Get(vec.Vec3{X: 1, Y: 0, Z: 1})
	require.True(t, exists)
	assert.Equal(t, block.BlockID("crystal"), placed.Type)
}

func TestEditor_ClearRequiresConfirmation(t *testing.T) {
	rend := &recordingRenderer{hit: mgl64.Vec3{2, 0, 2}, hasHit: true}
	ed, grid := newTestEditor(rend)

	_, ok := ed.PlaceAtPointer(0, 0)
	require.True(t, ok)

	// Отказ в подтверждении оставляет сетку нетронутой
	assert.False(t, ed.Clear(ConfirmFunc(func(string) bool { return false })))
	assert.Equal(t, 1, grid.Count())

	// nil-подтверждение тоже не очищает
	assert.False(t, ed.Clear(nil))
	assert.Equal(t, 1, grid.Count())

	// Утвердительный ответ очищает сетку и сцену
	assert.True(t, ed.Clear(ConfirmFunc(func(string) bool { return true })))
	assert.Equal(t, 0, grid.Count())
	assert.Len(t, rend.removed, 1)
}

func TestEditor_Stats(t *testing.T) {
	grid := world.NewGridStore()
	ed := NewEditor(grid, NewScene(), NewOrbitCamera(), nil)

	// Пустая сетка — сентинел, не NaN и не ошибка
	stats := ed.Stats()
	assert.Equal(t, 0, stats.Count)
	assert.False(t, stats.HasBlocks)

	grid.Place(vec.Vec3{X: 0, Y: 0, Z: 0}, block.CubeBlockID)
	grid.Place(vec.Vec3{X: 2, Y: 0, Z: 0}, block.CubeBlockID)

	stats = ed.Stats()
	assert.Equal(t, 2, stats.Count)
	assert.True(t, stats.HasBlocks)
	assert.Equal(t, vec.Vec3{X: 1, Y: 0, Z: 0}, stats.Average, "среднее по каждой оси независимо")
}

func TestEditor_SaveLoadRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 1000} {
		t.Run(fmt.Sprintf("блоков_%d", n), func(t *testing.T) {
			grid := world.NewGridStore()
			scene := NewScene()
			adapter := persist.NewAdapter(storage.NewMemorySlotStorage(), "test:slot", false)
			ed := NewEditor(grid, scene, NewOrbitCamera(), adapter)

			placed := 0
			for x := 0; x < world.GridSize && placed < n; x++ {
				for y := 0; y < world.GridSize && placed < n; y++ {
					for z := 0; z < world.GridSize && placed < n; z++ {
						require.True(t, grid.Place(vec.Vec3{X: x, Y: y, Z: z}, block.StoneBlockID))
						scene.AddBlock(vec.Vec3{X: x, Y: y, Z: z}, block.StoneBlockID)
						placed++
					}
				}
			}

			require.NoError(t, ed.Save())
			require.True(t, ed.Clear(ConfirmFunc(func(string) bool { return true })))
			require.Equal(t, 0, grid.Count())

			restored, err := ed.Load()
			require.NoError(t, err)
			assert.Equal(t, n, restored)
			assert.Equal(t, n, grid.Count())
			assert.Equal(t, n, scene.PrimitiveCount(), "сцена восстановлена вместе с сеткой")
		})
	}
}

func TestEditor_LoadWithoutSave(t *testing.T) {
	ed, _ := newTestEditor(NewScene())

	_, err := ed.Load()
	assert.ErrorIs(t, err, persist.ErrSaveNotFound)
}

func TestEditor_LoadReplacesCurrentState(t *testing.T) {
	grid := world.NewGridStore()
	adapter := persist.NewAdapter(storage.NewMemorySlotStorage(), "test:slot", false)
	ed := NewEditor(grid, NewScene(), NewOrbitCamera(), adapter)

	grid.Place(vec.Vec3{X: 0, Y: 0, Z: 0}, block.CubeBlockID)
	require.NoError(t, ed.Save())

	// Текущее состояние после сохранения меняется
	grid.Place(vec.Vec3{X: 9, Y: 9, Z: 9}, block.WoodBlockID)

	restored, err := ed.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, restored)
	assert.Equal(t, 1, grid.Count(), "загрузка замещает, а не дополняет")
	assert.True(t, grid.Occupied(vec.Vec3{X: 0, Y: 0, Z: 0}))
	assert.False(t, grid.Occupied(vec.Vec3{X: 9, Y: 9, Z: 9}))
}

func TestEditor_LoadSkipsCorruptEntries(t *testing.T) {
	store := storage.NewMemorySlotStorage()
	adapter := persist.NewAdapter(store, "test:slot", false)
	ed := NewEditor(world.NewGridStore(), NewScene(), NewOrbitCamera(), adapter)

	// Повреждённое сохранение: координата вне границ и дубликат ячейки
	blob := persist.SaveBlob{
		ID: "corrupt",
		Blocks: []persist.SavedBlock{
			{X: 1, Y: 1, Z: 1, Type: "cube"},
			{X: 42, Y: 0, Z: 0, Type: "cube"},
			{X: 1, Y: 1, Z: 1, Type: "stone"},
			{X: 2, Y: 2, Z: 2, Type: "cube"},
		},
	}
	data, err := json.Marshal(blob)
	require.NoError(t, err)
	require.NoError(t, store.Set("test:slot", data))

	restored, err := ed.Load()
	require.NoError(t, err, "повреждённые записи пропускаются молча")
	assert.Equal(t, 2, restored, "восстановлены только валидные записи")
}
