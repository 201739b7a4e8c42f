package world

import (
	"sort"
	"sync"
	"time"

	"github.com/annel0/voxel-builder/internal/vec"
	"github.com/annel0/voxel-builder/internal/world/block"
)

// GridSize определяет размер строительного объёма по каждой оси.
// Допустимые координаты ячеек — [0, GridSize-1].
const GridSize = 10

// PlacedBlock представляет типизированный блок, занимающий одну ячейку
type PlacedBlock struct {
	Cell     vec.Vec3      // Координаты занятой ячейки
	Type     block.BlockID // Тип блока (тег хранится как есть, даже если неизвестен)
	PlacedAt time.Time     // Время установки

	seq uint64 // порядковый номер установки, задаёт порядок Snapshot
}

// GridStore владеет состоянием сетки 10×10×10.
// Единственный источник истины — разреженная карта ячейка → блок;
// плоский список выводится из неё в Snapshot, поэтому рассинхронизация
// двух представлений невозможна.
type GridStore struct {
	mu      sync.RWMutex
	blocks  map[vec.Vec3]PlacedBlock
	nextSeq uint64
}

// NewGridStore создаёт пустую сетку
func NewGridStore() *GridStore {
	return &GridStore{
		blocks: make(map[vec.Vec3]PlacedBlock),
	}
}

// InBounds проверяет, лежит ли каждая координата ячейки в [0, GridSize-1]
func InBounds(cell vec.Vec3) bool {
	return cell.X >= 0 && cell.X < GridSize &&
		cell.Y >= 0 && cell.Y < GridSize &&
		cell.Z >= 0 && cell.Z < GridSize
}

// Place устанавливает блок указанного типа в ячейку.
// Возвращает false без каких-либо изменений, если ячейка вне границ
// или уже занята. Тип блока не валидируется: неизвестные теги хранятся verbatim.
func (gs *GridStore) Place(cell vec.Vec3, blockType block.BlockID) bool {
	if !InBounds(cell) {
		return false
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	if _, occupied := gs.blocks[cell]; occupied {
		return false
	}

	gs.blocks[cell] = PlacedBlock{
		Cell:     cell,
		Type:     blockType,
		PlacedAt: time.Now(),
		seq:      gs.nextSeq,
	}
	gs.nextSeq++
	return true
}

// Remove удаляет блок из ячейки.
// Возвращает false, если ячейка вне границ или пуста.
func (gs *GridStore) Remove(cell vec.Vec3) bool {
	if !InBounds(cell) {
		return false
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	if _, occupied := gs.blocks[cell]; !occupied {
		return false
	}

	delete(gs.blocks, cell)
	return true
}

// Clear безусловно опустошает сетку.
// Подтверждение намерения — ответственность вызывающего.
func (gs *GridStore) Clear() {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.blocks = make(map[vec.Vec3]PlacedBlock)
}

// Get возвращает блок, занимающий ячейку, если она занята
func (gs *GridStore) Get(cell vec.Vec3) (PlacedBlock, bool) {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	b, occupied := gs.blocks[cell]
	return b, occupied
}

// Occupied проверяет, занята ли ячейка
func (gs *GridStore) Occupied(cell vec.Vec3) bool {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	_, occupied := gs.blocks[cell]
	return occupied
}

// Count возвращает количество установленных блоков
func (gs *GridStore) Count() int {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	return len(gs.blocks)
}

// Snapshot возвращает плоский список блоков в порядке установки.
// Список — копия текущего состояния на момент вызова; мутации сетки
// после возврата на него не влияют.
func (gs *GridStore) Snapshot() []PlacedBlock {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	list := make([]PlacedBlock, 0, len(gs.blocks))
	for _, b := range gs.blocks {
		list = append(list, b)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].seq < list[j].seq
	})
	return list
}
