package game

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/annel0/voxel-builder/internal/vec"
	"github.com/annel0/voxel-builder/internal/world"
	"github.com/annel0/voxel-builder/internal/world/block"
)

// Renderer — внешняя граница отрисовки, потребляемая контроллером.
// Реализация обязана уметь добавить/убрать примитив для ячейки
// и вернуть ближайшее пересечение луча с поверхностью сцены.
type Renderer interface {
	// AddBlock добавляет визуальный примитив в ячейке
	AddBlock(cell vec.Vec3, blockType block.BlockID)

	// RemoveBlock убирает примитив, ранее добавленный в ячейке
	RemoveBlock(cell vec.Vec3)

	// CastRay возвращает ближайшую точку пересечения луча со сценой
	CastRay(ray Ray) (mgl64.Vec3, bool)
}

// PrimitiveID — непрозрачный дескриптор примитива сцены
type PrimitiveID uint64

// Верх опорной плиты, на которую ставится первый слой блоков.
// Центры блоков лежат на целых координатах, поэтому плита — это
// плоскость y = -0.5 в пределах основания сетки.
const plateY = -0.5

type scenePrimitive struct {
	cell      vec.Vec3
	blockType block.BlockID
}

// Scene — headless-реализация Renderer.
// Вместо сканирования графа сцены при удалении держит явную карту
// ячейка → дескриптор примитива, так что удаление — прямой lookup.
type Scene struct {
	mu      sync.RWMutex
	handles map[vec.Vec3]PrimitiveID
	prims   map[PrimitiveID]scenePrimitive
	nextID  PrimitiveID
}

// NewScene создаёт пустую сцену
func NewScene() *Scene {
	return &Scene{
		handles: make(map[vec.Vec3]PrimitiveID),
		prims:   make(map[PrimitiveID]scenePrimitive),
		nextID:  1,
	}
}

// AddBlock добавляет примитив блока в ячейке
func (s *Scene) AddBlock(cell vec.Vec3, blockType block.BlockID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.handles[cell]; exists {
		return
	}
	id := s.nextID
	s.nextID++
	s.handles[cell] = id
	s.prims[id] = scenePrimitive{cell: cell, blockType: blockType}
}

// RemoveBlock убирает примитив из ячейки
func (s *Scene) RemoveBlock(cell vec.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, exists := s.handles[cell]
	if !exists {
		return
	}
	delete(s.handles, cell)
	delete(s.prims, id)
}

// PrimitiveCount возвращает число примитивов блоков в сцене
func (s *Scene) PrimitiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.prims)
}

// Handle возвращает дескриптор примитива ячейки, если он есть
func (s *Scene) Handle(cell vec.Vec3) (PrimitiveID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, exists := s.handles[cell]
	return id, exists
}

// CastRay возвращает ближайшее пересечение луча с примитивами блоков
// (единичные AABB с центрами в целых координатах) или с опорной плитой.
func (s *Scene) CastRay(ray Ray) (mgl64.Vec3, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bestT := math.Inf(1)
	hit := false

	for _, prim := range s.prims {
		if t, ok := rayBoxIntersect(ray, prim.cell); ok && t < bestT {
			bestT = t
			hit = true
		}
	}

	if t, ok := rayPlateIntersect(ray); ok && t < bestT {
		bestT = t
		hit = true
	}

	if !hit {
		return mgl64.Vec3{}, false
	}
	return ray.Origin.Add(ray.Dir.Mul(bestT)), true
}

// rayBoxIntersect — slab-тест луча против AABB блока [c-0.5, c+0.5]³.
// Возвращает параметр t входа луча в бокс.
func rayBoxIntersect(ray Ray, cell vec.Vec3) (float64, bool) {
	const eps = 1e-12

	tMin := math.Inf(-1)
	tMax := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin[axis]
		dir := ray.Dir[axis]
		lo := float64([3]int{cell.X, cell.Y, cell.Z}[axis]) - 0.5
		hi := lo + 1

		if math.Abs(dir) < eps {
			// Луч параллелен осям слэба: либо внутри, либо мимо.
			if origin < lo || origin > hi {
				return 0, false
			}
			continue
		}

		t1 := (lo - origin) / dir
		t2 := (hi - origin) / dir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, false
		}
	}

	if tMax < eps {
		return 0, false // бокс позади луча
	}
	if tMin < eps {
		// Начало луча внутри бокса — поверхность на выходе.
		return tMax, true
	}
	return tMin, true
}

// rayPlateIntersect пересекает луч с верхней гранью опорной плиты
func rayPlateIntersect(ray Ray) (float64, bool) {
	const eps = 1e-12

	if math.Abs(ray.Dir.Y()) < eps {
		return 0, false
	}
	t := (plateY - ray.Origin.Y()) / ray.Dir.Y()
	if t < eps {
		return 0, false
	}

	x := ray.Origin.X() + ray.Dir.X()*t
	z := ray.Origin.Z() + ray.Dir.Z()*t
	if x < -0.5 || x > float64(world.GridSize)-0.5 {
		return 0, false
	}
	if z < -0.5 || z > float64(world.GridSize)-0.5 {
		return 0, false
	}
	return t, true
}
