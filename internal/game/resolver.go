package game

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/annel0/voxel-builder/internal/vec"
	"github.com/annel0/voxel-builder/internal/world"
)

// Resolver переводит позицию указателя в ячейку сетки:
// луч от камеры → ближайшее пересечение со сценой → округление →
// независимый зажим каждой оси в границы сетки.
type Resolver struct {
	camera *OrbitCamera
	scene  Renderer
}

// NewResolver создаёт резолвер координат
func NewResolver(camera *OrbitCamera, scene Renderer) *Resolver {
	return &Resolver{camera: camera, scene: scene}
}

// Resolve возвращает ячейку под указателем.
// nx, ny — нормализованные координаты указателя в [-1, 1].
// Второй результат false, если луч не пересёк ни одной поверхности —
// в этом случае запросившая операция должна стать no-op.
func (r *Resolver) Resolve(nx, ny float64) (vec.Vec3, bool) {
	ray := r.camera.ScreenRay(nx, ny)
	point, ok := r.scene.CastRay(ray)
	if !ok {
		return vec.Vec3{}, false
	}
	return CellFromPoint(point), true
}

// CellFromPoint проецирует непрерывную точку сцены на ячейку сетки.
// Сначала округление до ближайшего целого (половины — от нуля),
// затем зажим каждой оси в [0, GridSize-1]. Политика «зажим после
// округления» делает установку у края объёма прощающей: луч,
// скользнувший по внешней грани, всё равно даёт граничную ячейку.
func CellFromPoint(point mgl64.Vec3) vec.Vec3 {
	rounded := vec.Vec3Float{X: point.X(), Y: point.Y(), Z: point.Z()}.Round()
	return rounded.Clamp(0, world.GridSize-1)
}
