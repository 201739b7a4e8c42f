package game

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/annel0/voxel-builder/internal/world"
)

// Ограничения орбитальной камеры
const (
	MinCameraDistance = 10.0
	MaxCameraDistance = 50.0
	MinCameraPitch    = -math.Pi / 2
	MaxCameraPitch    = math.Pi / 2
)

// OrbitCamera — орбитальная камера вокруг центра строительного объёма.
// Камера — чисто презентационное состояние: её изменение никогда
// не затрагивает сетку.
type OrbitCamera struct {
	mu       sync.Mutex
	yaw      float64
	pitch    float64
	distance float64
	target   mgl64.Vec3
	fovY     float64 // вертикальный угол обзора, радианы
	aspect   float64 // ширина/высота вьюпорта
}

// Ray — луч в мировых координатах
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3 // нормализован
}

// NewOrbitCamera создаёт камеру, нацеленную на центр сетки
func NewOrbitCamera() *OrbitCamera {
	center := float64(world.GridSize-1) / 2
	return &OrbitCamera{
		yaw:      math.Pi / 4,
		pitch:    math.Pi / 6,
		distance: 25,
		target:   mgl64.Vec3{center, center, center},
		fovY:     60 * math.Pi / 180,
		aspect:   16.0 / 9.0,
	}
}

// SetViewport обновляет соотношение сторон вьюпорта
func (c *OrbitCamera) SetViewport(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	c.mu.Lock()
	c.aspect = width / height
	c.mu.Unlock()
}

// Orbit поворачивает камеру на указанные дельты.
// Yaw не ограничен, pitch зажимается в [-π/2, π/2].
func (c *OrbitCamera) Orbit(dYaw, dPitch float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.yaw += dYaw
	c.pitch = clampFloat(c.pitch+dPitch, MinCameraPitch, MaxCameraPitch)
}

// Zoom изменяет дистанцию на delta.
// Итог зажимается в [MinCameraDistance, MaxCameraDistance] независимо
// от накопленной величины скролла.
func (c *OrbitCamera) Zoom(delta float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.distance = clampFloat(c.distance+delta, MinCameraDistance, MaxCameraDistance)
}

// Distance возвращает текущую дистанцию до цели
func (c *OrbitCamera) Distance() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.distance
}

// Angles возвращает текущие yaw и pitch
func (c *OrbitCamera) Angles() (yaw, pitch float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.yaw, c.pitch
}

// Position возвращает позицию камеры в мировых координатах
func (c *OrbitCamera) Position() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.positionLocked()
}

func (c *OrbitCamera) positionLocked() mgl64.Vec3 {
	cosPitch := math.Cos(c.pitch)
	offset := mgl64.Vec3{
		cosPitch * math.Sin(c.yaw),
		math.Sin(c.pitch),
		cosPitch * math.Cos(c.yaw),
	}.Mul(c.distance)
	return c.target.Add(offset)
}

// ScreenRay строит мировой луч через точку вьюпорта.
// nx, ny — нормализованные координаты указателя в [-1, 1]
// (ny растёт вверх, как в NDC).
func (c *OrbitCamera) ScreenRay(nx, ny float64) Ray {
	c.mu.Lock()
	defer c.mu.Unlock()

	pos := c.positionLocked()
	forward := c.target.Sub(pos).Normalize()

	worldUp := mgl64.Vec3{0, 1, 0}
	// На полюсах forward коллинеарен worldUp — берём запасную ось.
	if math.Abs(forward.Dot(worldUp)) > 0.9999 {
		worldUp = mgl64.Vec3{0, 0, -1}
	}
	right := forward.Cross(worldUp).Normalize()
	up := right.Cross(forward)

	tanHalfFov := math.Tan(c.fovY / 2)
	dir := forward.
		Add(right.Mul(nx * tanHalfFov * c.aspect)).
		Add(up.Mul(ny * tanHalfFov)).
		Normalize()

	return Ray{Origin: pos, Dir: dir}
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
