package game

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/annel0/voxel-builder/internal/eventbus"
	"github.com/annel0/voxel-builder/internal/logging"
	"github.com/annel0/voxel-builder/internal/persist"
	"github.com/annel0/voxel-builder/internal/vec"
	"github.com/annel0/voxel-builder/internal/world"
	"github.com/annel0/voxel-builder/internal/world/block"
)

// Confirmer — способность UI запросить подтверждение у пользователя.
// Clear() вызывается только после утвердительного ответа; как именно
// подтверждение показано — дело поверхности UI.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc адаптирует функцию к интерфейсу Confirmer
type ConfirmFunc func(prompt string) bool

// Confirm вызывает функцию
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Stats — агрегированные счётчики по занятым ячейкам.
// При пустой сетке HasBlocks=false — это штатный сентинел, а не ошибка.
type Stats struct {
	Count     int      `json:"count"`
	HasBlocks bool     `json:"has_blocks"`
	Average   vec.Vec3 `json:"average"` // среднее по осям, каждая округлена независимо
}

// Editor — контроллер редактирования: переводит жесты пользователя
// в операции над GridStore и, только при успехе, уведомляет рендерер.
// Отклонённые операции для пользователя — молчаливый no-op.
type Editor struct {
	mu       sync.Mutex
	grid     *world.GridStore
	scene    Renderer
	camera   *OrbitCamera
	resolver *Resolver
	adapter  *persist.Adapter
	selected block.BlockID
	metrics  *EditMetrics
}

// NewEditor собирает контроллер из явно переданных компонентов.
// Никакого глобального состояния сессии: владелец редактора владеет
// и временем его жизни.
func NewEditor(grid *world.GridStore, scene Renderer, camera *OrbitCamera, adapter *persist.Adapter) *Editor {
	return &Editor{
		grid:     grid,
		scene:    scene,
		camera:   camera,
		resolver: NewResolver(camera, scene),
		adapter:  adapter,
		selected: block.CubeBlockID,
		metrics:  newEditMetrics(),
	}
}

// Camera возвращает орбитальную камеру сессии
func (e *Editor) Camera() *OrbitCamera { return e.camera }

// SelectBlockType выбирает тип для последующих установок.
// Пустой тег отклоняется; незнакомые теги допустимы (типы расширяемы).
func (e *Editor) SelectBlockType(t block.BlockID) bool {
	if t == "" {
		return false
	}

	e.mu.Lock()
	e.selected = t
	e.mu.Unlock()
	return true
}

// SelectedBlockType возвращает текущий выбранный тип
func (e *Editor) SelectedBlockType() block.BlockID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected
}

// PlaceAtPointer обрабатывает первичный жест: установку блока
// выбранного типа в ячейку под указателем.
// Возвращает ячейку и true только если сетка изменилась.
func (e *Editor) PlaceAtPointer(nx, ny float64) (vec.Vec3, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cell, ok := e.resolver.Resolve(nx, ny)
	if !ok {
		e.metrics.rejectedTotal.WithLabelValues("no_intersection").Inc()
		return vec.Vec3{}, false
	}

	if !e.grid.Place(cell, e.selected) {
		e.metrics.rejectedTotal.WithLabelValues("cell_occupied").Inc()
		return vec.Vec3{}, false
	}

	e.scene.AddBlock(cell, e.selected)
	e.metrics.placedTotal.Inc()
	e.metrics.blocksTotal.Set(float64(e.grid.Count()))
	e.publishEvent(world.EventTypeBlockPlaced, cell, e.selected)
	logging.Debug("Блок %s установлен в (%d,%d,%d)", e.selected, cell.X, cell.Y, cell.Z)
	return cell, true
}

// RemoveAtPointer обрабатывает вторичный жест: удаление блока
// из ячейки под указателем.
func (e *Editor) RemoveAtPointer(nx, ny float64) (vec.Vec3, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cell, ok := e.resolver.Resolve(nx, ny)
	if !ok {
		e.metrics.rejectedTotal.WithLabelValues("no_intersection").Inc()
		return vec.Vec3{}, false
	}

	removed, exists := e.grid.Get(cell)
	if !exists || !e.grid.Remove(cell) {
		e.metrics.rejectedTotal.WithLabelValues("cell_empty").Inc()
		return vec.Vec3{}, false
	}

	e.scene.RemoveBlock(cell)
	e.metrics.removedTotal.Inc()
	e.metrics.blocksTotal.Set(float64(e.grid.Count()))
	e.publishEvent(world.EventTypeBlockRemoved, cell, removed.Type)
	logging.Debug("Блок удалён из (%d,%d,%d)", cell.X, cell.Y, cell.Z)
	return cell, true
}

// Clear опустошает сетку после подтверждения.
// Без утвердительного ответа состояние не меняется.
func (e *Editor) Clear(confirmer Confirmer) bool {
	if confirmer == nil || !confirmer.Confirm("Удалить все блоки?") {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.clearLocked()
	e.metrics.clearsTotal.Inc()
	e.publishEvent(world.EventTypeGridCleared, vec.Vec3{}, "")
	logging.Info("🧹 Сетка очищена")
	return true
}

// clearLocked опустошает сетку и сцену. Вызывается под e.mu.
func (e *Editor) clearLocked() {
	for _, b := range e.grid.Snapshot() {
		e.scene.RemoveBlock(b.Cell)
	}
	e.grid.Clear()
	e.metrics.blocksTotal.Set(0)
}

// Save снимает снимок сетки и записывает его в слот сохранения
func (e *Editor) Save() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.adapter == nil {
		return errors.New("адаптер персистентности не настроен")
	}

	snapshot := e.grid.Snapshot()
	if err := e.adapter.Save(snapshot); err != nil {
		return err
	}

	e.metrics.savesTotal.Inc()
	logging.Info("💾 Сохранено блоков: %d", len(snapshot))
	return nil
}

// Load восстанавливает сетку из слота сохранения.
// Сетка сначала очищается, затем блоки проигрываются через Place
// в сохранённом порядке. Запись, которую не удалось установить
// (дубликат ячейки, координата вне границ в повреждённом сохранении),
// молча пропускается. Возвращает число успешно восстановленных блоков;
// при отсутствии сохранения — persist.ErrSaveNotFound.
func (e *Editor) Load() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.adapter == nil {
		return 0, errors.New("адаптер персистентности не настроен")
	}

	blob, err := e.adapter.Load()
	if err != nil {
		return 0, err
	}

	e.clearLocked()

	restored := 0
	for _, sb := range blob.Blocks {
		cell := sb.Cell()
		if !e.grid.Place(cell, sb.BlockType()) {
			continue
		}
		e.scene.AddBlock(cell, sb.BlockType())
		restored++
	}

	e.metrics.loadsTotal.Inc()
	e.metrics.blocksTotal.Set(float64(e.grid.Count()))
	e.publishEvent(world.EventTypeGridLoaded, vec.Vec3{}, "")
	logging.Info("📂 Загружено блоков: %d из %d", restored, len(blob.Blocks))
	return restored, nil
}

// Stats пересчитывает агрегированные счётчики по текущему состоянию
func (e *Editor) Stats() Stats {
	snapshot := e.grid.Snapshot()
	if len(snapshot) == 0 {
		return Stats{Count: 0, HasBlocks: false}
	}

	var sumX, sumY, sumZ float64
	for _, b := range snapshot {
		sumX += float64(b.Cell.X)
		sumY += float64(b.Cell.Y)
		sumZ += float64(b.Cell.Z)
	}
	n := float64(len(snapshot))

	return Stats{
		Count:     len(snapshot),
		HasBlocks: true,
		Average: vec.Vec3{
			X: int(math.Round(sumX / n)),
			Y: int(math.Round(sumY / n)),
			Z: int(math.Round(sumZ / n)),
		},
	}
}

// Blocks возвращает снимок установленных блоков в порядке установки
func (e *Editor) Blocks() []world.PlacedBlock {
	return e.grid.Snapshot()
}

// publishEvent отправляет событие сетки в глобальную шину.
// Ошибки шины не влияют на результат операции редактирования.
func (e *Editor) publishEvent(evType world.EventType, cell vec.Vec3, blockType block.BlockID) {
	payload, err := json.Marshal(world.GridEvent{
		Type:      evType,
		Cell:      cell,
		BlockType: blockType,
		Count:     e.grid.Count(),
	})
	if err != nil {
		return
	}

	_ = eventbus.Publish(context.Background(), &eventbus.Envelope{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Source:    "editor",
		EventType: string(evType),
		Payload:   payload,
	})
}
