package persist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"

	"github.com/annel0/voxel-builder/internal/storage"
	"github.com/annel0/voxel-builder/internal/vec"
	"github.com/annel0/voxel-builder/internal/world"
	"github.com/annel0/voxel-builder/internal/world/block"
)

// ErrSaveNotFound возвращается Load, когда под ключом слота ничего не записано.
// Отсутствие сохранения — ожидаемое, видимое пользователю состояние,
// в отличие от ошибок самого хранилища.
var ErrSaveNotFound = errors.New("сохранение не найдено")

// SavedBlock — один блок в сериализованном виде
type SavedBlock struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Z    int    `json:"z"`
	Type string `json:"type"`
}

// SaveBlob — единица персистентности: весь список блоков плюс отметка времени
type SaveBlob struct {
	ID        string       `json:"id"`
	Blocks    []SavedBlock `json:"blocks"`
	Timestamp int64        `json:"timestamp"`
}

// Adapter сериализует снимки сетки в слот хранилища и обратно.
// Работает только с одним фиксированным ключом; прежнее значение
// перезаписывается безусловно.
type Adapter struct {
	store   storage.SlotStorage
	slotKey string
	useGzip bool
}

// NewAdapter создаёт адаптер персистентности поверх хранилища слота
func NewAdapter(store storage.SlotStorage, slotKey string, useGzip bool) *Adapter {
	if slotKey == "" {
		slotKey = "voxel:save:default"
	}
	return &Adapter{
		store:   store,
		slotKey: slotKey,
		useGzip: useGzip,
	}
}

// Save упаковывает снимок сетки в SaveBlob и записывает его в слот.
// Снимок сетки передаётся read-only: адаптер его не модифицирует.
func (a *Adapter) Save(blocks []world.PlacedBlock) error {
	blob := SaveBlob{
		ID:        uuid.NewString(),
		Blocks:    make([]SavedBlock, 0, len(blocks)),
		Timestamp: time.Now().Unix(),
	}
	for _, b := range blocks {
		blob.Blocks = append(blob.Blocks, SavedBlock{
			X:    b.Cell.X,
			Y:    b.Cell.Y,
			Z:    b.Cell.Z,
			Type: string(b.Type),
		})
	}

	data, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("ошибка сериализации сохранения: %w", err)
	}

	if a.useGzip {
		data, err = compress(data)
		if err != nil {
			return fmt.Errorf("ошибка сжатия сохранения: %w", err)
		}
	}

	if err := a.store.Set(a.slotKey, data); err != nil {
		return fmt.Errorf("ошибка записи слота сохранения: %w", err)
	}
	return nil
}

// Load читает и разбирает SaveBlob из слота.
// Возвращает ErrSaveNotFound, если слот пуст. Формат (gzip или plain JSON)
// определяется по содержимому, а не по конфигурации — слот мог быть
// записан с другими настройками сжатия.
func (a *Adapter) Load() (*SaveBlob, error) {
	data, found, err := a.store.Get(a.slotKey)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения слота сохранения: %w", err)
	}
	if !found {
		return nil, ErrSaveNotFound
	}

	if isGzip(data) {
		data, err = decompress(data)
		if err != nil {
			return nil, fmt.Errorf("ошибка распаковки сохранения: %w", err)
		}
	}

	var blob SaveBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, fmt.Errorf("ошибка разбора сохранения: %w", err)
	}
	return &blob, nil
}

// Cell возвращает координаты сохранённого блока как ячейку сетки
func (sb SavedBlock) Cell() vec.Vec3 {
	return vec.Vec3{X: sb.X, Y: sb.Y, Z: sb.Z}
}

// BlockType возвращает тег типа сохранённого блока
func (sb SavedBlock) BlockType() block.BlockID {
	return block.BlockID(sb.Type)
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer gz.Close()
	return io.ReadAll(gz)
}

// isGzip распознаёт gzip по магическим байтам заголовка
func isGzip(data []byte) bool {
	return len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b
}
