package block

// BlockID представляет тип блока. Хранится строковым тегом,
// чтобы сохранения оставались читаемыми и расширяемыми.
type BlockID string

// Базовые типы блоков
const (
	CubeBlockID    BlockID = "cube"
	SlopeBlockID   BlockID = "slope"
	PyramidBlockID BlockID = "pyramid"
	StoneBlockID   BlockID = "stone"
	WoodBlockID    BlockID = "wood"
)

// BlockBehavior определяет свойства типа блока.
// Реализации регистрируются в регистре через init() пакета implementations.
type BlockBehavior interface {
	// ID возвращает тег типа блока
	ID() BlockID

	// DisplayName возвращает человекочитаемое имя блока
	DisplayName() string

	// Color возвращает цвет визуального примитива в формате "#rrggbb"
	Color() string
}
