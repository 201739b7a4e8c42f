package vec

// Vec3 представляет трехмерный вектор с целочисленными координатами.
// Используется для адресации ячеек сетки.
type Vec3 struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Equals проверяет равенство векторов
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub вычитает вектор
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Clamp возвращает вектор, каждая координата которого ограничена
// диапазоном [min, max] независимо от остальных.
func (v Vec3) Clamp(min, max int) Vec3 {
	return Vec3{
		X: clampInt(v.X, min, max),
		Y: clampInt(v.Y, min, max),
		Z: clampInt(v.Z, min, max),
	}
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
