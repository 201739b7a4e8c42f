package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backendsUnderTest возвращает реализации, доступные без внешних сервисов
func backendsUnderTest(t *testing.T) map[string]SlotStorage {
	t.Helper()

	fileStore, err := NewFileSlotStorage(filepath.Join(t.TempDir(), "slots"))
	require.NoError(t, err)

	return map[string]SlotStorage{
		"memory": NewMemorySlotStorage(),
		"file":   fileStore,
	}
}

func TestSlotStorage_SetGet(t *testing.T) {
	for name, store := range backendsUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			require.NoError(t, store.Set("voxel:save:default", []byte(`{"blocks":[]}`)))

			value, found, err := store.Get("voxel:save:default")
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, []byte(`{"blocks":[]}`), value)
		})
	}
}

func TestSlotStorage_AbsentKey(t *testing.T) {
	for name, store := range backendsUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			// Отсутствие ключа — не ошибка
			value, found, err := store.Get("voxel:save:missing")
			require.NoError(t, err)
			assert.False(t, found)
			assert.Nil(t, value)
		})
	}
}

func TestSlotStorage_Overwrite(t *testing.T) {
	for name, store := range backendsUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			require.NoError(t, store.Set("slot", []byte("первое")))
			require.NoError(t, store.Set("slot", []byte("второе")))

			value, found, err := store.Get("slot")
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, []byte("второе"), value)
		})
	}
}

func TestSlotStorage_Delete(t *testing.T) {
	for name, store := range backendsUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			require.NoError(t, store.Set("slot", []byte("данные")))
			require.NoError(t, store.Delete("slot"))

			_, found, err := store.Get("slot")
			require.NoError(t, err)
			assert.False(t, found)

			// Повторное удаление идемпотентно
			assert.NoError(t, store.Delete("slot"))
		})
	}
}

func TestSlotStorage_EmptyKeyRejected(t *testing.T) {
	for name, store := range backendsUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			_, _, err := store.Get("")
			assert.Error(t, err)
			assert.Error(t, store.Set("", []byte("x")))
			assert.Error(t, store.Delete(""))
		})
	}
}

func TestMemorySlotStorage_ReturnsCopies(t *testing.T) {
	store := NewMemorySlotStorage()
	original := []byte("неизменяемое")
	require.NoError(t, store.Set("slot", original))

	// Мутация исходного буфера не задевает хранилище
	original[0] = 'X'

	value, found, err := store.Get("slot")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("неизменяемое"), value)

	// Мутация прочитанного значения тоже
	value[0] = 'Y'
	again, _, _ := store.Get("slot")
	assert.Equal(t, []byte("неизменяемое"), again)
}

func TestFileSlotStorage_SanitizesKeys(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileSlotStorage(dir)
	require.NoError(t, err)
	defer store.Close()

	// Ключ с разделителями не должен выходить за пределы директории
	require.NoError(t, store.Set("voxel:save/../default", []byte("данные")))

	value, found, err := store.Get("voxel:save/../default")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("данные"), value)
}
