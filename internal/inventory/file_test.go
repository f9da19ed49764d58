package inventory

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(deviceID string) Record {
	return Record{
		DeviceID:        deviceID,
		IP:              "192.168.1.100",
		Name:            "Living Room",
		Model:           "SoundTouch 20",
		MACAddress:      deviceID,
		FirmwareVersion: "27.0.6",
		LastSeen:        time.Now().UTC().Truncate(time.Second),
	}
}

func TestFileStore_UpsertAndGet(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "inventory.yaml"))
	require.NoError(t, err)

	record := testRecord("9884E3AB1234")
	stored, err := store.Upsert(record)
	require.NoError(t, err)
	assert.Equal(t, record, stored)

	got, err := store.GetByDeviceID("9884E3AB1234")
	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestFileStore_UpsertNeverDuplicates(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "inventory.yaml"))
	require.NoError(t, err)

	record := testRecord("9884E3AB1234")
	_, err = store.Upsert(record)
	require.NoError(t, err)

	// Same device at a new address: full-field update, not a new row
	record.IP = "192.168.1.200"
	record.Name = "Den"
	_, err = store.Upsert(record)
	require.NoError(t, err)

	all, err := store.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "192.168.1.200", all[0].IP)
	assert.Equal(t, "Den", all[0].Name)
}

func TestFileStore_GetByDeviceID_NotFound(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "inventory.yaml"))
	require.NoError(t, err)

	_, err = store.GetByDeviceID("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_Delete(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "inventory.yaml"))
	require.NoError(t, err)

	_, err = store.Upsert(testRecord("9884E3AB1234"))
	require.NoError(t, err)

	require.NoError(t, store.Delete("9884E3AB1234"))

	_, err = store.GetByDeviceID("9884E3AB1234")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.Delete("9884E3AB1234"), ErrNotFound)
}

func TestFileStore_RejectsEmptyDeviceID(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "inventory.yaml"))
	require.NoError(t, err)

	_, err = store.Upsert(Record{IP: "10.0.0.5"})
	assert.Error(t, err)
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")

	store, err := NewFileStore(path)
	require.NoError(t, err)

	first := testRecord("9884E3AB1234")
	second := testRecord("AABBCCDDEEFF")
	second.Name = "Kitchen"
	_, err = store.Upsert(first)
	require.NoError(t, err)
	_, err = store.Upsert(second)
	require.NoError(t, err)

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	all, err := reopened.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 2)

	// GetAll orders by device ID
	assert.Equal(t, "9884E3AB1234", all[0].DeviceID)
	assert.Equal(t, "AABBCCDDEEFF", all[1].DeviceID)
	assert.Equal(t, "Kitchen", all[1].Name)
}

func TestFileStore_UpsertRollsBackOnSaveFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	// Occupy the store path with a directory so the atomic rename fails
	require.NoError(t, os.Mkdir(path, 0700))

	_, err = store.Upsert(testRecord("9884E3AB1234"))
	require.Error(t, err)

	// A record that never reached disk must not be visible either
	_, err = store.GetByDeviceID("9884E3AB1234")
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFileStore_UpsertRestoresPreviousOnSaveFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	original := testRecord("9884E3AB1234")
	_, err = store.Upsert(original)
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0700))

	updated := original
	updated.IP = "192.168.1.200"
	_, err = store.Upsert(updated)
	require.Error(t, err)

	got, err := store.GetByDeviceID("9884E3AB1234")
	require.NoError(t, err)
	assert.Equal(t, original.IP, got.IP)
}

func TestFileStore_DeleteRollsBackOnSaveFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	record := testRecord("9884E3AB1234")
	_, err = store.Upsert(record)
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0700))

	require.Error(t, store.Delete("9884E3AB1234"))

	got, err := store.GetByDeviceID("9884E3AB1234")
	require.NoError(t, err)
	assert.Equal(t, record.DeviceID, got.DeviceID)
}

func TestNewFileStore_MissingFile(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)

	all, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestNewFileStore_UnsupportedVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 7\n"), 0600))

	_, err := NewFileStore(path)
	assert.Error(t, err)
}
