package disk

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *FileManager {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dbtest")
	m, err := NewFileManager(path)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestNewPageReadsAllZeros(t *testing.T) {
	m := openTemp(t)

	id, err := m.NewPage()
	require.NoError(t, err)
	require.Equal(t, PageId(0), id)
	require.Equal(t, 1, m.NumPages())

	buf := make([]byte, PageSize)
	require.NoError(t, m.ReadPage(id, buf))
	require.Equal(t, make([]byte, PageSize), buf)
}

func TestWritePageRoundTrips(t *testing.T) {
	m := openTemp(t)

	id, err := m.NewPage()
	require.NoError(t, err)

	data := make([]byte, PageSize)
	for i := range data {
		data[i] = byte(i % 251)
	}
	require.NoError(t, m.WritePage(id, data))

	buf := make([]byte, PageSize)
	require.NoError(t, m.ReadPage(id, buf))
	require.Equal(t, data, buf)
}

func TestNewPageIdsAreDenseFromZero(t *testing.T) {
	m := openTemp(t)

	for want := 0; want < 5; want++ {
		id, err := m.NewPage()
		require.NoError(t, err)
		require.Equal(t, PageId(want), id)
	}
	require.Equal(t, 5, m.NumPages())
}

func TestReadPageBeyondFileIsShortRead(t *testing.T) {
	m := openTemp(t)
	buf := make([]byte, PageSize)
	err := m.ReadPage(0, buf)
	require.Error(t, err)
}

func TestWritePageRejectsInvalidPageId(t *testing.T) {
	m := openTemp(t)
	err := m.WritePage(InvalidPageId, make([]byte, PageSize))
	require.Error(t, err)
}

func TestReopenComputesNumPagesFromFileLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dbtest")
	m1, err := NewFileManager(path)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := m1.NewPage()
		require.NoError(t, err)
	}
	require.NoError(t, m1.Close())

	m2, err := NewFileManager(path)
	require.NoError(t, err)
	defer m2.Close()
	require.Equal(t, 3, m2.NumPages())
}
