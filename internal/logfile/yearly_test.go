package logfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func TestYearlyLog_FirstWriteDoesNotTruncate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log_day.txt")
	require.NoError(t, os.WriteFile(path, []byte(recordOf("old content")), 0o644))

	y, err := OpenYearly(path, false, nil)
	require.NoError(t, err)
	defer y.Close()

	require.NoError(t, y.Write(date(2030, 1, 1), "new"))
	require.Equal(t, 2030, y.Year())
	require.Equal(t, path, y.Path())
	require.Equal(t, []string{"old content", "new"}, readSlots(t, path))
}

func TestYearlyLog_SameYearAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log_day.txt")

	y, err := OpenYearly(path, true, nil)
	require.NoError(t, err)
	defer y.Close()

	require.NoError(t, y.Write(date(2024, 12, 30), "a"))
	require.NoError(t, y.Write(date(2024, 12, 31), "b"))

	require.Equal(t, []string{"a", "b"}, readSlots(t, path))
	_, err = os.Stat(path + ".2024.zst")
	require.True(t, os.IsNotExist(err))
}

func TestYearlyLog_RotatesOnYearChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log_day.txt")

	y, err := OpenYearly(path, false, nil)
	require.NoError(t, err)
	defer y.Close()

	require.NoError(t, y.Write(date(2024, 12, 31), "last of 2024"))
	require.NoError(t, y.Write(date(2025, 1, 1), "first of 2025"))

	require.Equal(t, 2025, y.Year())
	require.Equal(t, []string{"first of 2025"}, readSlots(t, path))
}

func TestYearlyLog_ArchivesPreviousYear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log_day.txt")

	y, err := OpenYearly(path, true, nil)
	require.NoError(t, err)
	defer y.Close()

	require.NoError(t, y.Write(date(2024, 6, 1), "june"))
	require.NoError(t, y.Write(date(2024, 7, 1), "july"))
	require.NoError(t, y.Write(date(2025, 1, 1), "january"))

	compressed, err := os.ReadFile(path + ".2024.zst")
	require.NoError(t, err)

	dec, err := zstd.NewReader(nil)
	require.NoError(t, err)
	defer dec.Close()

	plain, err := dec.DecodeAll(compressed, nil)
	require.NoError(t, err)
	require.Equal(t, recordOf("june")+recordOf("july"), string(plain))
	require.Equal(t, []string{"january"}, readSlots(t, path))
}

func TestYearlyLog_WriteAfterClose(t *testing.T) {
	y, err := OpenYearly(filepath.Join(t.TempDir(), "log_day.txt"), false, nil)
	require.NoError(t, err)

	require.NoError(t, y.Close())
	require.NoError(t, y.Close())
	require.ErrorIs(t, y.Write(date(2024, 1, 1), "late"), os.ErrClosed)
}

func TestYearlyLog_ArchiveFailureStillRotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log_day.txt")

	orig := archiveYear
	archiveYear = func(string, int) (string, error) { return "", errors.New("disk full") }
	t.Cleanup(func() { archiveYear = orig })

	y, err := OpenYearly(path, true, nil)
	require.NoError(t, err)
	defer y.Close()

	require.NoError(t, y.Write(date(2024, 12, 31), "last of 2024"))
	require.NoError(t, y.Write(date(2025, 1, 1), "a"))
	require.NoError(t, y.Write(date(2025, 1, 2), "b"))
	require.NoError(t, y.Write(date(2025, 1, 3), "c"))

	require.Equal(t, 2025, y.Year())
	require.Equal(t, []string{"a", "b", "c"}, readSlots(t, path))
}

func TestYearlyLog_ExistingArchiveIsNotOverwritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log_day.txt")
	require.NoError(t, os.Mkdir(path+".2024.zst", 0o755))

	y, err := OpenYearly(path, true, nil)
	require.NoError(t, err)
	defer y.Close()

	require.NoError(t, y.Write(date(2024, 12, 31), "last of 2024"))
	require.NoError(t, y.Write(date(2025, 1, 1), "first of 2025"))
	require.Equal(t, []string{"first of 2025"}, readSlots(t, path))

	info, err := os.Stat(path + ".2024.zst")
	require.NoError(t, err)
	require.True(t, info.IsDir())

	archives, err := filepath.Glob(path + ".2024-*.zst")
	require.NoError(t, err)
	require.Len(t, archives, 1)

	leftovers, err := filepath.Glob(path + ".*.tmp")
	require.NoError(t, err)
	require.Empty(t, leftovers)
}

func TestYearlyLog_ReopenFailureRecoversOnLaterWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, os.Mkdir(dir, 0o755))
	path := filepath.Join(dir, "log_day.txt")

	y, err := OpenYearly(path, false, nil)
	require.NoError(t, err)
	defer y.Close()

	require.NoError(t, y.Write(date(2024, 12, 31), "last of 2024"))

	// The rotation cannot reopen the file while its directory is gone.
	require.NoError(t, os.RemoveAll(dir))
	require.Error(t, y.Write(date(2025, 1, 1), "lost"))

	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, y.Write(date(2025, 1, 2), "kept"))
	require.Equal(t, []string{"kept"}, readSlots(t, path))
}
