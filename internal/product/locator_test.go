package product

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func createProductTree(t *testing.T, names ...string) string {
	t.Helper()

	root := t.TempDir()
	dir := filepath.Join(root, "GRANULE", "L2A_T22JEQ_A036171", "IMG_DATA", "R10m")
	require.NoError(t, os.MkdirAll(dir, os.ModePerm))
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	return root
}

func TestLocateBands(t *testing.T) {
	root := createProductTree(t,
		"T22JEQ_20240612T133201_B02_10m.jp2",
		"T22JEQ_20240612T133201_B03_10m.jp2",
		"T22JEQ_20240612T133201_B04_10m.jp2",
		"T22JEQ_20240612T133201_TCI_10m.jp2",
		"MTD_TL.xml",
	)

	paths, err := LocateBands(root, []string{"B02", "B03", "B04"}, "10m")
	require.NoError(t, err)
	require.Len(t, paths, 3)
	require.Contains(t, filepath.Base(paths["B04"]), "B04_10m")
}

func TestLocateBandsMissingBand(t *testing.T) {
	root := createProductTree(t, "T22JEQ_20240612T133201_B02_10m.jp2")

	_, err := LocateBands(root, []string{"B02", "B08"}, "10m")
	require.ErrorIs(t, err, ErrBandNotFound)
}

func TestLocateBandsWrongResolution(t *testing.T) {
	root := createProductTree(t, "T22JEQ_20240612T133201_B11_20m.jp2")

	_, err := LocateBands(root, []string{"B11"}, "10m")
	require.ErrorIs(t, err, ErrBandNotFound)

	paths, err := LocateBands(root, []string{"B11"}, "")
	require.NoError(t, err)
	require.Contains(t, paths["B11"], "B11_20m")
}

func TestLocateBandsBareNames(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "B04.tif"), nil, 0644))

	paths, err := LocateBands(root, []string{"B04"}, "")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "B04.tif"), paths["B04"])
}
