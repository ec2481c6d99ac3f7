package product

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

var ErrBandNotFound = errors.New("product: band file not found")

// Band files inside an unpacked product keep the band id and resolution
// tier in the file name, e.g. T22JEQ_20240612T133201_B04_10m.jp2 under
// GRANULE/.../IMG_DATA/R10m. Only these extensions are considered raster
// band files.
var bandExtensions = map[string]bool{
	".jp2":  true,
	".tif":  true,
	".tiff": true,
}

// LocateBands walks the unpacked product directory and resolves one file
// path per requested band id at the given resolution tier ("10m", "20m",
// "60m"; empty matches any tier). Every requested band must resolve or an
// error naming the first missing band is returned.
func LocateBands(dir string, bandIDs []string, resolution string) (map[string]string, error) {
	found := make(map[string]string)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !bandExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		for _, id := range bandIDs {
			if _, ok := found[id]; ok {
				continue
			}
			if matchesBand(name, id, resolution) {
				found[id] = path
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk product directory %s: %w", dir, err)
	}

	for _, id := range bandIDs {
		if _, ok := found[id]; !ok {
			if resolution != "" {
				return nil, fmt.Errorf("%w: %s at %s in %s", ErrBandNotFound, id, resolution, dir)
			}
			return nil, fmt.Errorf("%w: %s in %s", ErrBandNotFound, id, dir)
		}
	}
	return found, nil
}

func matchesBand(name, bandID, resolution string) bool {
	if !strings.Contains(name, "_"+bandID) && name != bandID {
		return false
	}
	if resolution == "" {
		return true
	}
	return strings.HasSuffix(name, "_"+resolution) || strings.Contains(name, "_"+bandID+"_"+resolution)
}
