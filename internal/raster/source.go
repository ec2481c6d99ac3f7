package raster

import (
	"errors"
	"fmt"
	"os"

	"github.com/airbusgeo/godal"
	"github.com/paulmach/orb"

	"github.com/forest-guardian/sentinel-vision-poc/internal/properties"
)

var (
	ErrSourceNotFound      = errors.New("raster: source not found")
	ErrUnsupportedFormat   = errors.New("raster: unsupported format")
	ErrHandleClosed        = errors.New("raster: handle is closed")
	ErrBandIndexOutOfRange = errors.New("raster: band index out of range")
	ErrResourceExhausted   = errors.New("raster: decode exceeds memory budget")
)

// Metadata is everything the file header tells us without touching pixels.
type Metadata struct {
	Rows        int
	Cols        int
	BandCount   int
	SampleDtype string
	CRS         string
	Bounds      orb.Bound
}

// BandHandle is an opened raster file. It holds the GDAL dataset open but
// never reads pixel data until Decode is called. Handles are not safe for
// concurrent use and must be closed by the caller that opened them.
type BandHandle struct {
	path string
	ds   *godal.Dataset
	meta Metadata
}

// Open resolves path to a raster file and reads its header. No pixel data
// is read. The returned handle must be closed, normally with defer:
//
//	handle, err := raster.Open(path)
//	if err != nil { ... }
//	defer handle.Close()
func Open(path string) (*BandHandle, error) {
	// Anything that keeps the file from being read at all, including
	// permission problems, is a missing source; only parse failures on a
	// readable file count as an unsupported format.
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}
	info, err := f.Stat()
	f.Close()
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}

	ds, err := godal.Open(path, godal.ErrLogger(func(ec godal.ErrorCategory, code int, msg string) error {
		if ec == godal.CE_Warning {
			return nil
		}
		return errors.New(msg)
	}))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedFormat, path, err)
	}

	structure := ds.Structure()
	meta := Metadata{
		Rows:        structure.SizeY,
		Cols:        structure.SizeX,
		BandCount:   structure.NBands,
		SampleDtype: structure.DataType.String(),
	}

	if bounds, err := ds.Bounds(); err == nil {
		meta.Bounds = orb.Bound{
			Min: orb.Point{bounds[0], bounds[1]},
			Max: orb.Point{bounds[2], bounds[3]},
		}
	}

	if sr := ds.SpatialRef(); sr != nil {
		name := sr.AuthorityName("")
		code := sr.AuthorityCode("")
		if name != "" && code != "" {
			meta.CRS = name + ":" + code
		}
		sr.Close()
	}

	return &BandHandle{path: path, ds: ds, meta: meta}, nil
}

func (h *BandHandle) Path() string {
	return h.path
}

// Metadata returns the header information read at open time. It fails once
// the handle has been closed.
func (h *BandHandle) Metadata() (Metadata, error) {
	if h.ds == nil {
		return Metadata{}, fmt.Errorf("%w: %s", ErrHandleClosed, h.path)
	}
	return h.meta, nil
}

// Decode reads the full pixel plane of the 1-based bandIndex into memory as
// float64 samples. This is the expensive call: a full band of a large scene
// is tens to hundreds of megabytes, so the projected size is checked against
// the configured memory budget before anything is allocated.
func (h *BandHandle) Decode(bandIndex int) (Grid, error) {
	if h.ds == nil {
		return nil, fmt.Errorf("%w: %s", ErrHandleClosed, h.path)
	}
	if bandIndex < 1 || bandIndex > h.meta.BandCount {
		return nil, fmt.Errorf("%w: band %d of %d in %s", ErrBandIndexOutOfRange, bandIndex, h.meta.BandCount, h.path)
	}

	needed := int64(h.meta.Rows) * int64(h.meta.Cols) * 8
	if budget := properties.DecodeMemoryBudgetBytes(); needed > budget {
		return nil, fmt.Errorf("%w: band %d of %s needs %d bytes, budget is %d", ErrResourceExhausted, bandIndex, h.path, needed, budget)
	}

	band := h.ds.Bands()[bandIndex-1]
	data := make([]float64, h.meta.Rows*h.meta.Cols)
	if err := band.Read(0, 0, data, h.meta.Cols, h.meta.Rows); err != nil {
		return nil, fmt.Errorf("failed to read band %d of %s: %w", bandIndex, h.path, err)
	}

	return GridFromBuffer(data, h.meta.Rows, h.meta.Cols), nil
}

// Close releases the underlying dataset. Calling it again is a no-op;
// Metadata and Decode fail after the first Close.
func (h *BandHandle) Close() error {
	if h.ds == nil {
		return nil
	}
	err := h.ds.Close()
	h.ds = nil
	if err != nil {
		return fmt.Errorf("failed to close %s: %w", h.path, err)
	}
	return nil
}

// DecodeFile opens path, decodes the given band and closes the file again,
// guaranteeing release on every exit path.
func DecodeFile(path string, bandIndex int) (Grid, Metadata, error) {
	handle, err := Open(path)
	if err != nil {
		return nil, Metadata{}, err
	}
	defer handle.Close()

	grid, err := handle.Decode(bandIndex)
	if err != nil {
		return nil, Metadata{}, err
	}
	return grid, handle.meta, nil
}
