package media

import (
	"path/filepath"
	"strings"
)

// Kind identifies the normalization strategy a file needs.
type Kind string

const (
	// KindRaster covers encoded photo formats whose pixel data can be
	// re-emitted without embedded metadata.
	KindRaster Kind = "raster"
	// KindRawSensor covers camera raw containers whose unprocessed sensor
	// data is the comparable payload.
	KindRawSensor Kind = "raw-sensor"
	// KindContainer covers audio/video containers whose coded streams are
	// compared independently of the mux.
	KindContainer Kind = "container"
	// KindUnknown marks extensions winnow does not normalize.
	KindUnknown Kind = "unknown"
)

var kindByExtension = map[string]Kind{
	".jpg":  KindRaster,
	".jpeg": KindRaster,
	".png":  KindRaster,
	".gif":  KindRaster,
	".bmp":  KindRaster,
	".tif":  KindRaster,
	".tiff": KindRaster,
	".webp": KindRaster,
	".heic": KindRaster,

	".cr2": KindRawSensor,
	".cr3": KindRawSensor,
	".nef": KindRawSensor,
	".arw": KindRawSensor,
	".dng": KindRawSensor,
	".orf": KindRawSensor,
	".raf": KindRawSensor,
	".rw2": KindRawSensor,

	".mp4":  KindContainer,
	".m4v":  KindContainer,
	".mkv":  KindContainer,
	".mov":  KindContainer,
	".avi":  KindContainer,
	".webm": KindContainer,
	".mp3":  KindContainer,
	".m4a":  KindContainer,
	".flac": KindContainer,
	".ogg":  KindContainer,
	".opus": KindContainer,
	".wav":  KindContainer,
}

// KindOf derives the media kind from the path's extension.
func KindOf(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	if kind, ok := kindByExtension[ext]; ok {
		return kind
	}
	return KindUnknown
}
