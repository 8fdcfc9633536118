package extractor

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
)

// imageMaxEXIFTags bounds the number of EXIF tags surfaced.
const imageMaxEXIFTags = 10

// exifFieldsOfInterest is the fixed set of EXIF tags probed, in priority
// order, so the "up to ten" cap is deterministic.
var exifFieldsOfInterest = []exif.FieldName{
	exif.Make, exif.Model, exif.DateTime, exif.DateTimeOriginal,
	exif.PixelXDimension, exif.PixelYDimension, exif.Orientation,
	exif.ExposureTime, exif.FNumber, exif.ISOSpeedRatings,
	exif.Flash, exif.FocalLength, exif.GPSLatitude, exif.GPSLongitude,
}

// extractImage returns metadata only: format, pixel dimensions, colour mode,
// and up to imageMaxEXIFTags EXIF tags.
func extractImage(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "format: %s\n", format)
	fmt.Fprintf(&sb, "dimensions: %dx%d\n", cfg.Width, cfg.Height)
	fmt.Fprintf(&sb, "color_mode: %s\n", cfg.ColorModel)

	if _, seekErr := f.Seek(0, 0); seekErr == nil {
		if x, exifErr := exif.Decode(f); exifErr == nil {
			count := 0
			for _, name := range exifFieldsOfInterest {
				if count >= imageMaxEXIFTags {
					break
				}
				tag, tagErr := x.Get(name)
				if tagErr != nil {
					continue
				}
				fmt.Fprintf(&sb, "exif.%s: %s\n", name, tag.String())
				count++
			}
		}
	}

	return sb.String(), nil
}
