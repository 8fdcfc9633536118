package extractor

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhowden/tag"
)

// extractAudio returns metadata only: format/title/artist/album/year/genre.
// Duration, bitrate, sample rate, and channel count require
// container-level probing that github.com/dhowden/tag does not expose;
// those fields are left out of the excerpt rather than guessed.
func extractAudio(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "format: %s\n", m.Format())
	fmt.Fprintf(&sb, "title: %s\n", m.Title())
	fmt.Fprintf(&sb, "artist: %s\n", m.Artist())
	fmt.Fprintf(&sb, "album: %s\n", m.Album())
	fmt.Fprintf(&sb, "year: %d\n", m.Year())
	fmt.Fprintf(&sb, "genre: %s\n", m.Genre())

	return sb.String(), nil
}
