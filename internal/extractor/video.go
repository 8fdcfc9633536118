package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// videoProbeTimeout is the hard subprocess timeout for ffprobe.
const videoProbeTimeout = 30 * time.Second

type ffprobeFormat struct {
	Duration string            `json:"duration"`
	BitRate  string            `json:"bit_rate"`
	Tags     map[string]string `json:"tags"`
}

type ffprobeStream struct {
	CodecType   string `json:"codec_type"`
	CodecName   string `json:"codec_name"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	RFrameRate  string `json:"r_frame_rate"`
	Channels    int    `json:"channels"`
}

type ffprobeOutput struct {
	Format  ffprobeFormat    `json:"format"`
	Streams []ffprobeStream  `json:"streams"`
}

// extractVideo probes a video file via an external ffprobe subprocess and
// returns duration, bitrate, resolution, video codec, frame rate, audio
// codec, audio channels, and common tags. The container format is not
// reported. A missing ffprobe binary degrades to a nil excerpt, never fatal.
func extractVideo(path string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), videoProbeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "duration_s: %s\n", probe.Format.Duration)
	fmt.Fprintf(&sb, "bitrate: %s\n", probe.Format.BitRate)

	var videoStream, audioStream *ffprobeStream
	for i := range probe.Streams {
		s := &probe.Streams[i]
		if s.CodecType == "video" && videoStream == nil {
			videoStream = s
		}
		if s.CodecType == "audio" && audioStream == nil {
			audioStream = s
		}
	}

	if videoStream != nil {
		fmt.Fprintf(&sb, "resolution: %dx%d (%s)\n", videoStream.Width, videoStream.Height, resolutionLabel(videoStream.Height))
		fmt.Fprintf(&sb, "video_codec: %s\n", videoStream.CodecName)
		fmt.Fprintf(&sb, "frame_rate: %s\n", videoStream.RFrameRate)
	}
	if audioStream != nil {
		fmt.Fprintf(&sb, "audio_codec: %s\n", audioStream.CodecName)
		fmt.Fprintf(&sb, "audio_channels: %d\n", audioStream.Channels)
	}
	for k, v := range probe.Format.Tags {
		fmt.Fprintf(&sb, "tag.%s: %s\n", k, v)
	}

	return sb.String(), nil
}

// resolutionLabel maps a pixel height to its common label
// (480p/720p/1080p/4K).
func resolutionLabel(height int) string {
	switch {
	case height >= 2160:
		return "4K"
	case height >= 1080:
		return "1080p"
	case height >= 720:
		return "720p"
	case height >= 480:
		return "480p"
	default:
		return strconv.Itoa(height) + "p"
	}
}
