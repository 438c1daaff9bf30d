package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Encoder builds one video from an ordered list of images.
type Encoder interface {
	Encode(ctx context.Context, imagePaths []string, outputPath string) error
}

// FFmpegEncoder invokes ffmpeg with a concat demuxer script showing each
// image for a fixed duration.
type FFmpegEncoder struct {
	// Binary defaults to "ffmpeg" on PATH.
	Binary string
	// SecondsPerImage defaults to 2.
	SecondsPerImage int
}

func (e *FFmpegEncoder) Encode(ctx context.Context, imagePaths []string, outputPath string) error {
	if len(imagePaths) == 0 {
		return errors.New("no images to encode")
	}

	binary := e.Binary
	if binary == "" {
		binary = "ffmpeg"
	}
	seconds := e.SecondsPerImage
	if seconds <= 0 {
		seconds = 2
	}

	script, err := writeConcatScript(imagePaths, seconds)
	if err != nil {
		return err
	}
	defer os.Remove(script)

	cmd := exec.CommandContext(ctx, binary,
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", script,
		"-r", "24",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-an",
		outputPath,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %v: %s", err, lastLine(output))
	}
	return nil
}

// writeConcatScript produces the ffmpeg concat demuxer input. The final image
// is listed twice because the demuxer ignores the duration of the last entry.
func writeConcatScript(imagePaths []string, secondsPerImage int) (string, error) {
	f, err := os.CreateTemp("", "concat-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create concat script: %w", err)
	}

	var b strings.Builder
	for _, p := range imagePaths {
		fmt.Fprintf(&b, "file '%s'\n", filepath.ToSlash(p))
		fmt.Fprintf(&b, "duration %d\n", secondsPerImage)
	}
	fmt.Fprintf(&b, "file '%s'\n", filepath.ToSlash(imagePaths[len(imagePaths)-1]))

	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write concat script: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func lastLine(output []byte) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}
