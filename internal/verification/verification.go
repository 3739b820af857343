// Package verification verifies that the final frame of a run matches an
// expected bitmap.
package verification

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrogolib/log"
)

const maxLoggedMismatches = 10

// Bitmap is the pixel state of a full frame, indexed by row then column.
type Bitmap [display.Height][display.Width]bool

// ParseBitmap reads a bitmap made of one text line per pixel row. The
// characters '#' and '1' set a pixel, '.', '0' and ' ' leave it unset.
// Missing trailing rows and columns are unset.
func ParseBitmap(r io.Reader) (Bitmap, error) {
	var bitmap Bitmap
	scanner := bufio.NewScanner(r)

	y := 0
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if y >= display.Height {
			if strings.TrimSpace(line) == "" {
				continue
			}
			return bitmap, fmt.Errorf("bitmap has more than %d rows", display.Height)
		}
		if len(line) > display.Width {
			return bitmap, fmt.Errorf("row %d has %d columns, maximum is %d", y, len(line), display.Width)
		}

		for x, c := range []byte(line) {
			switch c {
			case '#', '1':
				bitmap[y][x] = true
			case '.', '0', ' ':
			default:
				return bitmap, fmt.Errorf("invalid character %q in row %d column %d", c, y, x)
			}
		}
		y++
	}
	if err := scanner.Err(); err != nil {
		return bitmap, fmt.Errorf("reading bitmap: %w", err)
	}
	return bitmap, nil
}

// VerifyFile compares the framebuffer with the bitmap stored in the file.
func VerifyFile(logger *log.Logger, fb *display.Framebuffer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	expected, err := ParseBitmap(file)
	if err != nil {
		return fmt.Errorf("parsing bitmap %s: %w", path, err)
	}
	return Verify(logger, fb, expected)
}

// Verify compares the framebuffer with the expected bitmap and logs the
// first mismatching pixels.
func Verify(logger *log.Logger, fb *display.Framebuffer, expected Bitmap) error {
	var diffs int
	for y := range display.Height {
		for x := range display.Width {
			got := fb.Pixel(x, y)
			if got == expected[y][x] {
				continue
			}

			diffs++
			if diffs <= maxLoggedMismatches {
				logger.Error("Pixel mismatch",
					log.Int("x", x),
					log.Int("y", y),
					log.String("expected", pixelString(expected[y][x])),
					log.String("got", pixelString(got)))
			}
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d pixel mismatches", diffs)
}

func pixelString(set bool) string {
	if set {
		return "#"
	}
	return "."
}
