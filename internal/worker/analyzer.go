package worker

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/hajimehoshi/go-mp3"
)

var previewClient = &http.Client{Timeout: 15 * time.Second}

const pcmChunkBytes = 4096

// analyzePreview downloads an mp3 preview and collapses it to one RMS energy
// value normalized to [0, 1] against full-scale 16-bit audio.
func analyzePreview(url string) (float64, error) {
	resp, err := previewClient.Get(url)
	if err != nil {
		return 0, fmt.Errorf("preview fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("preview fetch status %d", resp.StatusCode)
	}

	dec, err := mp3.NewDecoder(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("preview decode failed: %w", err)
	}
	return rmsEnergy(dec)
}

// rmsEnergy reads 16-bit little-endian PCM and returns sqrt(mean(sample^2))
// scaled into [0, 1].
func rmsEnergy(r io.Reader) (float64, error) {
	chunk := make([]byte, pcmChunkBytes)
	var sum float64
	var samples int64

	for {
		n, err := r.Read(chunk)
		for i := 0; i+1 < n; i += 2 {
			s := float64(int16(binary.LittleEndian.Uint16(chunk[i:])))
			sum += s * s
			samples++
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("preview read failed: %w", err)
		}
	}

	if samples == 0 {
		return 0, fmt.Errorf("preview contains no samples")
	}
	energy := math.Sqrt(sum/float64(samples)) / 32768.0
	return math.Min(energy, 1), nil
}

// AnalyzePreviewFunc allows tests to override the analyzer implementation.
var AnalyzePreviewFunc = analyzePreview
