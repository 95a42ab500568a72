// ABOUTME: Artwork sink fed directly by the binary demux's artwork channels
// ABOUTME: Caches pushed image bytes to disk, keyed by content hash; empty bytes clear
package artwork

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// channelCount is the number of artwork channels the wire protocol defines
// (binary type IDs 0x08-0x0B).
const channelCount = 4

// Sink caches artwork pushed directly as binary frame payloads. The
// Sendspin wire protocol pushes complete image bytes per channel, not a
// URL to fetch, unlike the teacher's older Resonate-era artwork_url field.
type Sink struct {
	cacheDir string
	current  [channelCount]string
}

// NewSink creates an artwork sink backed by a temp-directory cache.
func NewSink() (*Sink, error) {
	cacheDir := filepath.Join(os.TempDir(), "sendspin-artwork")
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("artwork: create cache directory: %w", err)
	}

	return &Sink{cacheDir: cacheDir}, nil
}

// Update applies a new artwork frame for channel (0-3). Empty data clears
// the channel rather than writing a file.
func (s *Sink) Update(channel uint8, data []byte) error {
	if int(channel) >= channelCount {
		return fmt.Errorf("artwork: channel %d out of range", channel)
	}

	if len(data) == 0 {
		s.clear(channel)
		return nil
	}

	hash := sha256.Sum256(data)
	filename := fmt.Sprintf("ch%d-%x%s", channel, hash[:8], guessExtension(data))
	cachePath := filepath.Join(s.cacheDir, filename)

	if _, err := os.Stat(cachePath); err == nil {
		log.Debugf("artwork: cache hit for channel %d: %s", channel, cachePath)
		s.current[channel] = cachePath
		return nil
	}

	if err := os.WriteFile(cachePath, data, 0o644); err != nil {
		return fmt.Errorf("artwork: write cache file: %w", err)
	}

	log.Debugf("artwork: cached channel %d: %s (%d bytes)", channel, cachePath, len(data))
	s.current[channel] = cachePath
	return nil
}

// clear removes the cached path for channel without deleting the file
// (other sessions or generations may still reference it).
func (s *Sink) clear(channel uint8) {
	s.current[channel] = ""
	log.Debugf("artwork: cleared channel %d", channel)
}

// CurrentPath returns the cached file path for channel, or "" if clear or
// never set.
func (s *Sink) CurrentPath(channel uint8) string {
	if int(channel) >= channelCount {
		return ""
	}
	return s.current[channel]
}

// guessExtension sniffs common image magic bytes; defaults to .jpg.
func guessExtension(data []byte) string {
	switch {
	case len(data) >= 8 && data[0] == 0x89 && data[1] == 'P' && data[2] == 'N' && data[3] == 'G':
		return ".png"
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xD8:
		return ".jpg"
	case len(data) >= 2 && data[0] == 'B' && data[1] == 'M':
		return ".bmp"
	default:
		return ".jpg"
	}
}

// Cleanup removes all cached artwork files.
func (s *Sink) Cleanup() error {
	return os.RemoveAll(s.cacheDir)
}
