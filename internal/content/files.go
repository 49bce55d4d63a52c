// internal/content/files.go
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ozish-bot/internal/models"
)

// FileProvider reads day texts from <dir>/<track>/day<N>.txt.
type FileProvider struct {
	dir string
}

func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{dir: dir}
}

// DayText returns the day's text and whether it was found. A missing or
// unreadable file is reported as not found; the caller renders a
// placeholder.
func (p *FileProvider) DayText(track models.Track, day int) (string, bool) {
	path := filepath.Join(p.dir, string(track), fmt.Sprintf("day%d.txt", day))
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", false
	}
	return text, true
}
