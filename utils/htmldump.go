package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

const maxDumpBytes = 50000

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// HTMLDumper writes raw page HTML to a directory as a debugging aid when a
// page fails to yield data. With an empty directory it is a no-op, so it can
// always be wired in and enabled only when needed.
type HTMLDumper struct {
	dir    string
	logger *Logger
}

// NewHTMLDumper creates a dumper writing into dir. An empty dir disables it.
func NewHTMLDumper(dir string, logger *Logger) *HTMLDumper {
	return &HTMLDumper{dir: dir, logger: logger}
}

// Enabled reports whether a dump directory is configured
func (d *HTMLDumper) Enabled() bool {
	return d != nil && d.dir != ""
}

// Dump writes up to the first 50k bytes of html under a name derived from tag.
// Failures are logged, never returned: dumping is best-effort diagnostics.
func (d *HTMLDumper) Dump(tag string, html string) {
	if !d.Enabled() {
		return
	}
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		d.logger.Warn("Cannot create debug HTML dir %s: %v", d.dir, err)
		return
	}

	if len(html) > maxDumpBytes {
		html = html[:maxDumpBytes]
	}
	name := fmt.Sprintf("%s_%s.html",
		unsafeNameChars.ReplaceAllString(tag, "_"),
		time.Now().Format("150405"))
	path := filepath.Join(d.dir, name)

	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		d.logger.Warn("Cannot write debug HTML to %s: %v", path, err)
		return
	}
	d.logger.Info("Saved debug HTML to %s", path)
}
