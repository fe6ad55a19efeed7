package upload

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/claude/piste/internal/draft"
)

// Stats summarizes one import run.
type Stats struct {
	FilesTotal    int
	FilesImported int
	FilesSkipped  int
	FilesErrored  int
}

// Importer walks a directory of exported template JSON files and sends each
// one to the server, tracking completed files in the state database so
// re-runs only send new or changed exports.
type Importer struct {
	client *Client
	state  *StateDB
	dir    string
	dryRun bool
	log    *slog.Logger
}

// New creates an Importer. client may be nil in dry-run mode.
func New(client *Client, state *StateDB, dir string, dryRun bool, log *slog.Logger) *Importer {
	return &Importer{client: client, state: state, dir: dir, dryRun: dryRun, log: log}
}

// Run imports every *.json file under the directory. Files that fail to
// decode or send are counted and logged but do not stop the run.
func (im *Importer) Run() (*Stats, error) {
	stats := &Stats{}

	err := filepath.WalkDir(im.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".json") {
			return nil
		}

		stats.FilesTotal++
		if err := im.importFile(path, stats); err != nil {
			stats.FilesErrored++
			im.log.Error("import failed", "file", path, "error", err)
		}
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("walking %s: %w", im.dir, err)
	}
	return stats, nil
}

func (im *Importer) importFile(path string, stats *Stats) error {
	rel, err := filepath.Rel(im.dir, path)
	if err != nil {
		rel = path
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	hash, err := HashFile(path)
	if err != nil {
		return fmt.Errorf("hashing: %w", err)
	}

	done, err := im.state.IsImported(rel, info.Size(), hash)
	if err != nil {
		return fmt.Errorf("state lookup: %w", err)
	}
	if done {
		stats.FilesSkipped++
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var d draft.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("decoding draft: %w", err)
	}

	if im.dryRun {
		im.log.Info("dry run: would import", "file", rel, "title", d.Title)
		stats.FilesImported++
		return nil
	}

	if err := im.client.SendTemplate(d); err != nil {
		return err
	}
	if err := im.state.MarkImported(rel, info.Size(), hash); err != nil {
		return fmt.Errorf("recording state: %w", err)
	}

	im.log.Info("imported", "file", rel, "title", d.Title)
	stats.FilesImported++
	return nil
}
