package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aaronvstory/photochop-progress-analyzer/schema"
)

// LocalScanner classifies the immediate subfolders of a base path on the
// local filesystem. A folder is processed when it contains at least one image
// file carrying the marker prefix, empty when it has no entries at all, and
// pending otherwise.
type LocalScanner struct {
	markerPrefix string
	imageExts    map[string]bool
	now          func() time.Time
}

var _ SnapshotProducer = &LocalScanner{} // Compile-time check

// NewLocalScanner creates a scanner for the given marker prefix and image
// extensions (lowercase, leading dot).
func NewLocalScanner(markerPrefix string, imageExts []string) *LocalScanner {
	exts := make(map[string]bool, len(imageExts))
	for _, ext := range imageExts {
		exts[strings.ToLower(ext)] = true
	}
	return &LocalScanner{
		markerPrefix: markerPrefix,
		imageExts:    exts,
		now:          time.Now,
	}
}

// Scan implements the SnapshotProducer interface. Subfolders that cannot be
// read are skipped with a warning rather than failing the pass; only an
// unreadable base path is an error.
func (s *LocalScanner) Scan(ctx context.Context, basePath string) (schema.ScanResult, error) {
	entries, err := os.ReadDir(basePath)
	if err != nil {
		return schema.ScanResult{}, fmt.Errorf("cannot read base path %q: %w", basePath, err)
	}

	result := schema.ScanResult{
		Timestamp: s.now(),
		BasePath:  basePath,
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return schema.ScanResult{}, err
		}
		if !entry.IsDir() {
			continue
		}

		info, err := s.classifyFolder(filepath.Join(basePath, entry.Name()), entry.Name())
		if err != nil {
			LogWarn(fmt.Sprintf("skipping folder %q", entry.Name()), err)
			continue
		}
		result.Folders = append(result.Folders, info)
	}

	return result, nil
}

// classifyFolder inspects one subfolder's files and derives its status.
func (s *LocalScanner) classifyFolder(folderPath, name string) (schema.FolderInfo, error) {
	entries, err := os.ReadDir(folderPath)
	if err != nil {
		return schema.FolderInfo{}, err
	}

	info := schema.FolderInfo{Name: name}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info.TotalFiles++
		fileName := entry.Name()
		if !s.imageExts[strings.ToLower(filepath.Ext(fileName))] {
			continue
		}
		if strings.HasPrefix(fileName, s.markerPrefix) {
			info.MarkerFiles++
		} else {
			info.OriginalFiles++
		}
	}

	switch {
	case len(entries) == 0:
		info.Status = schema.StatusEmpty
	case info.MarkerFiles > 0:
		info.Status = schema.StatusProcessed
	default:
		info.Status = schema.StatusPending
	}
	return info, nil
}
