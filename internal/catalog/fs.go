package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var imageExtensions = map[string]struct{}{
	".tif":  {},
	".tiff": {},
	".png":  {},
	".jpg":  {},
	".jpeg": {},
}

// FS reads plots straight from a dataset directory. Each plot is a
// subdirectory named by its identifier, holding cycle-year subdirectories
// (2024/, 2025/, ...) of images.
type FS struct {
	root     string
	collator *collate.Collator
}

// NewFS builds a filesystem-backed provider rooted at dir.
func NewFS(dir string) *FS {
	return &FS{
		root:     dir,
		collator: collate.New(language.Und, collate.Numeric),
	}
}

func (f *FS) Plots(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(f.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read dataset directory: %w", err)
	}
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		// "0" is the dataset's scratch directory, never a plot.
		if name == "0" || strings.HasPrefix(name, ".") {
			continue
		}
		ids = append(ids, name)
	}
	// Numeric-aware ordering so plot 9 sorts before plot 10.
	sort.SliceStable(ids, func(i, j int) bool {
		return f.collator.CompareString(ids[i], ids[j]) < 0
	})
	return ids, nil
}

func (f *FS) PlotImages(ctx context.Context, plotID string) ([]Cycle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	plotDir, err := f.plotDir(plotID)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(plotDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("plot %s: %w", plotID, os.ErrNotExist)
	}

	var entries []ImageEntry
	err = filepath.WalkDir(plotDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := imageExtensions[strings.ToLower(filepath.Ext(d.Name()))]; !ok {
			return nil
		}
		relative, err := filepath.Rel(plotDir, path)
		if err != nil {
			return err
		}
		date, ok := ParseDate(d.Name())
		if !ok {
			date = dateFromModTime(path)
		}
		entries = append(entries, ImageEntry{
			Filename: filepath.ToSlash(relative),
			Label:    date.Label(),
			Date:     date,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan plot %s: %w", plotID, err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].Filename < entries[j].Filename
	})
	return groupByCycle(entries), nil
}

func (f *FS) ImagePath(plotID, relative string) (string, error) {
	plotDir, err := f.plotDir(plotID)
	if err != nil {
		return "", err
	}
	cleaned := filepath.Clean(filepath.FromSlash(relative))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("image path %q escapes plot directory", relative)
	}
	full := filepath.Join(plotDir, cleaned)
	info, err := os.Stat(full)
	if err != nil {
		return "", fmt.Errorf("image %s/%s: %w", plotID, relative, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("image %s/%s: %w", plotID, relative, os.ErrNotExist)
	}
	return full, nil
}

func (f *FS) plotDir(plotID string) (string, error) {
	if plotID == "" || plotID != filepath.Base(plotID) || strings.HasPrefix(plotID, ".") {
		return "", fmt.Errorf("invalid plot id %q", plotID)
	}
	return filepath.Join(f.root, plotID), nil
}

func dateFromModTime(path string) Date {
	info, err := os.Stat(path)
	if err != nil {
		return Date{Year: 2024}
	}
	t := info.ModTime()
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

func groupByCycle(entries []ImageEntry) []Cycle {
	var cycles []Cycle
	index := make(map[int]int)
	for _, entry := range entries {
		i, ok := index[entry.Date.Year]
		if !ok {
			i = len(cycles)
			index[entry.Date.Year] = i
			cycles = append(cycles, Cycle{Year: entry.Date.Year})
		}
		cycles[i].Entries = append(cycles[i].Entries, entry)
	}
	sort.SliceStable(cycles, func(i, j int) bool { return cycles[i].Year < cycles[j].Year })
	return cycles
}
