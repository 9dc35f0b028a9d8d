package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"furrow/internal/config"
)

// SeedPlot creates a plot directory under the test dataset with the given
// image files, each path relative to the plot directory (e.g.
// "2024/2024_1_9.png").
func SeedPlot(t testing.TB, cfg *config.Config, plotID string, images ...string) {
	t.Helper()

	for _, name := range images {
		full := filepath.Join(cfg.Paths.DatasetDir, plotID, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", name, err)
		}
		if err := os.WriteFile(full, []byte("image"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if len(images) == 0 {
		if err := os.MkdirAll(filepath.Join(cfg.Paths.DatasetDir, plotID), 0o755); err != nil {
			t.Fatalf("mkdir plot %s: %v", plotID, err)
		}
	}
}
