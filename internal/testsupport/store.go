package testsupport

import (
	"testing"

	"furrow/internal/assignment"
	"furrow/internal/config"
)

// MustOpenStore opens an assignment.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *assignment.Store {
	t.Helper()

	store, err := assignment.Open(cfg)
	if err != nil {
		t.Fatalf("assignment.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
