package assignment_test

import (
	"context"
	"errors"
	"testing"

	"furrow/internal/assignment"
	"furrow/internal/testsupport"
)

func claim(t *testing.T, store *assignment.Store, annotatorID string, plots []string, limit int) []string {
	t.Helper()
	granted, err := store.ClaimPlots(context.Background(), annotatorID, plots, limit)
	if err != nil {
		t.Fatalf("ClaimPlots: %v", err)
	}
	return granted
}

func TestClaimPlotsNeverDoubleAssigns(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	pool := []string{"F1", "F2", "F3"}

	first := claim(t, store, "alice", pool, 2)
	if len(first) != 2 || first[0] != "F1" || first[1] != "F2" {
		t.Fatalf("unexpected first grant: %v", first)
	}

	second := claim(t, store, "bob", pool, 3)
	if len(second) != 1 || second[0] != "F3" {
		t.Fatalf("expected bob to get only F3, got %v", second)
	}

	third := claim(t, store, "carol", pool, 1)
	if len(third) != 0 {
		t.Fatalf("expected empty grant from exhausted pool, got %v", third)
	}
}

func TestClaimPlotsConcurrent(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	pool := []string{"F1", "F2", "F3", "F4", "F5", "F6"}

	type result struct {
		granted []string
		err     error
	}
	results := make(chan result, 3)
	for _, who := range []string{"alice", "bob", "carol"} {
		go func(annotator string) {
			granted, err := store.ClaimPlots(context.Background(), annotator, pool, 2)
			results <- result{granted, err}
		}(who)
	}

	seen := make(map[string]int)
	total := 0
	for i := 0; i < 3; i++ {
		r := <-results
		if r.err != nil {
			t.Fatalf("concurrent claim failed: %v", r.err)
		}
		for _, plotID := range r.granted {
			seen[plotID]++
			total++
		}
	}
	if total != 6 {
		t.Fatalf("expected all 6 plots granted, got %d", total)
	}
	for plotID, n := range seen {
		if n != 1 {
			t.Fatalf("plot %s granted %d times", plotID, n)
		}
	}
}

func TestAssignmentLookup(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	claim(t, store, "alice", []string{"F1"}, 1)

	a, err := store.Assignment(context.Background(), "alice", "F1")
	if err != nil {
		t.Fatalf("Assignment: %v", err)
	}
	if a == nil || a.Completed || a.AnnotatorID != "alice" {
		t.Fatalf("unexpected assignment: %+v", a)
	}
	if a.AssignedAt.IsZero() {
		t.Fatal("expected assigned_at to be set")
	}

	missing, err := store.Assignment(context.Background(), "alice", "F2")
	if err != nil {
		t.Fatalf("Assignment: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown binding, got %+v", missing)
	}
}

func TestSubmitRequiresAssignment(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	_, err := store.Submit(context.Background(), "alice", "F1", assignment.Selection{ImageA: "2024/2024_1_9.png"})
	if !errors.Is(err, assignment.ErrNotAssigned) {
		t.Fatalf("expected ErrNotAssigned, got %v", err)
	}

	// Submission must never create an implicit assignment.
	assignments, err := store.AssignmentsFor(context.Background(), "alice")
	if err != nil {
		t.Fatalf("AssignmentsFor: %v", err)
	}
	if len(assignments) != 0 {
		t.Fatalf("expected no assignments, got %d", len(assignments))
	}
}

func TestSubmitRejectsEmptySelection(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	claim(t, store, "alice", []string{"F1"}, 1)

	_, err := store.Submit(context.Background(), "alice", "F1", assignment.Selection{})
	if !errors.Is(err, assignment.ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}

	a, err := store.Assignment(context.Background(), "alice", "F1")
	if err != nil {
		t.Fatalf("Assignment: %v", err)
	}
	if a.Completed {
		t.Fatal("rejected submission must not complete the assignment")
	}
}

func TestSubmitCompletesAndUpserts(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	claim(t, store, "alice", []string{"F1"}, 1)

	first, err := store.Submit(context.Background(), "alice", "F1", assignment.Selection{
		ImageA:      "2024/2024_1_9.png",
		ImageCountA: 4,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected record ID")
	}

	a, err := store.Assignment(context.Background(), "alice", "F1")
	if err != nil {
		t.Fatalf("Assignment: %v", err)
	}
	if !a.Completed || a.CompletedAt == nil {
		t.Fatalf("expected completed assignment, got %+v", a)
	}
	firstCompletedAt := *a.CompletedAt

	// Resubmission overwrites the selection, keeps the UUID, never
	// regresses completion.
	second, err := store.Submit(context.Background(), "alice", "F1", assignment.Selection{
		ImageA:      "2024/2024_12_5.png",
		ImageB:      "2025/2025_1_3.png",
		ImageCountA: 4,
		ImageCountB: 2,
	})
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("record ID changed on resubmit: %s -> %s", first.ID, second.ID)
	}

	stored, err := store.RecordFor(context.Background(), "alice", "F1")
	if err != nil {
		t.Fatalf("RecordFor: %v", err)
	}
	if stored.ImageA != "2024/2024_12_5.png" || stored.ImageB != "2025/2025_1_3.png" {
		t.Fatalf("unexpected stored selection: %+v", stored.Selection)
	}

	a, err = store.Assignment(context.Background(), "alice", "F1")
	if err != nil {
		t.Fatalf("Assignment: %v", err)
	}
	if !a.Completed {
		t.Fatal("completion regressed on resubmit")
	}
	if !a.CompletedAt.Equal(firstCompletedAt) {
		t.Fatalf("completed_at changed on resubmit: %v -> %v", firstCompletedAt, a.CompletedAt)
	}
}

func TestRemoveDeletesAssignmentAndRecord(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	claim(t, store, "alice", []string{"F1"}, 1)
	if _, err := store.Submit(context.Background(), "alice", "F1", assignment.Selection{ImageA: "x.png"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := store.Remove(context.Background(), "alice", "F1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	a, err := store.Assignment(context.Background(), "alice", "F1")
	if err != nil {
		t.Fatalf("Assignment: %v", err)
	}
	if a != nil {
		t.Fatalf("assignment survived removal: %+v", a)
	}
	r, err := store.RecordFor(context.Background(), "alice", "F1")
	if err != nil {
		t.Fatalf("RecordFor: %v", err)
	}
	if r != nil {
		t.Fatalf("record survived removal: %+v", r)
	}

	// Plot returns to the unassigned pool.
	granted := claim(t, store, "bob", []string{"F1"}, 1)
	if len(granted) != 1 {
		t.Fatalf("expected F1 reclaimable after removal, got %v", granted)
	}
}

func TestRemoveMissingBindingIsNoError(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	if err := store.Remove(context.Background(), "alice", "F1"); err != nil {
		t.Fatalf("Remove of missing binding: %v", err)
	}
}

func TestClearAnnotationsReopensAssignments(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	claim(t, store, "alice", []string{"F1", "F2"}, 2)
	claim(t, store, "bob", []string{"F3"}, 1)
	for _, sub := range []struct{ annotator, plot string }{
		{"alice", "F1"},
		{"bob", "F3"},
	} {
		if _, err := store.Submit(context.Background(), sub.annotator, sub.plot, assignment.Selection{ImageA: "a.png"}); err != nil {
			t.Fatalf("Submit %s/%s: %v", sub.annotator, sub.plot, err)
		}
	}

	cleared, err := store.ClearAnnotations(context.Background())
	if err != nil {
		t.Fatalf("ClearAnnotations: %v", err)
	}
	if cleared != 2 {
		t.Fatalf("expected 2 cleared annotations, got %d", cleared)
	}

	records, err := store.Records(context.Background())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("annotations survived clear: %d", len(records))
	}

	// Bindings stay, but no assignment may remain completed without a
	// backing record.
	all, err := store.Assignments(context.Background())
	if err != nil {
		t.Fatalf("Assignments: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 bindings to survive, got %d", len(all))
	}
	for _, a := range all {
		if a.Completed || a.CompletedAt != nil {
			t.Fatalf("assignment %s still completed after clear: %+v", a.PlotID, a)
		}
	}

	p, err := store.ProgressFor(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ProgressFor: %v", err)
	}
	if p.Completed != 0 || p.Remaining != 2 || p.Percent != 0 {
		t.Fatalf("progress not reset: %+v", p)
	}
}

func TestRecordsOrderedForExport(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	claim(t, store, "alice", []string{"F1", "F2"}, 2)
	for _, plotID := range []string{"F2", "F1"} {
		if _, err := store.Submit(context.Background(), "alice", plotID, assignment.Selection{ImageA: "a.png"}); err != nil {
			t.Fatalf("Submit %s: %v", plotID, err)
		}
	}

	records, err := store.Records(context.Background())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}
