package assignment_test

import (
	"context"
	"testing"

	"furrow/internal/assignment"
	"furrow/internal/testsupport"
)

func TestResolveStart(t *testing.T) {
	done := func(plotID string) *assignment.Assignment {
		return &assignment.Assignment{PlotID: plotID, Completed: true}
	}
	todo := func(plotID string) *assignment.Assignment {
		return &assignment.Assignment{PlotID: plotID}
	}

	cases := []struct {
		name string
		in   []*assignment.Assignment
		want int
	}{
		{"empty", nil, 0},
		{"all incomplete", []*assignment.Assignment{todo("F1"), todo("F2")}, 0},
		{"resume mid queue", []*assignment.Assignment{done("F1"), done("F2"), todo("F3")}, 2},
		{"gap before completed tail", []*assignment.Assignment{done("F1"), todo("F2"), done("F3")}, 1},
		{"all complete wraps to zero", []*assignment.Assignment{done("F1"), done("F2")}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := assignment.ResolveStart(tc.in); got != tc.want {
				t.Fatalf("ResolveStart = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestQueueOrderAndStart(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	claim(t, store, "alice", []string{"F1", "F2", "F3"}, 3)
	if _, err := store.Submit(context.Background(), "alice", "F1", assignment.Selection{ImageA: "a.png"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	queue, start, err := store.Queue(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Queue: %v", err)
	}
	if len(queue) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(queue))
	}
	for i, wantPlot := range []string{"F1", "F2", "F3"} {
		if queue[i].PlotID != wantPlot {
			t.Fatalf("entry %d = %s, want %s", i, queue[i].PlotID, wantPlot)
		}
	}
	if start != 1 {
		t.Fatalf("start = %d, want 1", start)
	}
}

func TestQueueEmptyForUnknownAnnotator(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	queue, start, err := store.Queue(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("Queue: %v", err)
	}
	if len(queue) != 0 || start != 0 {
		t.Fatalf("expected empty queue with start 0, got %d entries start %d", len(queue), start)
	}
}
