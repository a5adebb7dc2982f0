package broadcast

import (
	"errors"
	"testing"
)

type fakeSender struct {
	sent    []int64
	failIDs map[int64]struct{}
}

func newFakeSender(failIDs ...int64) *fakeSender {
	s := &fakeSender{failIDs: make(map[int64]struct{})}
	for _, id := range failIDs {
		s.failIDs[id] = struct{}{}
	}
	return s
}

func (s *fakeSender) SendText(userID int64, _ string) error {
	if _, ok := s.failIDs[userID]; ok {
		return errors.New("blocked by user")
	}
	s.sent = append(s.sent, userID)
	return nil
}

func TestRunCountsAreConserved(t *testing.T) {
	sender := newFakeSender(2)
	engine := New(sender, 0)

	rep := engine.Run([]int64{1, 2, 3}, "hello")

	if rep.Sent != 2 || rep.Failed != 1 || rep.Total != 3 {
		t.Fatalf("expected sent=2 failed=1 total=3, got sent=%d failed=%d total=%d", rep.Sent, rep.Failed, rep.Total)
	}
	if rep.Sent+rep.Failed != rep.Total {
		t.Fatalf("conservation violated: %d+%d != %d", rep.Sent, rep.Failed, rep.Total)
	}
}

func TestRunFailureDoesNotAbortRemaining(t *testing.T) {
	sender := newFakeSender(2)
	engine := New(sender, 0)

	engine.Run([]int64{1, 2, 3}, "hello")

	if len(sender.sent) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(sender.sent))
	}
	if sender.sent[0] != 1 || sender.sent[1] != 3 {
		t.Fatalf("expected deliveries to users 1 and 3 in order, got %v", sender.sent)
	}
}

func TestRunEmptyTargets(t *testing.T) {
	sender := newFakeSender()
	engine := New(sender, 0)

	rep := engine.Run(nil, "hello")

	if rep.Sent != 0 || rep.Failed != 0 || rep.Total != 0 {
		t.Fatalf("expected empty report, got %+v", rep)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no deliveries, got %v", sender.sent)
	}
}

func TestRunPreservesSnapshotOrder(t *testing.T) {
	sender := newFakeSender()
	engine := New(sender, 0)

	rep := engine.Run([]int64{5, 3, 8, 1}, "hello")

	if rep.Sent != 4 {
		t.Fatalf("expected sent=4, got %d", rep.Sent)
	}
	want := []int64{5, 3, 8, 1}
	for i, id := range want {
		if sender.sent[i] != id {
			t.Fatalf("expected delivery order %v, got %v", want, sender.sent)
		}
	}
	if rep.JobID == "" {
		t.Fatal("expected a non-empty job id")
	}
}
