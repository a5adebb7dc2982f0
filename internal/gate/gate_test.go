package gate

import (
	"context"
	"errors"
	"testing"

	"gopkg.in/telebot.v4"
)

type fakeOracle struct {
	status telebot.MemberStatus
	err    error
}

func (o *fakeOracle) MemberStatus(context.Context, int64) (telebot.MemberStatus, error) {
	return o.status, o.err
}

type fakeRecorder struct {
	recorded []int64
	err      error
}

func (r *fakeRecorder) Record(_ context.Context, userID int64, _ string) error {
	if r.err != nil {
		return r.err
	}
	r.recorded = append(r.recorded, userID)
	return nil
}

func TestAdmitByMemberStatus(t *testing.T) {
	for _, tc := range []struct {
		name     string
		status   telebot.MemberStatus
		want     Outcome
		recorded bool
	}{
		{"member", telebot.Member, OutcomeGranted, true},
		{"administrator", telebot.Administrator, OutcomeGranted, true},
		{"creator", telebot.Creator, OutcomeGranted, true},
		{"left", telebot.Left, OutcomeDenied, false},
		{"kicked", telebot.Kicked, OutcomeDenied, false},
		{"restricted", telebot.Restricted, OutcomeDenied, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			recorder := &fakeRecorder{}
			g := New(&fakeOracle{status: tc.status}, recorder)

			outcome, err := g.Admit(context.Background(), 42, "alice")
			if err != nil {
				t.Fatalf("Admit returned error: %v", err)
			}
			if outcome != tc.want {
				t.Fatalf("expected outcome %q, got %q", tc.want, outcome)
			}

			if tc.recorded && len(recorder.recorded) != 1 {
				t.Fatalf("expected one ledger write, got %d", len(recorder.recorded))
			}
			if !tc.recorded && len(recorder.recorded) != 0 {
				t.Fatalf("expected no ledger write, got %d", len(recorder.recorded))
			}
		})
	}
}

func TestAdmitFailsClosedOnOracleError(t *testing.T) {
	recorder := &fakeRecorder{}
	g := New(&fakeOracle{err: errors.New("gateway timeout")}, recorder)

	outcome, err := g.Admit(context.Background(), 42, "alice")
	if err != nil {
		t.Fatalf("Admit returned error: %v", err)
	}
	if outcome != OutcomeFailed {
		t.Fatalf("expected %q, got %q", OutcomeFailed, outcome)
	}
	if len(recorder.recorded) != 0 {
		t.Fatalf("expected no ledger write on oracle error, got %d", len(recorder.recorded))
	}
}

func TestAdmitSurfacesLedgerWriteFailure(t *testing.T) {
	recorder := &fakeRecorder{err: errors.New("database unavailable")}
	g := New(&fakeOracle{status: telebot.Member}, recorder)

	_, err := g.Admit(context.Background(), 42, "alice")
	if err == nil {
		t.Fatal("expected an error when the ledger write fails")
	}
}

func TestAdmitIsRepeatable(t *testing.T) {
	recorder := &fakeRecorder{}
	g := New(&fakeOracle{status: telebot.Member}, recorder)

	for i := 0; i < 3; i++ {
		outcome, err := g.Admit(context.Background(), 42, "alice")
		if err != nil {
			t.Fatalf("Admit returned error on attempt %d: %v", i, err)
		}
		if outcome != OutcomeGranted {
			t.Fatalf("expected %q on attempt %d, got %q", OutcomeGranted, i, outcome)
		}
	}

	// Deduplication lives in the ledger; the gate only replays the
	// same transitions.
	if len(recorder.recorded) != 3 {
		t.Fatalf("expected 3 ledger calls, got %d", len(recorder.recorded))
	}
}
