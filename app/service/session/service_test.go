package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"contactia/app/service/dialogue"
)

type fakeDialogue struct {
	turns int
}

func (f *fakeDialogue) Greeting() string {
	return "¡Hola!"
}

func (f *fakeDialogue) Advance(_ context.Context, sess *dialogue.Session, text string) string {
	f.turns++
	sess.MissCount = f.turns

	return fmt.Sprintf("reply %d to %q", f.turns, text)
}

type fakeRecorder struct {
	lines []string
}

func (f *fakeRecorder) Append(session, role, text string) error {
	f.lines = append(f.lines, role+": "+text)

	return nil
}

func newTestManager() (*Manager, *fakeDialogue, *fakeRecorder) {
	d := &fakeDialogue{}
	r := &fakeRecorder{}

	return &Manager{
		dialogueSvc:   d,
		transcriptSvc: r,
		ttl:           time.Minute,
		sessions:      make(map[string]*entry),
	}, d, r
}

func TestHandleMintsSessionID(t *testing.T) {
	m, _, _ := newTestManager()

	id, reply := m.Handle(context.Background(), "", "")

	if id == "" {
		t.Error("expected a minted session id")
	}
	if reply != "¡Hola!" {
		t.Errorf("reply = %q, want greeting", reply)
	}

	other, _ := m.Handle(context.Background(), "", "")
	if other == id {
		t.Error("expected a distinct id per fresh session")
	}
}

func TestHandleFreshSessionWithTextSkipsGreeting(t *testing.T) {
	m, d, _ := newTestManager()

	_, reply := m.Handle(context.Background(), "", "reservar")

	if d.turns != 1 {
		t.Errorf("dialogue turns = %d, want 1", d.turns)
	}
	if reply != `reply 1 to "reservar"` {
		t.Errorf("reply = %q", reply)
	}
}

func TestHandleKeepsStateAcrossTurns(t *testing.T) {
	m, _, _ := newTestManager()

	m.Handle(context.Background(), "s1", "reservar")
	m.Handle(context.Background(), "s1", "4")

	e := m.sessions["s1"]
	if e == nil {
		t.Fatal("session entry missing")
	}
	if e.sess.MissCount != 2 {
		t.Errorf("session state = %d, want state from second turn", e.sess.MissCount)
	}
	if len(m.sessions) != 1 {
		t.Errorf("sessions = %d, want the same entry reused", len(m.sessions))
	}
}

func TestHandleRecordsBothSides(t *testing.T) {
	m, _, r := newTestManager()

	m.Handle(context.Background(), "s1", "reservar")

	want := []string{
		"user: reservar",
		`bot: reply 1 to "reservar"`,
	}
	if len(r.lines) != len(want) {
		t.Fatalf("transcript lines = %v", r.lines)
	}
	for i := range want {
		if r.lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, r.lines[i], want[i])
		}
	}
}

func TestHandleGreetingIsRecorded(t *testing.T) {
	m, _, r := newTestManager()

	m.Handle(context.Background(), "", "")

	if len(r.lines) != 1 || r.lines[0] != "bot: ¡Hola!" {
		t.Errorf("transcript lines = %v, want just the greeting", r.lines)
	}
}
