package tui

import (
	"sync"
	"testing"
	"time"

	"cosmic_insights_backend/internal/form"
)

type shown struct {
	gen uint64
	p   form.Paragraph
}

type recorder struct {
	mu   sync.Mutex
	seen []shown
}

func (r *recorder) show(gen uint64, p form.Paragraph) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, shown{gen: gen, p: p})
}

func (r *recorder) snapshot() []shown {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]shown(nil), r.seen...)
}

func TestRevealerPlaysInOrder(t *testing.T) {
	var rv revealer
	rec := &recorder{}

	gen := rv.Start(form.Paragraphs("a\nb\nc"), rec.show)
	time.Sleep(form.ParagraphStagger*2 + 150*time.Millisecond)

	seen := rec.snapshot()
	if len(seen) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d", len(seen))
	}
	for i, s := range seen {
		if s.gen != gen || s.p.Index != i {
			t.Fatalf("unexpected paragraph %d: %+v", i, s)
		}
	}
}

func TestRevealerNewReadingCancelsPending(t *testing.T) {
	var rv revealer
	rec := &recorder{}

	first := rv.Start(form.Paragraphs("a\nb\nc"), rec.show)
	second := rv.Start(form.Paragraphs("z"), rec.show)
	time.Sleep(form.ParagraphStagger*2 + 150*time.Millisecond)

	if rv.Current(first) {
		t.Fatal("expected first reading to be stale")
	}
	var fromSecond int
	for _, s := range rec.snapshot() {
		if s.gen == first && s.p.Index > 0 {
			t.Fatalf("stale paragraph shown: %+v", s)
		}
		if s.gen == second {
			fromSecond++
		}
	}
	if fromSecond != 1 {
		t.Fatalf("expected one paragraph from the new reading, got %d", fromSecond)
	}
}

func TestRevealerCancel(t *testing.T) {
	var rv revealer
	rec := &recorder{}

	rv.Start(form.Paragraphs("a\nb"), rec.show)
	rv.Cancel()
	time.Sleep(form.ParagraphStagger + 100*time.Millisecond)

	for _, s := range rec.snapshot() {
		if s.p.Index > 0 {
			t.Fatalf("paragraph shown after cancel: %+v", s)
		}
	}
}
