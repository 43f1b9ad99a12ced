package ui

import (
	"fmt"
	"sync"
	"time"
)

// Thinking glyphs shown while no result is on screen
const (
	GlyphThinking  = "🤔"
	GlyphPondering = "💭"
)

// DefaultThinkInterval is how often the thinking glyph alternates
const DefaultThinkInterval = time.Second

// NextGlyph returns the glyph that follows prev
func NextGlyph(prev string) string {
	if prev == GlyphThinking {
		return GlyphPondering
	}
	return GlyphThinking
}

// Thinker alternates a glyph on a fixed interval. It is purely cosmetic and
// has no connection to any calculation.
type Thinker struct {
	w        *Writer
	label    string
	interval time.Duration

	mu      sync.Mutex
	current string

	stop chan struct{}
	done chan struct{}
}

// NewThinker creates a thinker that redraws label on w
func (w *Writer) NewThinker(label string) *Thinker {
	return &Thinker{
		w:        w,
		label:    label,
		interval: DefaultThinkInterval,
		current:  GlyphThinking,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// WithInterval overrides the alternation interval
func (t *Thinker) WithInterval(d time.Duration) *Thinker {
	t.interval = d
	return t
}

// Current returns the glyph currently shown
func (t *Thinker) Current() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Start draws the first frame and begins alternating
func (t *Thinker) Start() {
	t.draw(t.Current())
	go func() {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				close(t.done)
				return
			case <-ticker.C:
				t.mu.Lock()
				t.current = NextGlyph(t.current)
				glyph := t.current
				t.mu.Unlock()
				t.draw(glyph)
			}
		}
	}()
}

// Stop halts alternation and replaces the glyph with final
func (t *Thinker) Stop(final string) {
	close(t.stop)
	<-t.done
	fmt.Fprintf(t.w.out, "\r%s %s\n", final, t.label)
}

func (t *Thinker) draw(glyph string) {
	fmt.Fprintf(t.w.out, "\r%s %s", glyph, t.label)
}
