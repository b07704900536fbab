// Package videobg picks the background video for the page section that
// currently fills most of the viewport.
package videobg

import (
	"sync"
	"time"

	"github.com/westbourne-advisory/website/debounce"
)

const (
	// MinVisibleRatio is the share of the viewport a section must exceed.
	MinVisibleRatio = 0.4
	DefaultDelay    = 200 * time.Millisecond
	InitialVideo    = "/video_1.mp4"
)

type Section struct {
	Name     string `json:"name"`
	Selector string `json:"selector"`
	VideoSrc string `json:"videoSrc"`
}

// DefaultSections is the home page section table, in document order.
func DefaultSections() []Section {
	return []Section{
		{Name: "hero", Selector: `section[data-section="hero"]`, VideoSrc: "/video_1.mp4"},
		{Name: "how-it-works", Selector: `section[data-section="how-it-works"]`, VideoSrc: "/video_2.mp4"},
		{Name: "testimonials", Selector: `section[data-section="testimonials"]`, VideoSrc: "/video_3.mp4"},
		{Name: "faq", Selector: `section[data-section="faq"]`, VideoSrc: "/video_4.mp4"},
		{Name: "contact", Selector: `section[data-section="contact"]`, VideoSrc: "/video_2.mp4"},
	}
}

// Rect is a section's bounding box relative to the viewport top.
type Rect struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// VisibleRatio is the visible height of r as a fraction of the viewport.
func VisibleRatio(r Rect, viewportHeight float64) float64 {
	if viewportHeight <= 0 {
		return 0
	}
	visibleTop := max(0, r.Top)
	visibleBottom := min(viewportHeight, r.Bottom)
	return max(0, visibleBottom-visibleTop) / viewportHeight
}

// MostVisible returns the video of the most visible section, or "" when no
// section is more than MinVisibleRatio visible. Sections absent from rects
// are skipped; on a tie the earlier section wins.
func MostVisible(sections []Section, rects map[string]Rect, viewportHeight float64) string {
	best := 0.0
	video := ""
	for _, s := range sections {
		r, ok := rects[s.Name]
		if !ok {
			continue
		}
		ratio := VisibleRatio(r, viewportHeight)
		if ratio > best && ratio > MinVisibleRatio {
			best = ratio
			video = s.VideoSrc
		}
	}
	return video
}

// Switcher tracks the current video and switches it after scrolling settles.
type Switcher struct {
	sections []Section
	debounce *debounce.Debouncer
	onSwitch func(video string)

	mu      sync.Mutex
	current string
}

// NewSwitcher starts on InitialVideo. onSwitch may be nil.
func NewSwitcher(sections []Section, delay time.Duration, onSwitch func(video string)) *Switcher {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Switcher{
		sections: sections,
		debounce: debounce.New(delay),
		onSwitch: onSwitch,
		current:  InitialVideo,
	}
}

func (s *Switcher) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Observe records a scroll position. The latest candidate wins once no new
// observation arrives within the delay.
func (s *Switcher) Observe(rects map[string]Rect, viewportHeight float64) {
	candidate := MostVisible(s.sections, rects, viewportHeight)
	if candidate == "" {
		return
	}
	s.debounce.Trigger(func() {
		s.switchTo(candidate)
	})
}

func (s *Switcher) switchTo(video string) {
	s.mu.Lock()
	if video == "" || video == s.current {
		s.mu.Unlock()
		return
	}
	s.current = video
	s.mu.Unlock()

	if s.onSwitch != nil {
		s.onSwitch(video)
	}
}

// Stop cancels any pending switch.
func (s *Switcher) Stop() {
	s.debounce.Stop()
}
