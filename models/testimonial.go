package models

import "strings"

type Testimonial struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Location  string    `json:"location,omitempty"`
	Quote     string    `json:"quote"`
	Rating    int       `json:"rating"`
	Featured  bool      `json:"featured"`
	Avatar    *Media    `json:"avatar,omitempty"`
	CreatedAt Timestamp `json:"createdAt"`
}

// Initials is shown in place of a missing avatar, e.g. "Sarah & James" -> "S&".
func (t Testimonial) Initials() string {
	var b strings.Builder
	for _, word := range strings.Fields(t.Name) {
		r := []rune(word)
		b.WriteRune(r[0])
	}
	initials := []rune(b.String())
	if len(initials) > 2 {
		initials = initials[:2]
	}
	return string(initials)
}

// Stars returns one element per rating point, clamped to 0..5.
func (t Testimonial) Stars() []int {
	n := t.Rating
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	stars := make([]int, n)
	for i := range stars {
		stars[i] = i + 1
	}
	return stars
}
