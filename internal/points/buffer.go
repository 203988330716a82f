// Package points holds the fixed-capacity point buffer the sketch draws
// from. Positions are normalized device coordinates.
package points

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// MinCapacity is the smallest buffer New will build; one slot for the
// newest point and one for the cursor.
const MinCapacity = 2

// Point is one stored vertex. Active points come from drag motion, inactive
// ones from discrete presses or the end-of-stroke sentinel.
type Point struct {
	X, Y   float32
	Active bool
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float32 {
	return math32.Hypot(p.X-q.X, p.Y-q.Y)
}

// Policy decides what an append does once every slot holds a point.
type Policy int

const (
	// Wrap advances the cursor modulo capacity, overwriting the oldest point.
	Wrap Policy = iota
	// Reset discards every point and restarts at slot 0.
	Reset
)

func (p Policy) String() string {
	switch p {
	case Wrap:
		return "wrap"
	case Reset:
		return "reset"
	default:
		return "unknown"
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wrap", "":
		return Wrap, nil
	case "reset":
		return Reset, nil
	}
	return Wrap, fmt.Errorf("unknown overflow policy %q (want wrap or reset)", s)
}

// Buffer is a ring of points with a write cursor. Logical point i (0 is the
// oldest) lives in slot (cursor-length+i) mod cap. Slots outside the
// logical range are always the zero Point.
type Buffer struct {
	slots  []Point
	cursor int
	length int
	policy Policy
}

func New(capacity int, policy Policy) *Buffer {
	if capacity < MinCapacity {
		capacity = MinCapacity
	}
	return &Buffer{slots: make([]Point, capacity), policy: policy}
}

func (b *Buffer) Len() int       { return b.length }
func (b *Buffer) Cap() int       { return len(b.slots) }
func (b *Buffer) Cursor() int    { return b.cursor }
func (b *Buffer) Policy() Policy { return b.policy }
func (b *Buffer) Full() bool     { return b.length == len(b.slots) }

func (b *Buffer) wrap(i int) int {
	n := len(b.slots)
	return ((i % n) + n) % n
}

// start is the slot holding the oldest logical point.
func (b *Buffer) start() int { return b.wrap(b.cursor - b.length) }

// SlotOf maps a logical index to its physical slot. The second result is
// false when i is out of range.
func (b *Buffer) SlotOf(i int) (int, bool) {
	if i < 0 || i >= b.length {
		return 0, false
	}
	return b.wrap(b.start() + i), true
}

// At returns logical point i, oldest first.
func (b *Buffer) At(i int) (Point, bool) {
	s, ok := b.SlotOf(i)
	if !ok {
		return Point{}, false
	}
	return b.slots[s], true
}

// Slot returns the raw content of physical slot i.
func (b *Buffer) Slot(i int) Point {
	if i < 0 || i >= len(b.slots) {
		return Point{}
	}
	return b.slots[i]
}

// Newest returns the most recently appended point still in the buffer.
func (b *Buffer) Newest() (Point, bool) {
	return b.At(b.length - 1)
}

// Points copies the logical points, oldest first.
func (b *Buffer) Points() []Point {
	out := make([]Point, 0, b.length)
	for i := 0; i < b.length; i++ {
		p, _ := b.At(i)
		out = append(out, p)
	}
	return out
}

// Append stores a point at the cursor and advances it. When the buffer is
// full the policy decides whether the oldest point is overwritten (Wrap) or
// everything is dropped first (Reset). The slot after the new cursor is
// flagged inactive so the stroke never joins whatever follows it.
func (b *Buffer) Append(x, y float32, active bool) {
	if b.Full() {
		switch b.policy {
		case Reset:
			b.Clear()
		default:
			b.length--
		}
	}
	written := b.cursor
	b.slots[written] = Point{X: x, Y: y, Active: active}
	b.cursor = b.wrap(b.cursor + 1)
	b.length++
	// with two slots the sentinel would land on the point just written
	if sentinel := b.wrap(b.cursor + 1); sentinel != written {
		b.slots[sentinel].Active = false
	}
}

// AppendDrag appends an active point unless it lies closer than minDist to
// the newest point. It reports whether the point was stored.
func (b *Buffer) AppendDrag(x, y, minDist float32) bool {
	if last, ok := b.Newest(); ok && minDist > 0 {
		if d := last.Dist(Point{X: x, Y: y}); d < minDist {
			return false
		}
	}
	b.Append(x, y, true)
	return true
}

// RemoveFirst drops the oldest point and slides the rest toward slot 0.
func (b *Buffer) RemoveFirst() {
	if b.length == 0 {
		return
	}
	kept := b.Points()[1:]
	for i := range b.slots {
		b.slots[i] = Point{}
	}
	copy(b.slots, kept)
	b.length = len(kept)
	b.cursor = b.wrap(b.length)
}

// RemoveLast drops the newest point and steps the cursor back onto its slot.
func (b *Buffer) RemoveLast() {
	if b.length == 0 {
		return
	}
	b.cursor = b.wrap(b.cursor - 1)
	b.slots[b.cursor] = Point{}
	b.length--
}

// Clear zeroes every slot and rewinds the cursor.
func (b *Buffer) Clear() {
	for i := range b.slots {
		b.slots[i] = Point{}
	}
	b.cursor = 0
	b.length = 0
}
