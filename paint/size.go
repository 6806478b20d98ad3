package paint

const (
	MinSize     = 1
	MaxSize     = 20
	DefaultSize = 2
)

// Size is the brush size in cells. The host owns one Size and hands it to
// every tool it activates, so the last used size carries over.
type Size struct {
	n int
}

// NewSize returns a Size clamped to [MinSize, MaxSize].
func NewSize(n int) *Size {
	return &Size{n: clampSize(n)}
}

func (s *Size) Get() int {
	if s == nil || s.n == 0 {
		return DefaultSize
	}
	return s.n
}

// Increase grows the size by one and reports whether it changed.
func (s *Size) Increase() bool {
	n := s.Get()
	if n >= MaxSize {
		return false
	}
	s.n = n + 1
	return true
}

// Decrease shrinks the size by one and reports whether it changed.
func (s *Size) Decrease() bool {
	n := s.Get()
	if n <= MinSize {
		return false
	}
	s.n = n - 1
	return true
}

func clampSize(n int) int {
	return max(MinSize, min(MaxSize, n))
}
