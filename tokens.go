package cmdy

import "github.com/ef-ds/deque"

// tokenStream is the unconsumed argument list. Tokens are taken from the front; shorthand
// expansion pushes synthesized tokens back onto the front so they are processed next.
type tokenStream struct {
	d *deque.Deque
}

func newTokenStream(args []string) *tokenStream {
	d := deque.New()
	for _, a := range args {
		d.PushBack(a)
	}
	return &tokenStream{d: d}
}

func (s *tokenStream) len() int {
	return s.d.Len()
}

func (s *tokenStream) peek() (string, bool) {
	v, ok := s.d.Front()
	if !ok {
		return "", false
	}
	return v.(string), true
}

func (s *tokenStream) next() (string, bool) {
	v, ok := s.d.PopFront()
	if !ok {
		return "", false
	}
	return v.(string), true
}

// unshift puts tokens back on the front, keeping their order: the first of toks is the next
// token returned.
func (s *tokenStream) unshift(toks ...string) {
	for i := len(toks) - 1; i >= 0; i-- {
		s.d.PushFront(toks[i])
	}
}
