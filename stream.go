package sim8086

// ByteStream is a read-only buffer with a forward-only cursor.
type ByteStream struct {
	buf []byte
	pos int
}

func NewByteStream(buf []byte) *ByteStream {
	return &ByteStream{buf: buf}
}

func (s *ByteStream) Position() int {
	return s.pos
}

func (s *ByteStream) Len() int {
	return len(s.buf)
}

func (s *ByteStream) Done() bool {
	return s.pos >= len(s.buf)
}

// Rest returns the unread bytes. Callers must not modify them.
func (s *ByteStream) Rest() []byte {
	if s.Done() {
		return nil
	}
	return s.buf[s.pos:]
}

// Peek returns the byte under the cursor.
func (s *ByteStream) Peek() (byte, bool) {
	if s.Done() {
		return 0, false
	}
	return s.buf[s.pos], true
}

// Advance moves the cursor n bytes forward, stopping at the end of the buffer.
func (s *ByteStream) Advance(n int) {
	if n < 1 {
		panic("cursor must advance")
	}
	s.pos = min(s.pos+n, len(s.buf))
}
