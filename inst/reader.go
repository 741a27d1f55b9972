package inst

import "encoding/binary"

// reader walks one instruction's bytes. Every read is bounds checked and
// reports how far the instruction got before the buffer ran out.
type reader struct {
	buf   []byte
	pos   int
	class Class
}

func newReader(buf []byte, class Class) *reader {
	return &reader{buf: buf, class: class}
}

func (r *reader) truncated(field string, n int) error {
	return &TruncatedInstructionError{
		Class: r.class,
		Field: field,
		Need:  r.pos + n,
		Have:  len(r.buf),
	}
}

func (r *reader) byte(field string) (byte, error) {
	if r.pos+1 > len(r.buf) {
		return 0, r.truncated(field, 1)
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) word(field string) (uint16, error) {
	if r.pos+2 > len(r.buf) {
		return 0, r.truncated(field, 2)
	}
	w := binary.LittleEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return w, nil
}

// sized reads one byte or a little-endian word.
func (r *reader) sized(field string, n int) (uint16, error) {
	switch n {
	case 0:
		return 0, nil
	case 1:
		b, err := r.byte(field)
		return uint16(b), err
	default:
		return r.word(field)
	}
}

// consumed is the number of bytes read so far.
func (r *reader) consumed() []byte {
	return r.buf[:r.pos]
}
