package helper

import "bytes"

// MaxPending bytes of an unterminated line kept before it is discarded
const MaxPending = 64 << 10

// LineBuffer frames a byte stream into lines ending in \n or \r\n.
// A trailing partial line is kept until a later chunk completes it.
type LineBuffer struct {
	pending []byte
}

// Write returns every line completed by chunk, without terminators, empty lines skipped
func (b *LineBuffer) Write(chunk []byte) []string {
	b.pending = append(b.pending, chunk...)

	var lines []string
	for {
		index := bytes.IndexByte(b.pending, '\n')
		if index == -1 {
			break
		}

		line := bytes.TrimSuffix(b.pending[:index], []byte{'\r'})
		if len(bytes.TrimSpace(line)) > 0 {
			lines = append(lines, string(line))
		}
		b.pending = b.pending[index+1:]
	}

	if len(b.pending) > MaxPending {
		prefix := b.pending[:64]
		l.Warn().Printf("discarding %d bytes without a line break: %q...", len(b.pending), prefix)
		b.pending = nil
	}

	if len(b.pending) == 0 {
		b.pending = nil
	}

	return lines
}

func (b *LineBuffer) Pending() string {
	return string(b.pending)
}

func (b *LineBuffer) Reset() {
	b.pending = nil
}
