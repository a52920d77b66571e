package sd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const endMarker = "### END ###"

// maxLineBytes bounds a single matrix row (2 bytes per bit).
const maxLineBytes = 64 << 20

var ErrNoInstance = errors.New("sd: no instance in input")

// ParseError reports malformed instance text.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string { return fmt.Sprintf("sd: line %d: %s", e.Line, e.Msg) }

// AppendText appends the text encoding:
//
//	### TEST CASE <case> ###
//	<k> <n>
//	k rows of n space-separated bits
//	s as k space-separated bits
//	<w>
func (in *Instance) AppendText(b []byte) ([]byte, error) {
	b = append(b, "### TEST CASE "...)
	b = strconv.AppendInt(b, int64(in.Case), 10)
	b = append(b, " ###\n"...)
	b = strconv.AppendInt(b, int64(in.K), 10)
	b = append(b, ' ')
	b = strconv.AppendInt(b, int64(in.N), 10)
	b = append(b, '\n')
	for _, row := range in.Rows {
		b = appendBits(b, row)
	}
	b = appendBits(b, in.S)
	b = strconv.AppendInt(b, int64(in.W), 10)
	b = append(b, '\n')
	return b, nil
}

// MarshalText returns the text encoding.
func (in *Instance) MarshalText() ([]byte, error) {
	return in.AppendText(make([]byte, 0, in.textSize()))
}

// WriteTo writes the text encoding to w.
func (in *Instance) WriteTo(w io.Writer) (int64, error) {
	b, err := in.MarshalText()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}

func (in *Instance) textSize() int {
	return 64 + 2*in.K*in.N + 2*in.K
}

func appendBits(b []byte, bits []uint8) []byte {
	for i, v := range bits {
		if i > 0 {
			b = append(b, ' ')
		}
		b = append(b, '0'+v)
	}
	return append(b, '\n')
}

// WriteBundle writes several instances back to back, followed by "### END ###".
func WriteBundle(w io.Writer, ins []*Instance) error {
	bw := bufio.NewWriter(w)
	for _, in := range ins {
		if _, err := in.WriteTo(bw); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString(endMarker + "\n"); err != nil {
		return err
	}
	return bw.Flush()
}

// ParseBits parses whitespace separated 0/1 tokens.
func ParseBits(line string) ([]uint8, error) {
	fields := strings.Fields(line)
	out := make([]uint8, len(fields))
	for i, f := range fields {
		switch f {
		case "0":
		case "1":
			out[i] = 1
		default:
			return nil, fmt.Errorf("token %d: %q is not a bit", i, f)
		}
	}
	return out, nil
}

type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func (lr *lineReader) next() (string, bool) {
	if !lr.sc.Scan() {
		return "", false
	}
	lr.line++
	return strings.TrimRight(lr.sc.Text(), "\r"), true
}

func (lr *lineReader) errorf(format string, a ...any) error {
	return &ParseError{Line: lr.line, Msg: fmt.Sprintf(format, a...)}
}

// ParseInstances reads one instance or a bundle. Blank lines between cases are
// skipped and a "###" line containing END stops parsing.
func ParseInstances(r io.Reader) ([]*Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lr := &lineReader{sc: sc}

	var out []*Instance
	for {
		line, ok := lr.next()
		if !ok {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.HasPrefix(line, "###") {
			return nil, lr.errorf("expected case header, got %q", line)
		}
		if strings.Contains(line, "END") {
			break
		}
		in, err := parseCase(lr, line, len(out)+1)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("sd: read: %w", err)
	}
	return out, nil
}

// ReadInstance parses input holding exactly one instance.
func ReadInstance(r io.Reader) (*Instance, error) {
	ins, err := ParseInstances(r)
	if err != nil {
		return nil, err
	}
	switch len(ins) {
	case 0:
		return nil, ErrNoInstance
	case 1:
		return ins[0], nil
	}
	return nil, fmt.Errorf("sd: expected one instance, found %d", len(ins))
}

func parseCase(lr *lineReader, header string, defCase int) (*Instance, error) {
	in := &Instance{Case: defCase}
	if fields := strings.Fields(strings.Trim(header, "# \t")); len(fields) > 0 {
		if c, err := strconv.Atoi(fields[len(fields)-1]); err == nil {
			in.Case = c
		}
	}

	line, ok := lr.next()
	if !ok {
		return nil, lr.errorf("unexpected end of input, want dimensions")
	}
	dims := strings.Fields(line)
	if len(dims) != 2 {
		return nil, lr.errorf("want \"<k> <n>\", got %q", line)
	}
	k, err1 := strconv.Atoi(dims[0])
	n, err2 := strconv.Atoi(dims[1])
	if err1 != nil || err2 != nil || k < 0 || n < 0 {
		return nil, lr.errorf("bad dimensions %q", line)
	}
	in.K, in.N = k, n

	in.Rows = make([][]uint8, 0, k)
	for i := 0; i < k; i++ {
		line, ok := lr.next()
		if !ok {
			return nil, lr.errorf("unexpected end of input in row %d", i)
		}
		row, err := ParseBits(line)
		if err != nil {
			return nil, lr.errorf("row %d: %v", i, err)
		}
		if len(row) != n {
			return nil, lr.errorf("row %d has %d entries, want %d", i, len(row), n)
		}
		in.Rows = append(in.Rows, row)
	}

	line, ok = lr.next()
	if !ok {
		return nil, lr.errorf("unexpected end of input, want syndrome")
	}
	s, err := ParseBits(line)
	if err != nil {
		return nil, lr.errorf("syndrome: %v", err)
	}
	if len(s) != k {
		return nil, lr.errorf("syndrome has %d entries, want %d", len(s), k)
	}
	in.S = s

	line, ok = lr.next()
	if !ok {
		return nil, lr.errorf("unexpected end of input, want weight")
	}
	w, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return nil, lr.errorf("bad weight %q", line)
	}
	in.W = w
	return in, nil
}
