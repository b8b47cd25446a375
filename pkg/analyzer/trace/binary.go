package trace

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Magic identifies a binary trace stream.
const Magic = "NTRC"

// Version is the binary stream version this package reads and writes.
const Version = 1

// BinaryReader pulls typed events out of a binary trace stream. Each
// reader is single-use; reopen the source to restart the sequence.
type BinaryReader struct {
	r *bufio.Reader
}

// NewBinaryReader validates the stream header and positions the reader
// at the first record.
func NewBinaryReader(r io.Reader) (*BinaryReader, error) {
	br := bufio.NewReader(r)

	header := make([]byte, len(Magic)+1)
	if _, err := io.ReadFull(br, header); err != nil {
		return nil, fmt.Errorf("read trace header: %w", err)
	}
	if string(header[:len(Magic)]) != Magic {
		return nil, fmt.Errorf("not a binary trace stream (bad magic %q)", header[:len(Magic)])
	}
	if v := header[len(Magic)]; v != Version {
		return nil, fmt.Errorf("unsupported trace version %d", v)
	}

	return &BinaryReader{r: br}, nil
}

// Next returns the next event, or io.EOF when the stream is exhausted.
// A stream that ends mid-record reports an error rather than EOF.
func (br *BinaryReader) Next() (Event, error) {
	kindByte, err := br.r.ReadByte()
	if err == io.EOF {
		return Event{}, io.EOF
	}
	if err != nil {
		return Event{}, fmt.Errorf("read event kind: %w", err)
	}

	kind := EventKind(kindByte)
	if !kind.valid() {
		return Event{}, fmt.Errorf("unknown event kind %d", kindByte)
	}

	ev := Event{Kind: kind}
	for _, field := range []*string{&ev.Namespace, &ev.Type, &ev.Method, &ev.Signature} {
		s, err := br.readString()
		if err != nil {
			return Event{}, err
		}
		*field = s
	}
	return ev, nil
}

func (br *BinaryReader) readString() (string, error) {
	var length uint16
	if err := binary.Read(br.r, binary.LittleEndian, &length); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return "", fmt.Errorf("read string length: %w", err)
	}
	if length == 0 {
		return "", nil
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(br.r, buf); err != nil {
		return "", fmt.Errorf("read string body: %w", err)
	}
	return string(buf), nil
}

// BinaryWriter emits the binary trace stream. It exists for fixture
// generation and for replaying text captures into the compact form.
type BinaryWriter struct {
	w *bufio.Writer
}

// NewBinaryWriter writes the stream header and returns a writer ready
// for events. Call Flush before closing the underlying sink.
func NewBinaryWriter(w io.Writer) (*BinaryWriter, error) {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Magic); err != nil {
		return nil, err
	}
	if err := bw.WriteByte(Version); err != nil {
		return nil, err
	}
	return &BinaryWriter{w: bw}, nil
}

// WriteEvent appends one record to the stream.
func (bw *BinaryWriter) WriteEvent(ev Event) error {
	if !ev.Kind.valid() {
		return fmt.Errorf("unknown event kind %d", ev.Kind)
	}
	if err := bw.w.WriteByte(byte(ev.Kind)); err != nil {
		return err
	}
	for _, s := range []string{ev.Namespace, ev.Type, ev.Method, ev.Signature} {
		if err := bw.writeString(s); err != nil {
			return err
		}
	}
	return nil
}

func (bw *BinaryWriter) writeString(s string) error {
	if len(s) > 0xFFFF {
		return fmt.Errorf("string too long for trace record: %d bytes", len(s))
	}
	if err := binary.Write(bw.w, binary.LittleEndian, uint16(len(s))); err != nil {
		return err
	}
	_, err := bw.w.WriteString(s)
	return err
}

// Flush drains buffered records to the underlying writer.
func (bw *BinaryWriter) Flush() error {
	return bw.w.Flush()
}
