// Package replay records and re-runs cube snake sessions.
//
// A trace is a zstd-compressed JSON lines file. The first line is a Header;
// every following line is one cubesnake.Command. Because a session is fully
// determined by its seed and its commands, re-applying the commands to a
// fresh session reproduces the recorded game exactly.
package replay

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/cubesnake/internal/games/cubesnake"
)

// Version is the trace format written by this package.
const Version = 1

// ErrBadTrace is wrapped by every decoding failure.
var ErrBadTrace = errors.New("replay: malformed trace")

// Header identifies the session a trace belongs to.
type Header struct {
	Version int                     `json:"version"`
	Seed    int64                   `json:"seed"`
	Variant string                  `json:"variant"`
	Config  cubesnake.SessionConfig `json:"config"`
}

// Recorder writes a trace. Record matches the session command hook, so a
// recorder can be installed with Session.SetCommandHook(rec.Record).
type Recorder struct {
	mu    sync.Mutex
	file  io.Closer // nil when writing to a caller-owned writer
	enc   *zstd.Encoder
	w     *bufio.Writer
	count int
	err   error
}

// NewRecorder starts a trace on w and writes the header.
func NewRecorder(w io.Writer, h Header) (*Recorder, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("replay: cannot create encoder: %w", err)
	}
	r := &Recorder{
		enc: enc,
		w:   bufio.NewWriterSize(enc, 64*1024),
	}
	if h.Version == 0 {
		h.Version = Version
	}
	if err := r.writeLine(h); err != nil {
		enc.Close()
		return nil, err
	}
	return r, nil
}

// Create starts a trace file at path, creating parent directories.
func Create(path string, h Header) (*Recorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("replay: cannot create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot create trace: %w", err)
	}
	r, err := NewRecorder(f, h)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.file = f
	return r, nil
}

func (r *Recorder) writeLine(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("replay: cannot encode line: %w", err)
	}
	if _, err := r.w.Write(b); err != nil {
		return fmt.Errorf("replay: write failed: %w", err)
	}
	if err := r.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("replay: write failed: %w", err)
	}
	return nil
}

// Record appends a command. After the first failure further commands are
// dropped and the failure is reported by Err and Close.
func (r *Recorder) Record(c cubesnake.Command) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil || r.enc == nil {
		return
	}
	if err := r.writeLine(c); err != nil {
		r.err = err
		return
	}
	r.count++
}

// Count returns the number of commands written.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Err returns the first write failure, if any.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Close flushes the trace and closes the file opened by Create.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.enc == nil {
		return r.err
	}
	err := r.err
	if ferr := r.w.Flush(); err == nil && ferr != nil {
		err = fmt.Errorf("replay: flush failed: %w", ferr)
	}
	if cerr := r.enc.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("replay: cannot finish stream: %w", cerr)
	}
	r.enc = nil
	if r.file != nil {
		if cerr := r.file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("replay: cannot close trace: %w", cerr)
		}
		r.file = nil
	}
	return err
}

// Trace is a decoded trace.
type Trace struct {
	Header   Header
	Commands []cubesnake.Command
}

// ReadTrace decodes a whole trace from r.
func ReadTrace(r io.Reader) (*Trace, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot create decoder: %w", err)
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadTrace, err)
		}
		return nil, fmt.Errorf("%w: missing header", ErrBadTrace)
	}
	t := &Trace{}
	if err := json.Unmarshal(sc.Bytes(), &t.Header); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrBadTrace, err)
	}
	if t.Header.Version != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadTrace, t.Header.Version)
	}

	line := 1
	for sc.Scan() {
		line++
		var c cubesnake.Command
		if err := json.Unmarshal(sc.Bytes(), &c); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadTrace, line, err)
		}
		t.Commands = append(t.Commands, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadTrace, err)
	}
	return t, nil
}

// Open reads the trace file at path.
func Open(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot open trace: %w", err)
	}
	defer f.Close()
	return ReadTrace(f)
}

// Replay re-runs t against a fresh session started at clock 0 and returns
// its final snapshot.
// The observer, when not nil, sees the events of the re-run.
func Replay(t *Trace, observer cubesnake.Observer) (cubesnake.Snapshot, error) {
	s, err := cubesnake.NewSession(t.Header.Config, t.Header.Seed, 0)
	if err != nil {
		return cubesnake.Snapshot{}, fmt.Errorf("replay: cannot start session: %w", err)
	}
	s.SetObserver(observer)

	for i, c := range t.Commands {
		if err := s.Apply(c); err != nil {
			return cubesnake.Snapshot{}, fmt.Errorf("replay: command %d: %w", i, err)
		}
	}
	return s.Snapshot(), nil
}
