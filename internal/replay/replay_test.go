package replay

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/cubesnake/internal/games/cubesnake"
)

// play drives a session with a fixed input script while rec records it.
func play(t *testing.T, seed int64, rec *Recorder) cubesnake.Snapshot {
	t.Helper()
	s, err := cubesnake.NewSession(cubesnake.DefaultSessionConfig(), seed, 0)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	s.SetCommandHook(rec.Record)

	dirs := []cubesnake.Direction{cubesnake.DirLeft, cubesnake.DirUp, cubesnake.DirRight, cubesnake.DirDown}
	for now := int64(0); now <= 15000; now += 16 {
		s.Tick(now)
		if now%1200 == 0 {
			s.RequestRotate(dirs[int(now/1200)%len(dirs)])
		}
		if s.Board().GameOver() {
			if err := s.Restart(now); err != nil {
				t.Fatal(err)
			}
		}
	}
	return s.Snapshot()
}

func TestRecordAndReplay(t *testing.T) {
	var buf bytes.Buffer
	header := Header{Seed: 99, Variant: cubesnake.IDClassic, Config: cubesnake.DefaultSessionConfig()}
	rec, err := NewRecorder(&buf, header)
	if err != nil {
		t.Fatalf("NewRecorder() failed: %v", err)
	}

	want := play(t, 99, rec)
	if err := rec.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if rec.Count() == 0 {
		t.Fatal("nothing recorded")
	}

	trace, err := ReadTrace(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadTrace() failed: %v", err)
	}
	if trace.Header.Version != Version || trace.Header.Seed != 99 || trace.Header.Variant != cubesnake.IDClassic {
		t.Errorf("header = %+v", trace.Header)
	}
	if !reflect.DeepEqual(trace.Header.Config, header.Config) {
		t.Errorf("config did not survive: %+v", trace.Header.Config)
	}
	if len(trace.Commands) != rec.Count() {
		t.Errorf("decoded %d commands, recorded %d", len(trace.Commands), rec.Count())
	}

	var events int
	got, err := Replay(trace, func(cubesnake.Event) { events++ })
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("replay diverged:\n got %+v\nwant %+v", got, want)
	}
	if events == 0 {
		t.Error("observer saw no events during replay")
	}
}

func TestCreateAndOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces", "run.jsonl.zst")
	rec, err := Create(path, Header{Seed: 5, Variant: cubesnake.IDAnywhere, Config: cubesnake.DefaultSessionConfig()})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	rec.Record(cubesnake.Command{At: 10, Op: cubesnake.OpRotate, Dir: cubesnake.DirRight})
	rec.Record(cubesnake.Command{At: 16, Op: cubesnake.OpTick})
	if err := rec.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	// Closing twice is harmless and records after close are dropped
	if err := rec.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
	rec.Record(cubesnake.Command{At: 32, Op: cubesnake.OpTick})

	trace, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	want := []cubesnake.Command{
		{At: 10, Op: cubesnake.OpRotate, Dir: cubesnake.DirRight},
		{At: 16, Op: cubesnake.OpTick},
	}
	if !reflect.DeepEqual(trace.Commands, want) {
		t.Errorf("commands = %+v, expected %+v", trace.Commands, want)
	}
}

func TestTraceStoresDirectionNames(t *testing.T) {
	var buf bytes.Buffer
	rec, err := NewRecorder(&buf, Header{Seed: 2, Config: cubesnake.DefaultSessionConfig()})
	if err != nil {
		t.Fatal(err)
	}
	rec.Record(cubesnake.Command{At: 40, Op: cubesnake.OpRotate, Dir: cubesnake.DirUp})
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}

	dec, err := zstd.NewReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	defer dec.Close()
	raw, err := io.ReadAll(dec)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `{"t":40,"op":"rotate","dir":"up"}`) {
		t.Errorf("trace should name the direction:\n%s", raw)
	}
}

func TestReadTraceRejectsBadInput(t *testing.T) {
	if _, err := ReadTrace(bytes.NewReader([]byte("not zstd at all"))); !errors.Is(err, ErrBadTrace) {
		t.Errorf("garbage input: %v", err)
	}

	var empty bytes.Buffer
	rec, err := NewRecorder(&empty, Header{Version: 7})
	if err != nil {
		t.Fatal(err)
	}
	rec.Close()
	if _, err := ReadTrace(&empty); !errors.Is(err, ErrBadTrace) {
		t.Errorf("unknown version: %v", err)
	}
}

func TestReplayRejectsUnknownOp(t *testing.T) {
	trace := &Trace{
		Header:   Header{Version: Version, Seed: 1, Config: cubesnake.DefaultSessionConfig()},
		Commands: []cubesnake.Command{{At: 1, Op: "teleport"}},
	}
	if _, err := Replay(trace, nil); err == nil {
		t.Error("unknown op should fail the replay")
	}

	trace.Header.Config.Board.Size = 4
	if _, err := Replay(trace, nil); !errors.Is(err, cubesnake.ErrInvalidConfig) {
		t.Errorf("invalid config: %v", err)
	}
}
