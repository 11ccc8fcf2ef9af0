package savegame

import (
	"bytes"
	"io"
	"os"
	"testing"
	"time"

	"github.com/riftvm/hcbvm/vfs"
)

type memFS struct {
	files map[string][]byte
}

func newMemFS() *memFS { return &memFS{files: make(map[string][]byte)} }

type memWriteCloser struct {
	fs   *memFS
	name string
	buf  bytes.Buffer
}

func (w *memWriteCloser) Write(p []byte) (int, error) { return w.buf.Write(p) }
func (w *memWriteCloser) Close() error {
	w.fs.files[w.name] = w.buf.Bytes()
	return nil
}

type memReadSeekCloser struct{ *bytes.Reader }

func (memReadSeekCloser) Close() error { return nil }

func (fs *memFS) Create(name string) (io.WriteCloser, error) {
	return &memWriteCloser{fs: fs, name: name}, nil
}

func (fs *memFS) Open(name string) (vfs.ReadSeekCloser, error) {
	b, ok := fs.files[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return memReadSeekCloser{bytes.NewReader(b)}, nil
}

func TestWriteReadRoundTrip(t *testing.T) {
	fs := newMemFS()
	mgr := NewManager(fs, 160, 90)

	want := Item{
		Timestamp:  time.Unix(1700000000, 0),
		Title:      "Chapter 3",
		SceneTitle: "The Library",
		Script:     []byte{1, 2, 3, 4},
		Thumbnail:  []byte{0xFF, 0x00, 0xAA},
	}
	if err := mgr.Write(2, want); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := mgr.Read(2)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Title != want.Title || got.SceneTitle != want.SceneTitle {
		t.Errorf("titles = %q/%q, want %q/%q", got.Title, got.SceneTitle, want.Title, want.SceneTitle)
	}
	if !bytes.Equal(got.Script, want.Script) {
		t.Errorf("script = %v, want %v", got.Script, want.Script)
	}
	if !bytes.Equal(got.Thumbnail, want.Thumbnail) {
		t.Errorf("thumbnail = %v, want %v", got.Thumbnail, want.Thumbnail)
	}
	if !got.Timestamp.Equal(want.Timestamp) {
		t.Errorf("timestamp = %v, want %v", got.Timestamp, want.Timestamp)
	}
}

func TestReadMissingSlot(t *testing.T) {
	fs := newMemFS()
	mgr := NewManager(fs, 160, 90)
	if _, err := mgr.Read(9); err == nil {
		t.Fatalf("expected an error reading an unwritten slot")
	}
}
