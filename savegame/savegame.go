// Package savegame implements the Save/Load group's persisted record
// format, grounded on the original engine's `SaveItem`/`SaveManager`
// (src/subsystem/resources/save_manager.rs). Thumbnail bytes are stored
// opaquely -- no image codec is implemented, since encoding save
// thumbnails is out of scope per spec.md §1.
package savegame

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/riftvm/hcbvm/vfs"
)

const magic = "HCBSAVE1"

// Item is one save slot's persisted record.
type Item struct {
	Timestamp  time.Time
	Title      string
	SceneTitle string
	Script     []byte
	Thumbnail  []byte // opaque; no codec assumed
}

// Manager reads/writes Items through an FS, keyed by slot number.
type Manager struct {
	fs        vfs.FS
	thumbW    int32
	thumbH    int32
}

// NewManager constructs a Manager backed by fs. thumbW/thumbH record the
// thumbnail dimensions SaveThumbSize declared; they are not validated
// against the thumbnail bytes actually written (no image codec here).
func NewManager(fs vfs.FS, thumbW, thumbH int32) *Manager {
	return &Manager{fs: fs, thumbW: thumbW, thumbH: thumbH}
}

func slotName(slot int) string { return fmt.Sprintf("save/slot%03d.sav", slot) }

// Write persists item to slot.
func (m *Manager) Write(slot int, item Item) error {
	w, err := m.fs.Create(slotName(slot))
	if err != nil {
		return err
	}
	defer w.Close()

	if err := writeString(w, magic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, item.Timestamp.Unix()); err != nil {
		return err
	}
	if err := writeLenPrefixed(w, item.Title); err != nil {
		return err
	}
	if err := writeLenPrefixed(w, item.SceneTitle); err != nil {
		return err
	}
	if err := writeBytes(w, item.Script); err != nil {
		return err
	}
	if err := writeBytes(w, item.Thumbnail); err != nil {
		return err
	}
	return nil
}

// Read loads the Item persisted at slot.
func (m *Manager) Read(slot int) (Item, error) {
	var item Item
	f, err := m.fs.Open(slotName(slot))
	if err != nil {
		return item, err
	}
	defer f.Close()

	got, err := readFixed(f, len(magic))
	if err != nil {
		return item, err
	}
	if string(got) != magic {
		return item, fmt.Errorf("savegame: bad magic %q", got)
	}
	var unixSec int64
	if err := binary.Read(f, binary.LittleEndian, &unixSec); err != nil {
		return item, err
	}
	item.Timestamp = time.Unix(unixSec, 0)

	if item.Title, err = readLenPrefixed(f); err != nil {
		return item, err
	}
	if item.SceneTitle, err = readLenPrefixed(f); err != nil {
		return item, err
	}
	if item.Script, err = readBytesBlock(f); err != nil {
		return item, err
	}
	if item.Thumbnail, err = readBytesBlock(f); err != nil {
		return item, err
	}
	return item, nil
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func writeLenPrefixed(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	return writeString(w, s)
}

func writeBytes(w io.Writer, b []byte) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

func readFixed(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func readLenPrefixed(r io.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf, err := readFixed(r, int(n))
	return string(buf), err
}

func readBytesBlock(r io.Reader) ([]byte, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	return readFixed(r, int(n))
}
