package effects

import (
	"testing"

	"github.com/riftvm/hcbvm/savegame"
	"github.com/riftvm/hcbvm/vfs"
)

func TestSaveWriteThenLoadRoundTrip(t *testing.T) {
	s := NewState(nil, nil)
	s.SaveManager = savegame.NewManager(vfs.NewDir(t.TempDir()), 0, 0)

	s.SaveCreate(3)
	s.SaveData(111)
	s.SaveData(222)
	if err := s.SaveWrite("Chapter 1", "The Garden"); err != nil {
		t.Fatalf("SaveWrite: %v", err)
	}

	title, ok := s.SaveLoad(3)
	if !ok {
		t.Fatal("SaveLoad should succeed after a prior SaveWrite to the same slot")
	}
	if title != "Chapter 1" {
		t.Errorf("title = %q, want %q", title, "Chapter 1")
	}

	v1, ok := s.SaveData(0)
	if !ok || v1 != 111 {
		t.Errorf("first SaveData readback = (%d,%v), want (111,true)", v1, ok)
	}
	v2, ok := s.SaveData(0)
	if !ok || v2 != 222 {
		t.Errorf("second SaveData readback = (%d,%v), want (222,true)", v2, ok)
	}
	if _, ok := s.SaveData(0); ok {
		t.Error("SaveData past the end of the loaded record should report false")
	}
}

func TestSaveThumbSizeAllocatesThumbnail(t *testing.T) {
	s := NewState(nil, nil)
	s.SaveManager = savegame.NewManager(vfs.NewDir(t.TempDir()), 0, 0)

	s.SaveCreate(1)
	s.SaveThumbSize(4, 2)
	if err := s.SaveWrite("t", "s"); err != nil {
		t.Fatalf("SaveWrite: %v", err)
	}

	item, err := s.SaveManager.Read(1)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(item.Thumbnail) != 4*2*4 {
		t.Errorf("thumbnail len = %d, want %d", len(item.Thumbnail), 4*2*4)
	}
}

func TestSaveDataWithoutActiveStageReturnsFalse(t *testing.T) {
	s := NewState(nil, nil)
	if _, ok := s.SaveData(0); ok {
		t.Fatal("SaveData with no pending save/load should report false")
	}
}

func TestSaveLoadUnknownSlotFails(t *testing.T) {
	s := NewState(nil, nil)
	s.SaveManager = savegame.NewManager(vfs.NewDir(t.TempDir()), 0, 0)
	if _, ok := s.SaveLoad(7); ok {
		t.Fatal("SaveLoad on a never-written slot should fail")
	}
}

func TestSaveWriteWithoutManagerIsANoOp(t *testing.T) {
	s := NewState(nil, nil)
	s.SaveCreate(0)
	if err := s.SaveWrite("t", "s"); err != nil {
		t.Fatalf("SaveWrite with nil SaveManager should not error, got %v", err)
	}
}
