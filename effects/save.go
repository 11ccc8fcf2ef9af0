package effects

import "github.com/riftvm/hcbvm/savegame"

// Save-related Effects Layer state backs the Save/Load syscall group
// (spec.md §6: SaveCreate, SaveThumbSize, SaveWrite, SaveData, Load).
// SaveData is reused for both directions: while a write is staged it
// appends to the pending record, and after a Load it dequeues from the
// loaded record -- the catalog names one symbol for both halves of the
// round trip, so the direction is inferred from which staging buffer is
// active. Thumbnail bytes are a zeroed placeholder sized by SaveThumbSize;
// no image codec is implemented (spec.md §1).

type saveStage struct {
	active bool
	slot   int
	item   savegame.Item
}

type loadStage struct {
	active bool
	item   savegame.Item
	cursor int // next int32 offset into item.Script
}

// SaveCreate begins staging a new save record for slot, discarding any
// record previously staged for write.
func (s *State) SaveCreate(slot int) {
	s.pendingSave = saveStage{active: true, slot: slot}
}

// SaveThumbSize records the thumbnail pixel dimensions future SaveWrite
// calls capture.
func (s *State) SaveThumbSize(w, h int32) {
	s.saveThumbW, s.saveThumbH = w, h
}

// SaveData appends value to the record staged by SaveCreate if one is
// active; otherwise, if a record is staged by SaveLoad, it dequeues and
// returns the next stored value. Returns (0, false) when neither stage is
// active or the load cursor has been exhausted.
func (s *State) SaveData(value int32) (int32, bool) {
	if s.pendingSave.active {
		s.pendingSave.item.Script = append(s.pendingSave.item.Script,
			byte(value), byte(value>>8), byte(value>>16), byte(value>>24))
		return 0, false
	}
	if s.loadedSave.active {
		off := s.loadedSave.cursor * 4
		if off+4 > len(s.loadedSave.item.Script) {
			return 0, false
		}
		b := s.loadedSave.item.Script[off : off+4]
		s.loadedSave.cursor++
		v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16 | int32(b[3])<<24
		return v, true
	}
	return 0, false
}

// SaveWrite finalizes the staged record (set up by SaveCreate/SaveData)
// under title/sceneTitle and commits it through SaveManager. It is a no-op
// if no SaveManager is attached or no record is staged.
func (s *State) SaveWrite(title, sceneTitle string) error {
	if s.SaveManager == nil || !s.pendingSave.active {
		return nil
	}
	item := s.pendingSave.item
	item.Title = title
	item.SceneTitle = sceneTitle
	if s.saveThumbW > 0 && s.saveThumbH > 0 {
		item.Thumbnail = make([]byte, int(s.saveThumbW)*int(s.saveThumbH)*4)
	}
	slot := s.pendingSave.slot
	s.pendingSave = saveStage{}
	return s.SaveManager.Write(slot, item)
}

// SaveLoad reads slot through SaveManager and stages it for subsequent
// SaveData reads, returning the record's title. Returns ("", false) on any
// read error or a missing SaveManager.
func (s *State) SaveLoad(slot int) (string, bool) {
	if s.SaveManager == nil {
		return "", false
	}
	item, err := s.SaveManager.Read(slot)
	if err != nil {
		return "", false
	}
	s.loadedSave = loadStage{active: true, item: item}
	return item.Title, true
}
