package effects

import (
	"time"

	"github.com/riftvm/hcbvm/savegame"
)

// FlagBits is the 2048-bit packed flag field: id = pos/8, bit = pos&7.
const FlagBits = 2048

// PrimID identifies a drawable primitive; 0 is the reserved root, valid ids
// span 1..4095.
type PrimID uint16

// Prim holds one primitive's Effects-Layer-visible properties. Only the
// state syscalls are contractually required to maintain; the GPU-side
// meaning of these fields (texture atlases, blend modes) is out of scope.
type Prim struct {
	Alpha      uint8 // 0..255
	Blend      int32
	Draw       bool
	OP         int32
	RS, RS2    int32
	Snow       bool
	Sprt       int32
	TextSlot   int32
	Tile       int32
	U, V       int32
	X, Y       int32
	W, H       int32
	Z          int32
	ScalePerMille int32 // 100..10000, default 1000
	RotationTenths int32 // tenths of a degree, modulo 3600
	ToneR, ToneG, ToneB int32 // 0..200, 100 = identity
	AnimFrame  int32 // cel/frame index driven by MotionAnim
}

// NewPrim returns a Prim with spec-mandated defaults.
func NewPrim() *Prim {
	return &Prim{Alpha: 255, ScalePerMille: 1000, ToneR: 100, ToneG: 100, ToneB: 100}
}

// HistoryField selects which field of a history record HistorySet/Get
// addresses.
type HistoryField int

const (
	HistoryName HistoryField = iota
	HistoryContent
	HistoryVoice
)

// HistoryRecord is one line of dialogue/voice history.
type HistoryRecord struct {
	Name, Content, Voice string
}

// Channel is one BGM (0..3) or SE (0..255) playback slot.
type Channel struct {
	Loaded  bool
	Path    string
	Playing bool
	Volume  int // 0..100
	Type    int32
}

// Timer is one of the 16 script-addressable timers.
type Timer struct {
	ResolutionMs uint32
	ElapsedMs    uint64
	Suspended    bool
}

// Parts is one parts-display slot (id 0..63), with up to 256 selectable
// entries.
type Parts struct {
	SelectedEntry int32
	EntryRGB      [3]uint8
}

// DissolveType mirrors the original engine's global fade state machine.
type DissolveType int32

const (
	DissolveNone DissolveType = iota
	DissolveStatic
	DissolveMask
	DissolveColor
)

// State is the Effects Layer: all engine-visible state the syscalls read
// and mutate, plus the optional real backends. It is intentionally thin —
// GPU rendering and audio mixing internals are out of scope; this only
// tracks what the syscall contracts in spec.md §6 require.
type State struct {
	Video VideoBackend
	Audio AudioBackend

	Flags [FlagBits / 8]byte

	History []HistoryRecord

	Prims map[PrimID]*Prim

	// Motions holds the independently-tracked per-property motions on each
	// prim (one slot per MotionProperty), so a position move and an
	// alpha-fade on the same prim run and stop/query independently.
	Motions map[PrimID]map[MotionProperty]*Motion

	// v3dMotion is the single global camera-style motion driven by
	// V3DMotion/V3DMotionPause/Stop/Test -- unlike the per-prim motions
	// above, the original has exactly one of these at a time, with no
	// prim id of its own.
	v3dMotion *Motion
	CameraX, CameraY, CameraZ int32

	Palette [256][4]uint8 // r,g,b,a

	BGM [4]Channel
	SE  [256]Channel

	Timers [16]Timer

	Parts [64]Parts

	TextBuffers map[int32]string

	DissolveType            DissolveType
	Dissolve2Transitioning  bool
	dissolveDurationMs      uint64
	dissolveElapsedMs       uint64

	Snowing bool

	WindowFullscreen bool

	InputKeyMask   uint32
	InputCursorX   int32
	InputCursorY   int32
	InputWheel     int32
	InputRepeat    bool
	InputEvents    []InputEvent

	StartedAt time.Time

	SaveManager *savegame.Manager
	pendingSave saveStage
	loadedSave  loadStage
	saveThumbW  int32
	saveThumbH  int32
}

// InputEvent is one queued {keycode, x, y} event.
type InputEvent struct {
	Keycode uint32
	X, Y    int32
}

// NewState constructs an Effects Layer bound to the given backends. Either
// may be nil, in which case a headless backend is installed.
func NewState(video VideoBackend, audio AudioBackend) *State {
	if video == nil {
		video = NewHeadlessVideoBackend()
	}
	if audio == nil {
		audio = NewHeadlessAudioBackend()
	}
	s := &State{
		Video:       video,
		Audio:       audio,
		Prims:       make(map[PrimID]*Prim),
		Motions:     make(map[PrimID]map[MotionProperty]*Motion),
		TextBuffers: make(map[int32]string),
		StartedAt:   time.Now(),
	}
	for i := range s.Palette {
		s.Palette[i] = [4]uint8{0, 0, 0, 255}
	}
	return s
}

// Prim returns the prim for id, creating it with defaults on first access.
func (s *State) Prim(id PrimID) *Prim {
	p, ok := s.Prims[id]
	if !ok {
		p = NewPrim()
		s.Prims[id] = p
	}
	return p
}

// FlagGet/FlagSet implement the 2048-bit packed flag field: id=pos/8,
// bit=pos&7. Out-of-range positions are silently ignored/return false.
func (s *State) FlagGet(pos int) bool {
	if pos < 0 || pos >= FlagBits {
		return false
	}
	id, bit := pos/8, uint(pos&7)
	return s.Flags[id]&(1<<bit) != 0
}

func (s *State) FlagSet(pos int, on bool) {
	if pos < 0 || pos >= FlagBits {
		return
	}
	id, bit := pos/8, uint(pos&7)
	if on {
		s.Flags[id] |= 1 << bit
	} else {
		s.Flags[id] &^= 1 << bit
	}
}

// AdvanceTimers steps every non-suspended script timer by frameMs.
func (s *State) AdvanceTimers(frameMs uint64) {
	for i := range s.Timers {
		if !s.Timers[i].Suspended {
			s.Timers[i].ElapsedMs += frameMs
		}
	}
}

// PushHistory appends a new blank history record (fnid==nil write).
func (s *State) PushHistory() {
	s.History = append(s.History, HistoryRecord{})
}

// HistorySet writes field of the most recent history record, pushing one
// first if none exists yet.
func (s *State) HistorySet(field HistoryField, value string) {
	if len(s.History) == 0 {
		s.PushHistory()
	}
	rec := &s.History[len(s.History)-1]
	switch field {
	case HistoryName:
		rec.Name = value
	case HistoryContent:
		rec.Content = value
	case HistoryVoice:
		rec.Voice = value
	}
}

func (s *State) HistoryGet(field HistoryField) string {
	if len(s.History) == 0 {
		return ""
	}
	rec := s.History[len(s.History)-1]
	switch field {
	case HistoryName:
		return rec.Name
	case HistoryContent:
		return rec.Content
	case HistoryVoice:
		return rec.Voice
	default:
		return ""
	}
}
