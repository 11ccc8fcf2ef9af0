package effects

// HeadlessVideoBackend records the last Resize/DrawRect/Present calls
// without producing any pixels. It is the default VideoBackend and is
// sufficient to satisfy every video-adjacent syscall's contract.
type HeadlessVideoBackend struct {
	Width, Height int
	LastRects     []Rect
	PresentCount  int
}

func NewHeadlessVideoBackend() *HeadlessVideoBackend { return &HeadlessVideoBackend{} }

func (h *HeadlessVideoBackend) Resize(width, height int) { h.Width, h.Height = width, height }

func (h *HeadlessVideoBackend) DrawRect(r Rect) { h.LastRects = append(h.LastRects, r) }

func (h *HeadlessVideoBackend) Present() {
	h.PresentCount++
	h.LastRects = h.LastRects[:0]
}

func (h *HeadlessVideoBackend) Close() error { return nil }

// HeadlessAudioBackend records channel tone state without producing audio.
type HeadlessAudioBackend struct {
	Channels map[int]struct {
		FreqHz, Volume float64
	}
}

func NewHeadlessAudioBackend() *HeadlessAudioBackend {
	return &HeadlessAudioBackend{Channels: make(map[int]struct{ FreqHz, Volume float64 })}
}

func (h *HeadlessAudioBackend) PlayTone(channel int, freqHz float64, volume float64) {
	if freqHz == 0 {
		delete(h.Channels, channel)
		return
	}
	h.Channels[channel] = struct{ FreqHz, Volume float64 }{freqHz, volume}
}

func (h *HeadlessAudioBackend) StopChannel(channel int) { delete(h.Channels, channel) }

func (h *HeadlessAudioBackend) Close() error { return nil }
