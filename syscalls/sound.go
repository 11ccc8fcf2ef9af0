package syscalls

import (
	"github.com/riftvm/hcbvm/variant"
	"github.com/riftvm/hcbvm/vm"
)

// registerSound wires the Sound/Audio group (spec.md §6): BGM channels 0..3,
// SE channels 0..255, volume 0..100 mapped to 0.0..1.0, fades clamped to
// 0..300000ms. Actual mixing lives behind effects.AudioBackend; these
// handlers just track channel state and forward to it.
func registerSound(r *vm.Registry) {
	r.Register("SoundLoad", func(w *vm.World, args []variant.Variant) variant.Variant {
		ch := clamp32(intArg(args, 0), 0, 255)
		w.Effects.SE[ch].Loaded = true
		w.Effects.SE[ch].Path = strArg(args, 1)
		return variant.Nil()
	})

	r.Register("SoundPlay", func(w *vm.World, args []variant.Variant) variant.Variant {
		ch := clamp32(intArg(args, 0), 0, 255)
		w.Effects.SE[ch].Playing = true
		vol := clamp32(intArg(args, 1), 0, 100)
		w.Effects.SE[ch].Volume = int(vol)
		w.Effects.Audio.PlayTone(int(ch)+4, 440, float64(vol)/100)
		return variant.Nil()
	})

	r.Register("SoundStop", func(w *vm.World, args []variant.Variant) variant.Variant {
		ch := clamp32(intArg(args, 0), 0, 255)
		w.Effects.SE[ch].Playing = false
		w.Effects.Audio.StopChannel(int(ch) + 4)
		return variant.Nil()
	})

	r.Register("SoundType", func(w *vm.World, args []variant.Variant) variant.Variant {
		ch := clamp32(intArg(args, 0), 0, 255)
		w.Effects.SE[ch].Type = intArg(args, 1)
		return variant.Nil()
	})

	r.Register("SoundVol", func(w *vm.World, args []variant.Variant) variant.Variant {
		ch := clamp32(intArg(args, 0), 0, 255)
		vol := clamp32(intArg(args, 1), 0, 100)
		w.Effects.SE[ch].Volume = int(vol)
		w.Effects.Audio.PlayTone(int(ch)+4, 440, float64(vol)/100)
		return variant.Nil()
	})

	r.Register("SoundFadeIn", func(w *vm.World, args []variant.Variant) variant.Variant {
		_ = clamp32(intArg(args, 1), 0, 300000) // fade duration acknowledged; instantaneous in this thin backend
		ch := clamp32(intArg(args, 0), 0, 255)
		w.Effects.SE[ch].Playing = true
		return variant.Nil()
	})

	r.Register("SoundFadeOut", func(w *vm.World, args []variant.Variant) variant.Variant {
		_ = clamp32(intArg(args, 1), 0, 300000)
		ch := clamp32(intArg(args, 0), 0, 255)
		w.Effects.SE[ch].Playing = false
		w.Effects.Audio.StopChannel(int(ch) + 4)
		return variant.Nil()
	})

	r.Register("SoundSilentOn", func(w *vm.World, args []variant.Variant) variant.Variant {
		for i := range w.Effects.SE {
			w.Effects.SE[i].Playing = false
			w.Effects.Audio.StopChannel(i + 4)
		}
		return variant.Nil()
	})

	r.Register("AudioLoad", func(w *vm.World, args []variant.Variant) variant.Variant {
		ch := clamp32(intArg(args, 0), 0, 3)
		w.Effects.BGM[ch].Loaded = true
		w.Effects.BGM[ch].Path = strArg(args, 1)
		return variant.Nil()
	})

	r.Register("AudioPlay", func(w *vm.World, args []variant.Variant) variant.Variant {
		ch := clamp32(intArg(args, 0), 0, 3)
		w.Effects.BGM[ch].Playing = true
		vol := clamp32(intArg(args, 1), 0, 100)
		w.Effects.BGM[ch].Volume = int(vol)
		w.Effects.Audio.PlayTone(int(ch), 220, float64(vol)/100)
		return variant.Nil()
	})

	r.Register("AudioStop", func(w *vm.World, args []variant.Variant) variant.Variant {
		ch := clamp32(intArg(args, 0), 0, 3)
		w.Effects.BGM[ch].Playing = false
		w.Effects.Audio.StopChannel(int(ch))
		return variant.Nil()
	})

	r.Register("AudioState", func(w *vm.World, args []variant.Variant) variant.Variant {
		ch := clamp32(intArg(args, 0), 0, 3)
		return variant.Bool(w.Effects.BGM[ch].Playing)
	})
}
