package syscalls

import (
	"github.com/riftvm/hcbvm/effects"
	"github.com/riftvm/hcbvm/variant"
	"github.com/riftvm/hcbvm/vm"
)

// registerGraph wires the Graph/Prim group (spec.md §6): per-prim property
// setters, GraphLoad/GraphRGB/GaijiLoad. Prim ids are 0..4095 (0 is the
// root prim and is accepted like any other id); ids outside that range are
// silently ignored like any other invalid-argument case.
func registerGraph(r *vm.Registry) {
	prim := func(w *vm.World, args []variant.Variant, i int) (*effects.Prim, bool) {
		id := intArg(args, i)
		if id < 0 || id > 4095 {
			return nil, false
		}
		return w.Effects.Prim(effects.PrimID(id)), true
	}

	r.Register("PrimSetAlpha", func(w *vm.World, args []variant.Variant) variant.Variant {
		p, ok := prim(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		p.Alpha = uint8(clamp32(intArg(args, 1), 0, 255))
		return variant.Nil()
	})

	r.Register("PrimSetBlend", func(w *vm.World, args []variant.Variant) variant.Variant {
		p, ok := prim(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		p.Blend = intArg(args, 1)
		return variant.Nil()
	})

	r.Register("PrimSetDraw", func(w *vm.World, args []variant.Variant) variant.Variant {
		p, ok := prim(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		p.Draw = boolArg(args, 1)
		return variant.Nil()
	})

	r.Register("PrimSetOP", func(w *vm.World, args []variant.Variant) variant.Variant {
		p, ok := prim(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		p.OP = intArg(args, 1)
		return variant.Nil()
	})

	r.Register("PrimSetRS", func(w *vm.World, args []variant.Variant) variant.Variant {
		p, ok := prim(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		p.RS = intArg(args, 1)
		return variant.Nil()
	})

	r.Register("PrimSetRS2", func(w *vm.World, args []variant.Variant) variant.Variant {
		p, ok := prim(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		p.RS2 = intArg(args, 1)
		return variant.Nil()
	})

	r.Register("PrimSetSnow", func(w *vm.World, args []variant.Variant) variant.Variant {
		p, ok := prim(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		p.Snow = boolArg(args, 1)
		return variant.Nil()
	})

	r.Register("PrimSetSprt", func(w *vm.World, args []variant.Variant) variant.Variant {
		p, ok := prim(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		p.Sprt = intArg(args, 1)
		return variant.Nil()
	})

	r.Register("PrimSetText", func(w *vm.World, args []variant.Variant) variant.Variant {
		p, ok := prim(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		p.TextSlot = intArg(args, 1)
		return variant.Nil()
	})

	r.Register("PrimSetTile", func(w *vm.World, args []variant.Variant) variant.Variant {
		p, ok := prim(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		p.Tile = intArg(args, 1)
		return variant.Nil()
	})

	r.Register("PrimSetUV", func(w *vm.World, args []variant.Variant) variant.Variant {
		p, ok := prim(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		p.U, p.V = intArg(args, 1), intArg(args, 2)
		return variant.Nil()
	})

	r.Register("PrimSetXY", func(w *vm.World, args []variant.Variant) variant.Variant {
		p, ok := prim(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		p.X, p.Y = intArg(args, 1), intArg(args, 2)
		return variant.Nil()
	})

	r.Register("PrimSetWH", func(w *vm.World, args []variant.Variant) variant.Variant {
		p, ok := prim(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		p.W, p.H = intArg(args, 1), intArg(args, 2)
		return variant.Nil()
	})

	r.Register("PrimSetZ", func(w *vm.World, args []variant.Variant) variant.Variant {
		p, ok := prim(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		p.Z = intArg(args, 1)
		return variant.Nil()
	})

	r.Register("PrimSetScale", func(w *vm.World, args []variant.Variant) variant.Variant {
		p, ok := prim(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		p.ScalePerMille = clamp32(intArg(args, 1), 100, 10000)
		return variant.Nil()
	})

	r.Register("PrimSetRotation", func(w *vm.World, args []variant.Variant) variant.Variant {
		p, ok := prim(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		deg := intArg(args, 1) % 3600
		if deg < 0 {
			deg += 3600
		}
		p.RotationTenths = deg
		return variant.Nil()
	})

	r.Register("PrimSetTone", func(w *vm.World, args []variant.Variant) variant.Variant {
		p, ok := prim(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		p.ToneR = clamp32(intArg(args, 1), 0, 200)
		p.ToneG = clamp32(intArg(args, 2), 0, 200)
		p.ToneB = clamp32(intArg(args, 3), 0, 200)
		return variant.Nil()
	})

	r.Register("PrimGroupIn", func(w *vm.World, args []variant.Variant) variant.Variant {
		p, ok := prim(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		p.Draw = true
		return variant.Nil()
	})

	r.Register("PrimGroupOut", func(w *vm.World, args []variant.Variant) variant.Variant {
		p, ok := prim(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		p.Draw = false
		return variant.Nil()
	})

	r.Register("PrimGroupMove", func(w *vm.World, args []variant.Variant) variant.Variant {
		p, ok := prim(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		p.X, p.Y = intArg(args, 1), intArg(args, 2)
		return variant.Nil()
	})

	r.Register("PrimExitGroup", func(w *vm.World, args []variant.Variant) variant.Variant {
		p, ok := prim(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		p.Draw = false
		return variant.Nil()
	})

	r.Register("PrimHit", func(w *vm.World, args []variant.Variant) variant.Variant {
		p, ok := prim(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		x, y := intArg(args, 1), intArg(args, 2)
		hit := p.Draw && x >= p.X && x < p.X+p.W && y >= p.Y && y < p.Y+p.H
		return variant.Bool(hit)
	})

	r.Register("GraphLoad", func(w *vm.World, args []variant.Variant) variant.Variant {
		p, ok := prim(w, args, 0)
		if !ok {
			return variant.Nil()
		}
		p.Sprt = intArg(args, 1) // path resolution lives in vfs; this records the requested slot
		return variant.Nil()
	})

	r.Register("GraphRGB", func(w *vm.World, args []variant.Variant) variant.Variant {
		id := clamp32(intArg(args, 0), 0, 255)
		w.Effects.Palette[id] = [4]uint8{
			uint8(clamp32(intArg(args, 1), 0, 255)),
			uint8(clamp32(intArg(args, 2), 0, 255)),
			uint8(clamp32(intArg(args, 3), 0, 255)),
			uint8(clamp32(intArg(args, 4), 0, 255)),
		}
		return variant.Nil()
	})

	r.Register("GaijiLoad", func(w *vm.World, args []variant.Variant) variant.Variant {
		// Custom-glyph loading is purely a VFS/font-atlas concern (out of
		// scope per spec.md §1); acknowledge the call without effect.
		return variant.Nil()
	})
}
