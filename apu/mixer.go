package apu

// Sample is one stereo output sample.
type Sample struct {
	Left  uint8
	Right uint8
}

// Mix combines per-channel samples into one stereo sample, each side on
// its own.
func (cfg *Config) Mix(mode MixerMode, inputs []Sample) (out Sample) {
	if len(inputs) == 0 {
		mid := uint8(cfg.AmplitudeMid)
		out = Sample{Left: mid, Right: mid}
		return
	}

	var left, right int
	switch mode {
	case MIXER_AVERAGE:
		for _, in := range inputs {
			left += int(in.Left)
			right += int(in.Right)
		}
		out.Left = cfg.clamp(left / len(inputs))
		out.Right = cfg.clamp(right / len(inputs))
	default:
		for _, in := range inputs {
			left += int(in.Left) - cfg.AmplitudeMid
			right += int(in.Right) - cfg.AmplitudeMid
		}
		out.Left = cfg.clamp(left + cfg.AmplitudeMid)
		out.Right = cfg.clamp(right + cfg.AmplitudeMid)
	}

	return
}
