package narrate

import "encoding/binary"

// downmixStereo averages interleaved 16-bit stereo samples into mono.
func downmixStereo(stereo []byte) []byte {
	frames := len(stereo) / 4
	mono := make([]byte, frames*2)
	for i := 0; i < frames; i++ {
		l := int16(binary.LittleEndian.Uint16(stereo[i*4:]))
		r := int16(binary.LittleEndian.Uint16(stereo[i*4+2:]))
		m := int16((int32(l) + int32(r)) / 2)
		binary.LittleEndian.PutUint16(mono[i*2:], uint16(m))
	}
	return mono
}

// resample converts 16-bit mono PCM between sample rates with linear
// interpolation. Quality is fine for speech.
func resample(pcm []byte, from, to int) []byte {
	if from == to || from <= 0 || to <= 0 {
		return pcm
	}
	in := len(pcm) / 2
	if in == 0 {
		return nil
	}
	out := int(int64(in) * int64(to) / int64(from))
	res := make([]byte, out*2)
	for i := 0; i < out; i++ {
		pos := float64(i) * float64(from) / float64(to)
		j := int(pos)
		frac := pos - float64(j)
		s0 := int16(binary.LittleEndian.Uint16(pcm[j*2:]))
		s1 := s0
		if j+1 < in {
			s1 = int16(binary.LittleEndian.Uint16(pcm[(j+1)*2:]))
		}
		v := float64(s0)*(1-frac) + float64(s1)*frac
		binary.LittleEndian.PutUint16(res[i*2:], uint16(int16(v)))
	}
	return res
}
