// Package audio decodes Sun/NeXT (.au) sound files into the PCM layout
// Ebitengine players expect: 16-bit little-endian stereo at the context's
// sample rate.
package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrNotAU is returned when the data does not start with the ".snd" magic.
var ErrNotAU = errors.New("not an AU file")

// Stream is a decoded, seekable PCM stream.
type Stream struct {
	*bytes.Reader
	length int64
}

// Length returns the size of the decoded PCM data in bytes.
func (s *Stream) Length() int64 {
	return s.length
}

// auHeader is the fixed part of the AU header (big-endian, 24 bytes).
type auHeader struct {
	Magic      uint32
	DataOffset uint32
	DataSize   uint32 // 0xFFFFFFFF when unknown
	Encoding   uint32
	SampleRate uint32
	Channels   uint32
}

const (
	auMagic         = 0x2e736e64 // ".snd"
	auHeaderSize    = 24
	auUnknownSize   = 0xFFFFFFFF
	auEncodingULaw  = 1
	auEncodingPCM16 = 3
)

// μ-law decompression table (converts μ-law byte to 16-bit PCM)
var mulawTable = [256]int16{
	-32124, -31100, -30076, -29052, -28028, -27004, -25980, -24956,
	-23932, -22908, -21884, -20860, -19836, -18812, -17788, -16764,
	-15996, -15484, -14972, -14460, -13948, -13436, -12924, -12412,
	-11900, -11388, -10876, -10364, -9852, -9340, -8828, -8316,
	-7932, -7676, -7420, -7164, -6908, -6652, -6396, -6140,
	-5884, -5628, -5372, -5116, -4860, -4604, -4348, -4092,
	-3900, -3772, -3644, -3516, -3388, -3260, -3132, -3004,
	-2876, -2748, -2620, -2492, -2364, -2236, -2108, -1980,
	-1884, -1820, -1756, -1692, -1628, -1564, -1500, -1436,
	-1372, -1308, -1244, -1180, -1116, -1052, -988, -924,
	-876, -844, -812, -780, -748, -716, -684, -652,
	-620, -588, -556, -524, -492, -460, -428, -396,
	-372, -356, -340, -324, -308, -292, -276, -260,
	-244, -228, -212, -196, -180, -164, -148, -132,
	-120, -112, -104, -96, -88, -80, -72, -64,
	-56, -48, -40, -32, -24, -16, -8, 0,
	32124, 31100, 30076, 29052, 28028, 27004, 25980, 24956,
	23932, 22908, 21884, 20860, 19836, 18812, 17788, 16764,
	15996, 15484, 14972, 14460, 13948, 13436, 12924, 12412,
	11900, 11388, 10876, 10364, 9852, 9340, 8828, 8316,
	7932, 7676, 7420, 7164, 6908, 6652, 6396, 6140,
	5884, 5628, 5372, 5116, 4860, 4604, 4348, 4092,
	3900, 3772, 3644, 3516, 3388, 3260, 3132, 3004,
	2876, 2748, 2620, 2492, 2364, 2236, 2108, 1980,
	1884, 1820, 1756, 1692, 1628, 1564, 1500, 1436,
	1372, 1308, 1244, 1180, 1116, 1052, 988, 924,
	876, 844, 812, 780, 748, 716, 684, 652,
	620, 588, 556, 524, 492, 460, 428, 396,
	372, 356, 340, 324, 308, 292, 276, 260,
	244, 228, 212, 196, 180, 164, 148, 132,
	120, 112, 104, 96, 88, 80, 72, 64,
	56, 48, 40, 32, 24, 16, 8, 0,
}

// DecodeWithSampleRate decodes an AU file and converts it to 16-bit stereo
// at sampleRate. Mono input is duplicated to both channels; a different source
// rate is converted by linear interpolation.
//
// Supported encodings: 8-bit μ-law (1) and 16-bit linear PCM (3).
func DecodeWithSampleRate(sampleRate int, r io.Reader) (*Stream, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid target sample rate: %d", sampleRate)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read AU file: %w", err)
	}
	if len(data) < auHeaderSize {
		return nil, fmt.Errorf("AU file too short: %d bytes (minimum %d)", len(data), auHeaderSize)
	}

	var h auHeader
	if err := binary.Read(bytes.NewReader(data), binary.BigEndian, &h); err != nil {
		return nil, fmt.Errorf("failed to read AU header: %w", err)
	}
	if h.Magic != auMagic {
		return nil, fmt.Errorf("%w: magic 0x%08x", ErrNotAU, h.Magic)
	}
	if h.Channels < 1 || h.Channels > 2 {
		return nil, fmt.Errorf("unsupported channel count: %d (only 1-2 supported)", h.Channels)
	}
	if h.SampleRate == 0 {
		return nil, errors.New("AU sample rate is zero")
	}
	if h.DataOffset < auHeaderSize || int(h.DataOffset) > len(data) {
		return nil, fmt.Errorf("invalid data offset: %d (file size: %d)", h.DataOffset, len(data))
	}

	body := data[h.DataOffset:]
	if h.DataSize != auUnknownSize && int(h.DataSize) < len(body) {
		body = body[:h.DataSize]
	}

	var samples []int16
	switch h.Encoding {
	case auEncodingULaw:
		samples = make([]int16, len(body))
		for i, b := range body {
			samples[i] = mulawTable[b]
		}
	case auEncodingPCM16:
		samples = make([]int16, len(body)/2)
		for i := range samples {
			samples[i] = int16(binary.BigEndian.Uint16(body[i*2:]))
		}
	default:
		return nil, fmt.Errorf("unsupported AU encoding: %d (supported: 1 μ-law, 3 PCM16)", h.Encoding)
	}

	pcm := toStereo(samples, int(h.Channels), int(h.SampleRate), sampleRate)
	return &Stream{Reader: bytes.NewReader(pcm), length: int64(len(pcm))}, nil
}

// toStereo converts interleaved samples to 16-bit little-endian stereo at dstRate.
func toStereo(samples []int16, channels, srcRate, dstRate int) []byte {
	frames := len(samples) / channels
	frame := func(i int) (l, r int16) {
		l = samples[i*channels]
		r = l
		if channels == 2 {
			r = samples[i*channels+1]
		}
		return l, r
	}

	outFrames := frames
	if srcRate != dstRate {
		outFrames = int(int64(frames) * int64(dstRate) / int64(srcRate))
	}
	out := make([]byte, outFrames*4)
	for i := 0; i < outFrames; i++ {
		var l, r int16
		if srcRate == dstRate {
			l, r = frame(i)
		} else {
			pos := float64(i) * float64(srcRate) / float64(dstRate)
			j := int(pos)
			l0, r0 := frame(j)
			l, r = l0, r0
			if j+1 < frames {
				l1, r1 := frame(j + 1)
				t := pos - float64(j)
				l = int16(float64(l0) + (float64(l1)-float64(l0))*t)
				r = int16(float64(r0) + (float64(r1)-float64(r0))*t)
			}
		}
		binary.LittleEndian.PutUint16(out[i*4:], uint16(l))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(r))
	}
	return out
}
