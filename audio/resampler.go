// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"

	"github.com/ik5/pbxdecode/utils"
)

const (
	// emptyReadLimit is the number of consecutive empty reads treated as end of stream.
	emptyReadLimit = 16
	// windowPadLimit is reached once the interpolation origin is past the last real frame.
	windowPadLimit = 3
)

// Resampler streams from src to target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
// Includes basic anti-aliasing filtering when downsampling.
type Resampler struct {
	src      Source
	channels int
	dstRate  int
	step     float64 // source frames consumed per output frame
	frac     float64 // position between window[1] and window[2]

	// window[0] = t-1, window[1] = t0, window[2] = t+1, window[3] = t+2
	window  [4][]float32
	scratch []float32
	primed  bool
	padded  int // frames in the window that lie past the end of src

	in     []float32
	inPos  int
	inLen  int
	srcEOF bool

	lowPass     bool
	alpha       float32
	filterState []float32
	filterReady bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	bufSize := src.BufSize()
	if bufSize < channels {
		bufSize = 4096
	}
	bufSize -= bufSize % channels

	r := &Resampler{
		src:         src,
		channels:    channels,
		dstRate:     dstRate,
		step:        step,
		scratch:     make([]float32, channels),
		in:          make([]float32, bufSize),
		lowPass:     step > 1.0,
		alpha:       0.5,
		filterState: make([]float32, channels),
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }
func (r *Resampler) Close() error    { return r.src.Close() }

// nextFrame copies the next source frame into dst and reports whether one was available.
func (r *Resampler) nextFrame(dst []float32) (bool, error) {
	empty := 0
	for r.inPos >= r.inLen {
		if r.srcEOF {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.in)
		r.inPos, r.inLen = 0, n-n%r.channels
		switch {
		case errors.Is(err, io.EOF):
			r.srcEOF = true
		case err != nil:
			return false, err
		case n == 0:
			empty++
			if empty >= emptyReadLimit {
				r.srcEOF = true
			}
		}
	}

	copy(dst, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.lowPass {
		if !r.filterReady {
			copy(r.filterState, dst)
			r.filterReady = true
		}
		for c := range r.channels {
			dst[c] = r.alpha*dst[c] + (1-r.alpha)*r.filterState[c]
			r.filterState[c] = dst[c]
		}
	}

	return true, nil
}

// advance shifts the window by one source frame, repeating the last frame past the end.
func (r *Resampler) advance() error {
	ok, err := r.nextFrame(r.scratch)
	if err != nil {
		return err
	}
	if !ok {
		copy(r.scratch, r.window[3])
		r.padded++
	}

	oldest := r.window[0]
	r.window[0], r.window[1], r.window[2] = r.window[1], r.window[2], r.window[3]
	r.window[3] = oldest
	copy(r.window[3], r.scratch)

	return nil
}

func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.nextFrame(r.window[1])
	if err != nil {
		return err
	}
	if !ok {
		r.padded = windowPadLimit
		return nil
	}
	copy(r.window[0], r.window[1])

	for i := 2; i < len(r.window); i++ {
		ok, err := r.nextFrame(r.window[i])
		if err != nil {
			return err
		}
		if !ok {
			copy(r.window[i], r.window[i-1])
			r.padded++
		}
	}

	return nil
}

// ReadSamples produces dst samples at the destination rate.
// dst length should be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	for written < len(dst) {
		for r.frac >= 1 && r.padded < windowPadLimit {
			if err := r.advance(); err != nil {
				return written, err
			}
			r.frac--
		}
		if r.padded >= windowPadLimit {
			return written, io.EOF
		}

		x := float32(r.frac)
		for c := range r.channels {
			dst[written+c] = utils.CubicInterpolate(
				r.window[0][c], r.window[1][c], r.window[2][c], r.window[3][c], x)
		}
		written += r.channels
		r.frac += r.step
	}

	return written, nil
}
