// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/ik5/pbxdecode/audio"
	"github.com/ik5/pbxdecode/track"
	"github.com/ik5/pbxdecode/utils"
)

// Session is the plugin-facing handle for one decode attempt.
//
// A plugin calls Initialized once it knows the PCM format, hands samples to
// Submit, and polls Command between units of work. Stop means return as soon
// as possible. Seek means read SeekWhere, reposition, then call
// CommandFinished, or SeekError if repositioning is impossible.
type Session struct {
	id      string
	control *Control
	sink    FrameSink
	track   *track.Track
	input   InputStream
	fileTag *track.Tag // embedded tags of a local file
	log     zerolog.Logger

	output      audio.Format
	chunkFrames int

	format   audio.Format
	seekable bool
	base     time.Duration
	frames   int64

	seekPending bool
	seeking     bool
	tagSent     bool
}

func (s *Session) ID() string              { return s.id }
func (s *Session) Track() *track.Track     { return s.track }
func (s *Session) Logger() *zerolog.Logger { return &s.log }
func (s *Session) Output() audio.Format    { return s.output }
func (s *Session) ChunkFrames() int        { return s.chunkFrames }
func (s *Session) Format() audio.Format    { return s.format }
func (s *Session) Seekable() bool          { return s.seekable }

// Position is the stream time of the next frame Submit will send.
func (s *Session) Position() time.Duration {
	return s.base + s.format.Duration(s.frames)
}

// Command returns the pending command without clearing it.
func (s *Session) Command() Command {
	if s.seekPending {
		return CommandSeek
	}
	return s.control.PollCommand()
}

// SeekWhere returns the requested seek target.
func (s *Session) SeekWhere() time.Duration {
	s.seeking = true
	return s.control.seekTarget()
}

// CommandFinished acknowledges the Seek a plugin has just carried out.
// Output timestamps continue from the seek target and buffered output is dropped.
func (s *Session) CommandFinished() {
	if !s.seeking && !s.seekPending {
		return
	}

	s.base = s.control.seekTarget()
	s.frames = 0
	s.seeking = false
	s.seekPending = false

	if c, ok := s.sink.(sinkClearer); ok {
		c.Clear()
	}
	s.control.finishSeek()

	s.log.Debug().Dur("position", s.base).Msg("seek done")
}

// SeekError reports that the requested seek cannot be carried out.
func (s *Session) SeekError() {
	s.seeking = false
	s.seekPending = false
	s.control.failSeek()

	s.log.Debug().Msg("seek failed")
}

// Initialized records the PCM format the plugin will submit.
func (s *Session) Initialized(format audio.Format, seekable bool) {
	s.format = format
	s.seekable = seekable

	s.log.Debug().
		Int("sample_rate", format.SampleRate).
		Int("channels", format.Channels).
		Bool("seekable", seekable).
		Msg("decoder initialized")
}

// Submit converts interleaved float samples to 16-bit chunks and pushes them
// to the sink, waiting while it is full. It returns the pending command, or
// CommandNone when all samples were delivered. Samples are dropped when a
// command interrupts the wait.
func (s *Session) Submit(samples []float32) Command {
	if cmd := s.sendStreamTag(); cmd != CommandNone {
		return cmd
	}

	channels := max(s.format.Channels, 1)
	step := max(s.chunkFrames, 1) * channels

	for off := 0; off < len(samples); off += step {
		end := min(off+step, len(samples))
		end -= (end - off) % channels
		if end <= off {
			break
		}

		pcm := make([]int16, end-off)
		utils.FloatsToPCM16(pcm, samples[off:end])

		chunk := audio.Chunk{Format: s.format, Samples: pcm, Time: s.Position()}
		if cmd := s.control.pushWait(s.sink, chunk, s.seekPending); cmd != CommandNone {
			return cmd
		}
		s.frames += int64(len(pcm) / channels)
	}

	return s.Command()
}

// SubmitTag sends a metadata update in band.
func (s *Session) SubmitTag(tag *track.Tag) Command {
	if tag.IsEmpty() {
		return s.Command()
	}

	chunk := audio.Chunk{Format: s.format, Tag: tag, Time: s.Position()}
	return s.control.pushWait(s.sink, chunk, s.seekPending)
}

// sendStreamTag forwards the input's stream metadata, or the tags of a local
// file, once per session.
func (s *Session) sendStreamTag() Command {
	if s.tagSent {
		return CommandNone
	}
	s.tagSent = true

	tag := s.fileTag
	if ts, ok := s.input.(TagSource); ok && !ts.Tag().IsEmpty() {
		tag = ts.Tag()
	}
	if tag.IsEmpty() {
		return CommandNone
	}

	chunk := audio.Chunk{Format: s.format, Tag: tag, Time: s.Position()}
	return s.control.pushWait(s.sink, chunk, s.seekPending)
}
