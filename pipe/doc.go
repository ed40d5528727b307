// SPDX-License-Identifier: EPL-2.0

// Package pipe carries decoded chunks from the decoder engine to a consumer.
//
// A Pipe is a bounded FIFO of audio.Chunk values and implements the
// decoder's FrameSink. The engine pushes, and one or more consumers pop.
//
// # Producer Side
//
// Push never blocks. It reports false once the pipe holds its capacity of
// sample chunks, and the engine then waits on its control until a consumer
// makes room:
//
//	p := pipe.New(64)
//	p.SetNotify(eng.Control().SignalEngine)
//
// The notify callback runs after every Pop, TryPop and Clear, without the
// pipe lock held. Flush appends an end marker, a chunk with End set, which
// does not count against the capacity.
//
// # Consumer Side
//
// Pop waits for the next chunk:
//
//	for {
//	    c, err := p.Pop(ctx)
//	    if err != nil {
//	        return err // ctx done or pipe closed
//	    }
//	    if c.End {
//	        break
//	    }
//	    play(c.Format, c.Samples)
//	}
//
// Chunks already queued are still returned after ctx is done or the pipe
// is closed. TryPop is the non-blocking variant.
//
// # Seeking
//
// After a seek the engine calls Clear, which drops everything queued,
// end markers included, so the consumer does not play stale audio.
package pipe
