// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes Audio Interchange File Format with github.com/go-audio/aiff.
//
// # Supported Formats
//
// The decoder supports:
//   - AIFF and uncompressed AIFC
//   - 8, 16, 24 and 32-bit integer samples
//   - Any channel count and sample rate
//
// # Decoding
//
//	f, _ := os.Open("take.aiff")
//	src, err := aiff.Codec{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
// Samples are float32 in [-1,1], interleaved.
//
// # Unseekable Inputs
//
// The library seeks while reading chunk headers. Inputs that cannot seek,
// such as HTTP bodies, are buffered in memory up to MaxBuffered bytes.
// Anything larger fails with ErrTooLarge.
//
// # Errors
//
// The package reports:
//   - ErrNotAiffFile when the FORM header is missing
//   - ErrUnsupportedBitDepth for other sample widths
//   - ErrUnsupportedAiffLayout for a missing or inconsistent layout
package aiff
