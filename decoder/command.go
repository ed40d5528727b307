// SPDX-License-Identifier: EPL-2.0

package decoder

// Command is a request from the controller to the engine.
type Command int

const (
	CommandNone Command = iota
	CommandStart
	CommandStop
	CommandSeek
)

func (c Command) String() string {
	switch c {
	case CommandNone:
		return "none"
	case CommandStart:
		return "start"
	case CommandStop:
		return "stop"
	case CommandSeek:
		return "seek"
	default:
		return "unknown"
	}
}

// State is the lifecycle of the engine as seen by the controller.
type State int

const (
	// StateStopped means no session is active.
	StateStopped State = iota
	// StateStarting means a session was accepted and its input is being opened and probed.
	StateStarting
	// StateDecoding means the input is open and a plugin is, or is about to be, producing audio.
	StateDecoding
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateStarting:
		return "starting"
	case StateDecoding:
		return "decoding"
	default:
		return "unknown"
	}
}

// ErrorKind is the outcome recorded for the last session.
type ErrorKind int

const (
	ErrorNone ErrorKind = iota
	// ErrorFileUnavailable covers locator, open and read failures.
	ErrorFileUnavailable
	// ErrorUnsupportedType means no plugin accepted the input.
	ErrorUnsupportedType
	// ErrorDecodeFailed means a plugin was selected but reported failure.
	ErrorDecodeFailed
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorNone:
		return "none"
	case ErrorFileUnavailable:
		return "file unavailable"
	case ErrorUnsupportedType:
		return "unsupported type"
	case ErrorDecodeFailed:
		return "decode failed"
	default:
		return "unknown"
	}
}

// Err maps the kind to its sentinel error, or nil for ErrorNone.
func (k ErrorKind) Err() error {
	switch k {
	case ErrorNone:
		return nil
	case ErrorFileUnavailable:
		return ErrFileUnavailable
	case ErrorUnsupportedType:
		return ErrUnsupportedType
	case ErrorDecodeFailed:
		return ErrDecodeFailed
	default:
		return ErrDecodeFailed
	}
}
