// SPDX-License-Identifier: EPL-2.0

package input

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/ik5/pbxdecode/decoder"
	"github.com/ik5/pbxdecode/track"
)

const (
	DefaultHTTPTimeout  = 10 * time.Second
	DefaultRewindBuffer = 256 * 1024
	DefaultReadyBytes   = 32 * 1024
)

// Options configure an Opener. Zero values select the defaults.
type Options struct {
	// Schemes lists the accepted remote URL prefixes.
	Schemes []string
	// HTTPTimeout bounds dialing, the TLS handshake and waiting for response headers.
	HTTPTimeout time.Duration
	// RewindBuffer is how many leading bytes of a remote stream are kept.
	RewindBuffer int
	// ReadyBytes is how much must be buffered before a remote stream is ready.
	ReadyBytes int
	Client     *http.Client
	Logger     zerolog.Logger
}

// Opener opens local paths as File and remote URLs as HTTP.
type Opener struct {
	opts Options
}

func NewOpener(opts Options) *Opener {
	if opts.Schemes == nil {
		opts.Schemes = track.DefaultSchemes
	}
	if opts.HTTPTimeout <= 0 {
		opts.HTTPTimeout = DefaultHTTPTimeout
	}
	if opts.RewindBuffer <= 0 {
		opts.RewindBuffer = DefaultRewindBuffer
	}
	if opts.ReadyBytes <= 0 {
		opts.ReadyBytes = DefaultReadyBytes
	}
	if opts.Client == nil {
		opts.Client = &http.Client{
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				DialContext:           (&net.Dialer{Timeout: opts.HTTPTimeout}).DialContext,
				TLSHandshakeTimeout:   opts.HTTPTimeout,
				ResponseHeaderTimeout: opts.HTTPTimeout,
			},
		}
	}
	return &Opener{opts: opts}
}

// Open implements decoder.Opener.
func (o *Opener) Open(ctx context.Context, uri string) (decoder.InputStream, error) {
	if !track.HasScheme(uri) {
		return OpenFile(uri)
	}
	if strings.HasPrefix(uri, "file://") {
		return OpenFile(track.FilePath(uri))
	}
	if !track.SupportedScheme(uri, o.opts.Schemes) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, uri)
	}
	if !strings.HasPrefix(uri, "http://") && !strings.HasPrefix(uri, "https://") {
		return nil, fmt.Errorf("%w: no handler for %s", ErrUnsupportedScheme, uri)
	}
	return o.openHTTP(ctx, uri)
}

func (o *Opener) openHTTP(ctx context.Context, uri string) (*HTTP, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "pbxdecode")

	resp, err := o.opts.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching stream: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrHTTPStatus, resp.Status)
	}

	h := newHTTP(resp, o.opts.RewindBuffer, o.opts.ReadyBytes)

	ev := o.opts.Logger.Debug().
		Str("url", uri).
		Str("mime", h.mimeType)
	if resp.ContentLength >= 0 {
		ev = ev.Str("size", humanize.IBytes(uint64(resp.ContentLength)))
	}
	ev.Msg("stream opened")

	return h, nil
}
