// SPDX-License-Identifier: EPL-2.0

package input

import (
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// File is a local file input. It is always ready and freely seekable.
type File struct {
	*os.File
	mimeType string
	size     int64
}

// OpenFile opens path for decoding. The MIME type is guessed from the extension.
func OpenFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if st.IsDir() {
		_ = f.Close()
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrInvalid}
	}

	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}

	return &File{File: f, mimeType: mimeType, size: st.Size()}, nil
}

func (f *File) Ready() bool          { return true }
func (f *File) Buffer() (int, error) { return 0, nil }
func (f *File) MimeType() string     { return f.mimeType }
func (f *File) Seekable() bool       { return true }
func (f *File) Size() int64          { return f.size }
