//go:build windows

package geoloc

import "os"

// mappedFile on Windows falls back to a plain in-memory read rather than
// a real mapping: golang.org/x/sys/windows' CreateFileMapping path needs
// handles this package otherwise has no use for, and the store is read
// once per process lifetime anyway.
type mappedFile struct {
	f    *os.File
	data []byte
}

func openMapped(path string) (*mappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.Size() == 0 {
		f.Close()
		return nil, os.ErrInvalid
	}

	data, err := os.ReadFile(path)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &mappedFile{f: f, data: data}, nil
}

func (m *mappedFile) Close() error {
	return m.f.Close()
}
