//go:build !windows

package geoloc

import (
	"os"

	"golang.org/x/sys/unix"
)

// mappedFile holds an open file descriptor alongside its mmap'd bytes so
// Close can unmap before closing, mirroring MemoryFile's destructor.
type mappedFile struct {
	f    *os.File
	data []byte
}

func openMapped(path string) (*mappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.Size() == 0 {
		f.Close()
		return nil, os.ErrInvalid
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(st.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &mappedFile{f: f, data: data}, nil
}

func (m *mappedFile) Close() error {
	err := unix.Munmap(m.data)
	if cerr := m.f.Close(); err == nil {
		err = cerr
	}
	return err
}
