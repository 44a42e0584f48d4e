//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !windows

package region

func mapAnon(int) ([]byte, error) { return nil, ErrUnsupported }

func unmapAnon([]byte) error { return nil }
