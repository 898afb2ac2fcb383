//go:build unix

package tarpit

import "golang.org/x/sys/unix"

const (
	errConnReset   = unix.ECONNRESET
	errConnAborted = unix.ECONNABORTED
	errBrokenPipe  = unix.EPIPE
)
