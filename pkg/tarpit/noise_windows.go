//go:build windows

package tarpit

import "golang.org/x/sys/windows"

// The proactor-style overlapped I/O on Windows surfaces abrupt
// disconnects through WSA error codes.
const (
	errConnReset   = windows.WSAECONNRESET
	errConnAborted = windows.WSAECONNABORTED
	errBrokenPipe  = windows.ERROR_BROKEN_PIPE
)
