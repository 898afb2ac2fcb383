package tarpit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNoise(t *testing.T) {
	assert.False(t, IsNoise(nil))

	assert.True(t, IsNoise(errConnReset))
	assert.True(t, IsNoise(errConnAborted))
	assert.True(t, IsNoise(errBrokenPipe))

	// the net package surfaces errnos wrapped in OpError/SyscallError
	wrapped := &net.OpError{
		Op:  "write",
		Net: "tcp",
		Err: os.NewSyscallError("write", errConnReset),
	}
	assert.True(t, IsNoise(wrapped))
	assert.True(t, IsNoise(fmt.Errorf("drip: %w", wrapped)))

	assert.False(t, IsNoise(io.EOF))
	assert.False(t, IsNoise(context.Canceled))
	assert.False(t, IsNoise(net.ErrClosed))
	assert.False(t, IsNoise(errors.New("disk on fire")))
}

func TestIsCloseNoise(t *testing.T) {
	assert.False(t, IsCloseNoise(nil))
	assert.True(t, IsCloseNoise(net.ErrClosed))
	assert.True(t, IsCloseNoise(errConnReset))
	assert.True(t, IsCloseNoise(errBrokenPipe))
	assert.False(t, IsCloseNoise(io.EOF))
	assert.False(t, IsCloseNoise(errors.New("disk on fire")))
}
