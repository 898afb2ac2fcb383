package tarpit

import (
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConn(t *testing.T) *Conn {
	t.Helper()
	client, server := net.Pipe()
	t.Cleanup(func() {
		client.Close()
		server.Close()
	})
	return newConn(server)
}

func TestRegistryAddIdempotent(t *testing.T) {
	reg := NewRegistry()
	conn := newTestConn(t)

	reg.Add(conn)
	reg.Add(conn)

	assert.Equal(t, 1, reg.Count())
}

func TestRegistryRemoveAbsent(t *testing.T) {
	reg := NewRegistry()
	conn := newTestConn(t)

	reg.Remove(conn)
	assert.Equal(t, 0, reg.Count())

	reg.Add(conn)
	reg.Remove(conn)
	reg.Remove(conn)
	assert.Equal(t, 0, reg.Count())
}

func TestRegistrySnapshot(t *testing.T) {
	reg := NewRegistry()
	conns := []*Conn{newTestConn(t), newTestConn(t), newTestConn(t)}
	for _, conn := range conns {
		reg.Add(conn)
	}

	snapshot := reg.Snapshot()
	require.Len(t, snapshot, 3)
	for _, conn := range conns {
		assert.Contains(t, snapshot, conn)
	}

	// mutating the registry must not affect an already-taken snapshot
	reg.Remove(conns[0])
	assert.Len(t, snapshot, 3)
	assert.Equal(t, 2, reg.Count())
}

func TestRegistryConcurrent(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		conn := newTestConn(t)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				reg.Add(conn)
				reg.Count()
				reg.Snapshot()
				reg.Remove(conn)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, reg.Count())
}
