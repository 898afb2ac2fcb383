package tarpit

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/Flashmyname/async-tarpit/pkg/config"
	"github.com/blend/go-sdk/configutil"
)

const (
	DefaultHost = "0.0.0.0"
	DefaultPort = uint16(2222)

	// DefaultDelay is the interval between drip bytes. Long enough to
	// waste a scanner's timeout budget, short enough to keep its own
	// idle detection from firing.
	DefaultDelay = 10 * time.Second
)

type Config struct {
	Host  string        `yaml:"host"`
	Port  uint16        `yaml:"port"`
	Delay time.Duration `yaml:"delay"`
}

// Resolve populates configuration fields from a variety of input sources
func (c *Config) Resolve(ctx context.Context, files ...string) error {
	if err := config.ResolveFromFiles(c, files...); err != nil {
		return err
	}
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Delay <= 0 {
		c.Delay = DefaultDelay
	}
	return configutil.Resolve(ctx)
}

func (c Config) BindAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(int(c.Port)))
}

func (c Config) Context(ctx context.Context) (context.Context, error) {
	ctx = WithConfig(ctx, c)
	return ctx, nil
}
