package tarpit

import (
	"context"
	"net"

	"github.com/blend/go-sdk/logger"
)

func listen(ctx context.Context, addr string) (net.Listener, error) {
	logger.MaybeDebugfContext(ctx, logger.GetLogger(ctx), "Starting tarpit listen on %s", addr)
	return net.Listen("tcp", addr)
}
