package kv

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/healthrecords/internal/logging"
	"github.com/stretchr/testify/require"
)

func closedAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestDialRedis_GivesUpAfterRetries(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := DialRedis(ctx, RedisOptions{
		Addr:           closedAddr(t),
		ConnectRetries: 2,
		RetryBase:      time.Millisecond,
	}, logging.Nop())
	require.Error(t, err)
	require.ErrorContains(t, err, "connect redis")
}

func TestDialRedis_RespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DialRedis(ctx, RedisOptions{Addr: closedAddr(t), ConnectRetries: 5}, logging.Nop())
	require.Error(t, err)
}

func TestRedisRepository_KeyPrefix(t *testing.T) {
	r := NewRedisRepository(nil, "records:")
	require.Equal(t, "records:health-records-u1", r.key("health-records-u1"))
}
