package sqlc

import (
	"context"

	"github.com/sqlc-dev/pqtype"
)

type Querier interface {
	GetGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error)
	GetGamesFinishedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error)
	GetNewGameCallsCount(ctx context.Context, serverIp pqtype.Inet) (int64, error)
	GetServerAnalytics(ctx context.Context, serverIp pqtype.Inet) (GameServerAnalytic, error)
	IncrementGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) error
	IncrementGamesFinishedCount(ctx context.Context, serverIp pqtype.Inet) error
	IncrementNewGameCallsCount(ctx context.Context, serverIp pqtype.Inet) error
}

var _ Querier = (*Queries)(nil)
