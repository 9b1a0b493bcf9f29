package sqlc

import "time"

// upper bound of one analytics query, so a slow database never
// holds up a game
const QuerierCtxTimeout = time.Second * 10

// DbManager builds every manager of the server on top of one
// connection pool (or transaction).
type DbManager struct {
	Analytics *AnalyticsManager
}

func NewDbManager(db DBTX) DbManager {
	return DbManager{
		Analytics: NewAnalyticsManager(New(db)),
	}
}
