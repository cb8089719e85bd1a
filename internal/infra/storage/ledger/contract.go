package ledger

import "github.com/m04kA/SMC-SlotLedger/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics: подходит и *sql.DB, и *dbmetrics.DB
type DBExecutor = dbmetrics.DBExecutor
