package repository

type contextKey string

// TxContextKey carries a *gorm.DB transaction on a context.
const TxContextKey contextKey = "tx"
