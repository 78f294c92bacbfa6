package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type contextKey string

// DBConnKey stores a request-scoped acquired connection in the context.
// Repositories prefer it over the shared pool when present, which lets a
// caller pin a sequence of statements to one connection.
const DBConnKey contextKey = "db_conn"

// WithConn returns a context carrying an acquired connection.
func WithConn(ctx context.Context, conn *pgxpool.Conn) context.Context {
	return context.WithValue(ctx, DBConnKey, conn)
}

// ConnFromContext retrieves the request-scoped database connection, or nil
// when none was attached.
func ConnFromContext(ctx context.Context) *pgxpool.Conn {
	conn, _ := ctx.Value(DBConnKey).(*pgxpool.Conn)
	return conn
}
