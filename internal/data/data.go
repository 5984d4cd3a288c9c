package data

import (
	"complaint-service/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(
	NewData,
	NewComplaintRepo,
	NewRedisComplaintCache,
	NewCachedComplaintRepository,
)

// schema is applied on startup. The unique index is the store-level guard
// for the one-complaint-per-(product, complainant) invariant; application
// code must not rely on check-then-act alone.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS complaints (
		id TEXT PRIMARY KEY,
		product_id TEXT NOT NULL,
		complainant_id TEXT NOT NULL,
		content TEXT NOT NULL,
		country TEXT NOT NULL,
		counter INTEGER NOT NULL DEFAULT 1,
		creation_date TIMESTAMP NOT NULL,
		update_date TIMESTAMP
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_product_complainant
		ON complaints (product_id, complainant_id)`,
}

// Data holds the persistence handles shared by repositories.
type Data struct {
	db  *sqlx.DB
	rdb *redis.Client
}

// NewData opens the SQL store, applies the schema, and connects the optional
// Redis cache.
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)

	db, err := sqlx.Connect(c.Database.Driver, c.Database.Source)
	if err != nil {
		return nil, nil, err
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, nil, err
	}

	var rdb *redis.Client
	if c.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: c.Redis.Addr})
	}

	d := &Data{db: db, rdb: rdb}

	cleanup := func() {
		helper.Info("closing the data resources")
		if err := d.db.Close(); err != nil {
			helper.Error(err)
		}
		if d.rdb != nil {
			if err := d.rdb.Close(); err != nil {
				helper.Error(err)
			}
		}
	}

	return d, cleanup, nil
}

// Migrate applies the complaint schema. Exposed for tests that bring their
// own database handle.
func Migrate(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
