package cli

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"

	"trivia-game-service/internal/app"
	"trivia-game-service/internal/config"
	"trivia-game-service/internal/infra/memory"
	"trivia-game-service/internal/infra/postgres"
	redisinfra "trivia-game-service/internal/infra/redis"
)

// backends holds the external connections named by the config. Any of them may be nil.
type backends struct {
	db    *bun.DB
	pool  *pgxpool.Pool
	redis *redis.Client
}

// openBackends connects to Postgres (migrating it) and Redis when configured.
// The pgx pool is only opened when withPool is set.
func openBackends(ctx context.Context, cfg config.Config, withPool bool) (*backends, error) {
	b := &backends{}
	if cfg.Postgres.URL != "" {
		db, err := openBun(cfg)
		if err != nil {
			return nil, err
		}
		b.db = db
		if err := runMigrations(ctx, db); err != nil {
			b.Close()
			return nil, err
		}
		if withPool {
			pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
			if err != nil {
				b.Close()
				return nil, err
			}
			b.pool = pool
		}
	}
	if cfg.Redis.Addr != "" {
		b.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := b.redis.Ping(ctx).Err(); err != nil {
			b.Close()
			return nil, err
		}
	}
	return b, nil
}

// highScores prefers the durable Postgres table, then Redis, then process memory.
func (b *backends) highScores() app.HighScoreStore {
	switch {
	case b.db != nil:
		return postgres.NewHighScoreStore(b.db)
	case b.redis != nil:
		return redisinfra.NewHighScoreStore(b.redis)
	default:
		return memory.NewHighScoreStore()
	}
}

func (b *backends) Close() {
	if b.pool != nil {
		b.pool.Close()
	}
	if b.redis != nil {
		_ = b.redis.Close()
	}
	if b.db != nil {
		_ = b.db.Close()
	}
}
