package bootstrap

import (
	"fmt"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"

	cityrepo "github.com/rakhimovb/staylist/internal/city/repository"
	"github.com/rakhimovb/staylist/internal/common/config"
	"github.com/rakhimovb/staylist/internal/common/constants"
	"github.com/rakhimovb/staylist/internal/common/db"
	"github.com/rakhimovb/staylist/internal/common/logger"
	itemrepo "github.com/rakhimovb/staylist/internal/item/repository"
	userrepo "github.com/rakhimovb/staylist/internal/user/repository"
)

// APIApp bundles what the api binary needs before handler wiring: logger,
// config, the database pool and the repositories on top of it.
type APIApp struct {
	Log      *logger.Logger
	Config   config.APIConfig
	Pool     *pgxpool.Pool
	UserRepo userrepo.Repository
	ItemRepo itemrepo.Repository
	CityRepo cityrepo.Repository
}

func NewAPIApp() (*APIApp, error) {
	log, err := logger.New(os.Getenv("LOG_DIR"), "api", os.Getenv("LOG_LEVEL"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	config.LoadDotenv()
	cfg, err := config.LoadAPIConfig()
	if err != nil {
		log.Errorf("failed to load config: %v", err)
		return nil, err
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	if pool == nil {
		return nil, fmt.Errorf("failed to initialize database pool")
	}

	db.StartPoolMetrics(pool, constants.DBPoolMetricsInterval)

	return &APIApp{
		Log:      log,
		Config:   cfg,
		Pool:     pool,
		UserRepo: userrepo.NewPgRepository(pool),
		ItemRepo: itemrepo.NewPgRepository(pool),
		CityRepo: cityrepo.NewPgRepository(pool),
	}, nil
}
