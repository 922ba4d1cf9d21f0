package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Guyuepp/blog-threads/domain"
	"github.com/Guyuepp/blog-threads/internal/config"
	"github.com/Guyuepp/blog-threads/internal/identity"
	badgerRepo "github.com/Guyuepp/blog-threads/internal/repository/badger"
	mongoRepo "github.com/Guyuepp/blog-threads/internal/repository/mongo"
	mysqlRepo "github.com/Guyuepp/blog-threads/internal/repository/mysql"
	redisRepo "github.com/Guyuepp/blog-threads/internal/repository/redis"
	"github.com/Guyuepp/blog-threads/internal/rest"
	"github.com/Guyuepp/blog-threads/internal/rest/middleware"
	"github.com/Guyuepp/blog-threads/internal/rest/request"
	"github.com/Guyuepp/blog-threads/internal/usecase/blog"
	"github.com/Guyuepp/blog-threads/internal/usecase/cascade"
	"github.com/Guyuepp/blog-threads/internal/usecase/like"
	"github.com/Guyuepp/blog-threads/internal/usecase/ownership"
	"github.com/Guyuepp/blog-threads/internal/usecase/thread"
	"github.com/Guyuepp/blog-threads/internal/workers"
)

const (
	dbMaxRetry         = 10
	dbRetryIntervalSec = 2
	reconcileTimeout   = 5 * time.Minute
	shutdownTimeout    = 5 * time.Second
)

// stores holds the repositories of the selected driver.
type stores struct {
	blogs    domain.BlogRepository
	comments domain.CommentRepository
	replies  domain.ReplyRepository
	likes    domain.LikeRepository
	tx       domain.Transactor
	probe    rest.Probe
	close    func()
}

func main() {
	cfg := config.Load()
	cfg.ConfigureLogger()
	info := domain.ServiceInfo{Name: cfg.ServiceName, StartedAt: time.Now()}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// prepare database
	var (
		st  stores
		err error
	)
	switch cfg.StoreDriver {
	case config.DriverMySQL:
		st, err = openMySQL(cfg.Database)
	case config.DriverMongo:
		st, err = openMongo(ctx, cfg.Mongo)
	case config.DriverBadger:
		st, err = openBadger(cfg.BadgerDir)
	default:
		err = fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		logrus.Fatalf("could not open the %s store: %v", cfg.StoreDriver, err)
	}
	defer st.close()

	// prepare cache
	var cache domain.DisplayInfoCache
	if cfg.Cache.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr(),
			Password: cfg.Cache.Pass,
			DB:       cfg.Cache.DB,
		})
		defer func() {
			if err := client.Close(); err != nil {
				logrus.Errorf("got error when closing the cache connection: %v", err)
			}
		}()
		if err := client.Ping(ctx).Err(); err != nil {
			logrus.Fatalf("failed to open connection to cache: %v", err)
		}
		cache = redisRepo.NewDisplayInfoCache(client, cfg.Keycloak.CacheTTL)
	}

	// prepare identity provider
	var (
		identityClient domain.IdentityClient
		identityProbe  *rest.Probe
	)
	if cfg.Keycloak.URL != "" {
		kc := identity.NewKeycloakClient(identity.Config{
			BaseURL:      cfg.Keycloak.URL,
			Realm:        cfg.Keycloak.Realm,
			ClientID:     cfg.Keycloak.ClientID,
			ClientSecret: cfg.Keycloak.ClientSecret,
			Timeout:      cfg.Keycloak.Timeout,
			RPS:          cfg.Keycloak.RPS,
			Burst:        cfg.Keycloak.Burst,
		}, cache)
		identityClient = kc
		identityProbe = &rest.Probe{Name: "keycloak", Pinger: kc}
	} else {
		logrus.Warn("KEYCLOAK_URL is not set, display info will be empty")
		identityClient = identity.NewPlaceholder()
	}

	// Build service Layer
	guard := ownership.NewGuard(st.blogs, st.comments, st.replies)
	cascadeSvc := cascade.NewService(st.blogs, st.comments, st.replies, st.likes, st.tx)
	blogSvc := blog.NewService(st.blogs, identityClient, guard, cascadeSvc)
	threadSvc := thread.NewService(st.blogs, st.comments, st.replies, identityClient, guard, cascadeSvc, cfg.ThreadMaxDepth)
	likeSvc := like.NewService(st.blogs, st.likes, st.tx)

	// Start worker
	scheduler := workers.NewScheduler()
	if cfg.LikeReconcileSpec != "" {
		rec := workers.NewLikeReconciler(st.blogs, st.likes)
		if err := scheduler.AddLikeReconciler(cfg.LikeReconcileSpec, rec, reconcileTimeout); err != nil {
			logrus.Fatalf("invalid LIKE_RECONCILE_SPEC %q: %v", cfg.LikeReconcileSpec, err)
		}
	}
	scheduler.Start()

	// prepare gin
	if err := request.RegisterValidations(); err != nil {
		logrus.Fatalf("failed to register validations: %v", err)
	}
	route := gin.Default()
	route.Use(middleware.CORS(cfg.CORSOrigins...))
	route.Use(middleware.SetRequestContextWithTimeout(cfg.ContextTimeout))

	rest.Register(route, rest.Handlers{
		Blog:   rest.NewBlogHandler(blogSvc, likeSvc),
		Thread: rest.NewThreadHandler(threadSvc),
		Health: rest.NewHealthHandler(info, st.probe, identityProbe),
	})

	// Start Server
	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           route,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	go func() {
		logrus.Infof("%s is running on %s with the %s store", info.Name, cfg.Address, cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("listen: %s", err)
		}
	}()

	// shutdown
	<-ctx.Done()
	logrus.Info("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Waiting for worker to cleanup...")
	scheduler.Stop(shutdownCtx)

	logrus.Info("Server exiting")
}

func openMySQL(c config.Database) (stores, error) {
	dsnCfg := mysqldriver.NewConfig()
	dsnCfg.User = c.User
	dsnCfg.Passwd = c.Pass
	dsnCfg.Net = "tcp"
	dsnCfg.Addr = net.JoinHostPort(c.Host, c.Port)
	dsnCfg.DBName = c.Name
	dsnCfg.ParseTime = true
	dsnCfg.Loc = time.UTC
	// matched rows instead of changed rows, so an update to equal values is not a miss
	dsnCfg.ClientFoundRows = true
	dsn := dsnCfg.FormatDSN()

	var (
		db  *gorm.DB
		err error
	)
	for i := range dbMaxRetry {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err != nil {
			logrus.Warnf("failed to open connection to database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
		} else {
			sqlDB, dbErr := db.DB()
			if dbErr != nil {
				err = dbErr
				logrus.Warnf("failed to get sql.DB from gorm.DB (attempt %d/%d): %v", i+1, dbMaxRetry, err)
				continue
			}
			if err = sqlDB.Ping(); err == nil {
				break
			}
			logrus.Warnf("failed to ping database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
			_ = sqlDB.Close()
		}

		time.Sleep(dbRetryIntervalSec * time.Second)
	}
	if err != nil {
		return stores{}, fmt.Errorf("could not connect to database after retries: %w", err)
	}
	if err := mysqlRepo.Migrate(db); err != nil {
		return stores{}, fmt.Errorf("migrate: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return stores{}, err
	}
	return stores{
		blogs:    mysqlRepo.NewBlogRepository(db),
		comments: mysqlRepo.NewCommentRepository(db),
		replies:  mysqlRepo.NewReplyRepository(db),
		likes:    mysqlRepo.NewLikeRepository(db),
		tx:       mysqlRepo.NewTransactor(db),
		probe:    rest.Probe{Name: "mysql", Pinger: rest.PingFunc(sqlDB.PingContext)},
		close: func() {
			if err := sqlDB.Close(); err != nil {
				logrus.Errorf("got error when closing the DB connection: %v", err)
			}
		},
	}, nil
}

func openMongo(ctx context.Context, c config.Mongo) (stores, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.URL))
	if err != nil {
		return stores{}, err
	}
	closeClient := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logrus.Errorf("got error when closing the mongo connection: %v", err)
		}
	}

	var pingErr error
	for i := range dbMaxRetry {
		if pingErr = client.Ping(ctx, readpref.Primary()); pingErr == nil {
			break
		}
		logrus.Warnf("failed to ping mongo (attempt %d/%d): %v", i+1, dbMaxRetry, pingErr)
		time.Sleep(dbRetryIntervalSec * time.Second)
	}
	if pingErr != nil {
		closeClient()
		return stores{}, fmt.Errorf("could not connect to mongo after retries: %w", pingErr)
	}

	db := client.Database(c.DBName)
	if err := mongoRepo.EnsureIndexes(ctx, db); err != nil {
		closeClient()
		return stores{}, fmt.Errorf("ensure indexes: %w", err)
	}
	return stores{
		blogs:    mongoRepo.NewBlogRepository(db),
		comments: mongoRepo.NewCommentRepository(db),
		replies:  mongoRepo.NewReplyRepository(db),
		likes:    mongoRepo.NewLikeRepository(db),
		tx:       mongoRepo.NewTransactor(client, c.Transactions),
		probe: rest.Probe{Name: "mongodb", Pinger: rest.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		})},
		close: closeClient,
	}, nil
}

var errBadgerClosed = errors.New("badger is closed")

func openBadger(dir string) (stores, error) {
	db, err := badgerRepo.Open(dir)
	if err != nil {
		return stores{}, err
	}
	if dir == "" {
		logrus.Warn("BADGER_DIR is not set, content is kept in memory only")
	}
	return stores{
		blogs:    badgerRepo.NewBlogRepository(db),
		comments: badgerRepo.NewCommentRepository(db),
		replies:  badgerRepo.NewReplyRepository(db),
		likes:    badgerRepo.NewLikeRepository(db),
		tx:       badgerRepo.NewTransactor(db),
		probe: rest.Probe{Name: "badger", Pinger: rest.PingFunc(func(context.Context) error {
			if db.IsClosed() {
				return errBadgerClosed
			}
			return nil
		})},
		close: func() {
			if err := db.Close(); err != nil {
				logrus.Errorf("got error when closing badger: %v", err)
			}
		},
	}, nil
}
