//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"qr-seat-reservation/cmd/bootstrap"
	"qr-seat-reservation/cmd/bootstrap/components"
	"qr-seat-reservation/internal/handler/middleware"
	"qr-seat-reservation/internal/infra/db"
	"qr-seat-reservation/internal/infra/uow"
	"qr-seat-reservation/internal/pkg/config"
	"qr-seat-reservation/internal/usecase/commands"
	"qr-seat-reservation/internal/usecase/shared"
	"qr-seat-reservation/migrations"
	"qr-seat-reservation/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "test"
	pgPassword = "testpass"
)

var (
	pgOnce sync.Once
	pgHost string
	pgPort string
	pgErr  error
)

// postgresAddr starts one shared postgres container per test process.
func postgresAddr(t *testing.T) (string, string) {
	pgOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "postgres:17",
				ExposedPorts: []string{"5432/tcp"},
				Env: map[string]string{
					"POSTGRES_USER":     pgUser,
					"POSTGRES_PASSWORD": pgPassword,
				},
				// データはRAM上に置き、耐久性の設定は切る
				Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
				Cmd:   []string{"postgres", "-c", "fsync=off", "-c", "synchronous_commit=off", "-c", "max_connections=200"},
				WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
					return adminDSN(host, port.Port())
				}).WithStartupTimeout(time.Minute),
				Labels: map[string]string{"purpose": "e2e-tests"},
			},
			Started: true,
		})
		if err != nil {
			pgErr = err
			return
		}
		if pgHost, pgErr = c.Host(ctx); pgErr != nil {
			return
		}
		port, err := c.MappedPort(ctx, "5432/tcp")
		pgErr = err
		pgPort = port.Port()
	})
	require.NoError(t, pgErr, "PostgreSQLコンテナの起動に失敗")
	return pgHost, pgPort
}

func adminDSN(host, port string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", pgUser, pgPassword, host, port)
}

// prepareDatabase creates a migrated database private to the calling suite.
func prepareDatabase(t *testing.T) (*pgxpool.Pool, config.DBConfig) {
	host, port := postgresAddr(t)
	name := "testdb_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, adminDSN(host, port))
	require.NoError(t, err, "管理者接続に失敗")
	defer admin.Close()

	// 並列実行時のテンプレートDBロック競合をリトライで吸収
	for attempt := range 5 {
		if _, err = admin.Exec(ctx, "CREATE DATABASE "+name); err == nil {
			break
		}
		slog.Warn("データベース作成を再試行中", "attempt", attempt+1, "error", err.Error())
		time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
	}
	require.NoError(t, err, "テスト用データベースの作成に失敗")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		admin, err := pgxpool.New(ctx, adminDSN(host, port))
		if err != nil {
			return
		}
		defer admin.Close()
		if _, err := admin.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("テストデータベースの削除に失敗しました", "database", name, "error", err.Error())
		}
	})

	dbConfig := config.DBConfig{
		Host:     host,
		Port:     port,
		User:     pgUser,
		Password: pgPassword,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: "Asia/Colombo",
	}
	pool, _, err := db.Connect(dbConfig)
	require.NoError(t, err, "データベース接続に失敗")
	t.Cleanup(pool.Close)

	require.NoError(t, db.Migrate(ctx, pool, migrations.FS), "データベースマイグレーションに失敗")
	return pool, dbConfig
}

// buildApp assembles the HTTP stack over pool with checkin rate limiting off.
func buildApp(t *testing.T, pool *pgxpool.Pool, cfg config.Config) (*gin.Engine, commands.SettingCommands) {
	var (
		router   *gin.Engine
		settings commands.SettingCommands
	)
	app := fx.New(
		fx.Provide(
			func() shared.UnitOfWork { return uow.NewPostgresUoW(pool) },
			func() config.Config { return cfg },
			func() *gin.Engine { return gin.New() },
			func() middleware.RateLimiter { return nil },
		),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		bootstrap.MessagingModule,
		components.RenderModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router, &settings),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "fxアプリケーションの起動に失敗")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("fxアプリケーションの停止に失敗しました", "error", err.Error())
		}
	})
	return router, settings
}

// SharedSuite gives every e2e suite its own database and router.
type SharedSuite struct {
	suite.Suite
	Router   *gin.Engine
	DB       *pgxpool.Pool
	Config   config.Config
	Settings commands.SettingCommands
}

func (s *SharedSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	t := s.T()

	pool, dbConfig := prepareDatabase(t)
	s.DB = pool
	s.Config = config.NewTestConfig()
	s.Config.DB = dbConfig
	s.Router, s.Settings = buildApp(t, pool, s.Config)
}

// SetupSubTest truncates every table and reseeds the settings row.
func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "Failed to reset database state")

	defaults, err := bootstrap.DefaultSettingParams(s.Config.Event)
	require.NoError(s.T(), err)
	_, err = s.Settings.Ensure(s.T().Context(), defaults)
	require.NoError(s.T(), err, "Failed to seed settings")
}
