package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/redcore/yabutech-api/pkg/auth"
	"github.com/redcore/yabutech-api/pkg/bootstrap"
	"github.com/redcore/yabutech-api/pkg/config"
	"github.com/redcore/yabutech-api/pkg/login"
	loginapi "github.com/redcore/yabutech-api/pkg/login/api"
	"github.com/redcore/yabutech-api/pkg/role"
	roleapi "github.com/redcore/yabutech-api/pkg/role/api"
	"github.com/redcore/yabutech-api/pkg/router"
	"github.com/redcore/yabutech-api/pkg/token"
	"github.com/redcore/yabutech-api/pkg/user"
	userapi "github.com/redcore/yabutech-api/pkg/user/api"
)

type Config struct {
	App   config.AppConfig
	Db    config.DatabaseConfig
	Token config.TokenConfig
	Cors  config.CorsConfig
}

func main() {
	cfg := Config{}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		slog.Error("Failed reading config", "err", err)
		os.Exit(-1)
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.Db.ToDatabaseURL())
	if err != nil {
		slog.Error("Failed creating dbpool", "db", cfg.Db.Database, "host", cfg.Db.Host, "port", cfg.Db.Port, "user", cfg.Db.User)
		os.Exit(-1)
	}
	defer pool.Close()

	roleRepo := role.NewPostgresRoleRepository(pool)
	userRepo := user.NewPostgresUserRepository(pool)
	tokenRepo := token.NewPostgresTokenRepository(pool)

	hasher := &login.BcryptHasher{}

	if _, err := bootstrap.SeedRoles(ctx, roleRepo); err != nil {
		slog.Error("Failed seeding roles", "err", err)
		os.Exit(-1)
	}
	if _, err := bootstrap.SeedAdminUser(ctx, userRepo, roleRepo, hasher); err != nil {
		slog.Error("Failed seeding admin user", "err", err)
		os.Exit(-1)
	}

	var tokenOpts []token.Option
	if cfg.Token.ExpiryMinutes > 0 {
		tokenOpts = append(tokenOpts, token.WithExpiry(time.Duration(cfg.Token.ExpiryMinutes)*time.Minute))
	}
	tokens := token.NewTokenService(tokenRepo, tokenOpts...)
	roleService := role.NewRoleService(roleRepo)
	userService := user.NewUserService(userRepo, roleRepo, hasher)
	loginService := login.NewLoginService(userRepo, userService, tokens, hasher)

	r := router.New(router.Config{
		LoginHandle:    loginapi.NewHandle(loginService),
		RoleHandle:     roleapi.NewHandle(roleService),
		UserHandle:     userapi.NewHandle(userService),
		AuthMiddleware: auth.Middleware(tokens, userRepo),
		AllowedOrigins: cfg.Cors.AllowedOrigins,
	})

	slog.Info("Starting server", "addr", cfg.App.Addr())
	if err := http.ListenAndServe(cfg.App.Addr(), r); err != nil {
		slog.Error("Server stopped", "err", err)
		os.Exit(-1)
	}
}
