package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/rakhimovb/staylist/internal/auth/http"
	authservice "github.com/rakhimovb/staylist/internal/auth/service"
	cityhttp "github.com/rakhimovb/staylist/internal/city/http"
	"github.com/rakhimovb/staylist/internal/common/bootstrap"
	commoncrypto "github.com/rakhimovb/staylist/internal/common/crypto"
	commonhttp "github.com/rakhimovb/staylist/internal/common/http"
	srv "github.com/rakhimovb/staylist/internal/common/server"
	"github.com/rakhimovb/staylist/internal/common/tokenauth"
	itemhttp "github.com/rakhimovb/staylist/internal/item/http"
	itemservice "github.com/rakhimovb/staylist/internal/item/service"
	listingshttp "github.com/rakhimovb/staylist/internal/listings/http"
	"github.com/rakhimovb/staylist/internal/listings/provider"
)

func main() {
	app, err := bootstrap.NewAPIApp()
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to bootstrap api service: %v\n", err))
		os.Exit(1)
	}
	log := app.Log

	hasher := &commoncrypto.BcryptHasher{}
	idGenerator := &commoncrypto.UUIDGenerator{}
	tokenGenerator := &commoncrypto.RandomTokenGenerator{}

	authService := authservice.NewAuthService(app.UserRepo, hasher, idGenerator, tokenGenerator, log)
	itemService := itemservice.NewItemService(app.ItemRepo, idGenerator, log)
	providerClient := provider.NewClient(app.Config.Provider)

	gate := tokenauth.Middleware(authService, log)

	sessionHandler := authhttp.NewHandler(authService, log)
	itemHandler := itemhttp.NewHandler(itemService, gate, log)

	mux := http.NewServeMux()
	mux.Handle("/signup", sessionHandler)
	mux.Handle("/login", sessionHandler)
	mux.Handle("/logout", sessionHandler)
	mux.Handle("/items", itemHandler)
	mux.Handle("/items/", itemHandler)
	mux.Handle("/cities", cityhttp.NewHandler(app.CityRepo, log))
	mux.Handle("/listings", listingshttp.NewHandler(providerClient, log))
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.Handle("/metrics", promhttp.Handler())

	rateLimiter := commonhttp.NewStrictRateLimiter()
	baseHandler := commonhttp.BuildBaseHandler(log, mux)

	rateLimitMiddleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "/health" || path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}
			rateLimiter.MiddlewareForPath(path)(next).ServeHTTP(w, r)
		})
	}

	finalHandler := rateLimitMiddleware(baseHandler)

	server := srv.New(app.Config.HTTPPort, finalHandler)

	shutdownHooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			log.Infof("api service: closing database pool")
			app.Pool.Close()
			return nil
		},
	}

	srv.StartWithGracefulShutdown(server, log, "api", shutdownHooks)
}
