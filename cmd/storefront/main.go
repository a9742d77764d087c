package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/example/larek-store/internal/adapter/httpapi"
	"github.com/example/larek-store/internal/adapter/shopapi"
	"github.com/example/larek-store/internal/app"
	"github.com/example/larek-store/internal/events"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	shop := shopapi.New(
		getenv("SHOP_URL", "http://localhost:8081"),
		getenv("CDN_URL", "https://cdn.larek.example"),
	)

	bus := events.NewBus()
	session := app.New(bus, shop, log)

	// Каталог подтягивается при старте; без него витрина поднимется
	// пустой и отдаст каталог после рестарта магазина.
	if err := session.LoadCatalog(ctx); err != nil {
		log.Error("load catalog", zap.Error(err))
	}

	server := httpapi.NewStorefrontServer(session, log)
	srv := &http.Server{Addr: getenv("ADDR", ":8080"), Handler: server.Router}
	go func() {
		log.Info("storefront listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = srv.Shutdown(shutdownCtx)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
