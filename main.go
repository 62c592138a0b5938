package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "busfleet/internal/config"
	intdb "busfleet/internal/db"
	inthttp "busfleet/internal/http"
	"busfleet/internal/http/handlers"
	"busfleet/internal/services"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	env := intconfig.LoadEnv()
	if env.CompanyPct+env.StationPct+env.DriverPct != 100 {
		log.Fatalf("revenue percentages must sum to 100, got %d/%d/%d",
			env.CompanyPct, env.StationPct, env.DriverPct)
	}
	handlers.Configure(env)

	db := intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	for _, table := range []string{"users", "tickets", "bookings", "vehicles", "trip_logs"} {
		if !intdb.HasTable(db, table) {
			log.Warnf("table %q not found; run migrations before serving traffic", table)
		}
	}
	if intdb.HasTable(db, "bookings") && !intdb.HasColumn(db, "bookings", "ticket_nos") {
		log.Warn("bookings.ticket_nos column missing; approvals cannot store generated ticket numbers")
	}

	router := inthttp.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopAutoCheckout := make(chan struct{})
	if env.AutoCheckoutEnabled {
		go runAutoCheckout(env, stopAutoCheckout)
	}

	go func() {
		log.Infof("listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	close(stopAutoCheckout)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("forced shutdown: %v", err)
	}
	log.Info("server stopped")
}

// runAutoCheckout checks all drivers out on a fixed interval so nobody stays
// marked on duty overnight.
func runAutoCheckout(env intconfig.Env, stop <-chan struct{}) {
	interval := time.Duration(env.AutoCheckoutHours) * time.Hour
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	svc := services.CheckinService{}
	for {
		select {
		case <-ticker.C:
			n, err := svc.AutoCheckout()
			if err != nil {
				log.Errorf("auto checkout failed: %v", err)
				continue
			}
			if n > 0 {
				log.Infof("auto checkout: %d driver(s)", n)
			}
		case <-stop:
			return
		}
	}
}
