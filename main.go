package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	auth "github.com/chiuwenyu/singlephase/internal/auth"
	batch "github.com/chiuwenyu/singlephase/internal/calc/batch"
	importer "github.com/chiuwenyu/singlephase/internal/calc/importer"
	report "github.com/chiuwenyu/singlephase/internal/calc/report"
	singlephase "github.com/chiuwenyu/singlephase/internal/calc/singlephase"
	config "github.com/chiuwenyu/singlephase/internal/config"
	history "github.com/chiuwenyu/singlephase/internal/history"
	repo "github.com/chiuwenyu/singlephase/internal/repo"
	telemetry "github.com/chiuwenyu/singlephase/internal/telemetry"
)

var wg sync.WaitGroup

var startTime = time.Now()

type Deps struct {
	Users        repo.Users
	Calculations repo.Calculations
	TokenKey     []byte
	RateLimit    float64
	RateBurst    int
}

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, d Deps) {
	authEnv := &auth.Authenv{JWTkey: d.TokenKey, Repo: d.Users}
	limiter := auth.NewIPRateLimiter(rate.Limit(d.RateLimit), d.RateBurst)

	mux.Use(telemetry.Instrument)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "ok %s", time.Since(startTime).Round(time.Second))
	}).Methods("GET")
	mux.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	pipeH := &singlephase.Handler{}
	if d.Calculations != nil {
		pipeH.Recorder = d.Calculations
	}
	batchH := &batch.Handler{}
	importerH := &importer.Handler{}
	reportH := &report.Handler{}

	secureApi.HandleFunc("/tools/pipe/calc", pipeH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/pipe/batch", batchH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/pipe/import", importerH.Import).Methods("POST")
	secureApi.HandleFunc("/tools/pipe/export", importerH.Export).Methods("POST")
	secureApi.HandleFunc("/tools/pipe/report", reportH.Generate).Methods("POST")

	if d.Calculations != nil {
		historyH := &history.HistoryHandler{Repo: d.Calculations}
		secureApi.HandleFunc("/history", historyH.List).Methods("GET")
		secureApi.HandleFunc("/history/{id}", historyH.Get).Methods("GET")
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := telemetry.SetupLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := repo.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	store := repo.NewPostgresRepository(db)
	if err := store.Migrate(ctx); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	router := mux.NewRouter()
	HandleList(router, Deps{
		Users:        store,
		Calculations: store,
		TokenKey:     cfg.TokenKey,
		RateLimit:    cfg.RateLimit,
		RateBurst:    cfg.RateBurst,
	})
	handler := telemetry.Recovery(logger)(telemetry.Logging(logger)(CORS(router)))

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "addr", cfg.Addr, "tls", cfg.TLS())
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	wg.Wait()
	logger.Info("server stopped")
}
