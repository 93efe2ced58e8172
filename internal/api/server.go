package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Shubhamjh4/airsense360/internal/predictor"
	"github.com/Shubhamjh4/airsense360/internal/sharecard"
	"github.com/Shubhamjh4/airsense360/internal/store"
)

// Server exposes the predictor over HTTP. The predictor is not safe for
// concurrent use, so every prediction goes through predMu; the mutex is
// shared with the snapshot scheduler when both run.
type Server struct {
	predictor *predictor.Predictor
	store     *store.Store
	cards     *sharecard.Cache
	logger    *zap.Logger
	addr      string
	limiter   *rate.Limiter
	predMu    *sync.Mutex
}

// NewServer wires the server. A nil limiter disables rate limiting; a nil
// predMu gets a private mutex.
func NewServer(pred *predictor.Predictor, st *store.Store, cards *sharecard.Cache, logger *zap.Logger, addr string, limiter *rate.Limiter, predMu *sync.Mutex) *Server {
	if predMu == nil {
		predMu = &sync.Mutex{}
	}
	return &Server{
		predictor: pred,
		store:     st,
		cards:     cards,
		logger:    logger,
		addr:      addr,
		limiter:   limiter,
		predMu:    predMu,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/current", s.handleCurrent)
	mux.HandleFunc("/api/forecast", s.handleForecast)
	mux.HandleFunc("/api/nearby", s.handleNearby)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/card.png", s.handleCard)
	mux.Handle("/metrics", promhttp.Handler())

	var handler http.Handler = mux
	handler = RateLimit(s.limiter)(handler)
	handler = Metrics(handler)
	handler = CorrelationID(s.logger)(handler)
	return handler
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("server: listening", zap.String("addr", s.addr))
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
