package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Shubhamjh4/airsense360/internal/sharecard"
)

// handleCard serves a share-card PNG for a location. Cache first; a fresh
// card is rendered on a miss and any cached card stands in if rendering
// fails.
func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	location, ok := s.requireLocation(w, r)
	if !ok {
		return
	}

	if data, ok := s.cards.Get(location); ok {
		s.serveCard(w, data)
		return
	}

	s.predMu.Lock()
	reading := s.predictor.Current(location)
	s.predMu.Unlock()

	data, err := sharecard.Generate(location, reading)
	if err != nil {
		requestLogger(r, s.logger).Error("render share card", zap.Error(err))
		if fallback, ok := s.cards.GetAny(); ok {
			s.serveCard(w, fallback)
			return
		}
		writeError(w, r, http.StatusInternalServerError, "CARD_UNAVAILABLE", "could not render share card")
		return
	}

	if err := s.cards.Set(location, data); err != nil {
		requestLogger(r, s.logger).Warn("cache share card", zap.Error(err))
	}
	s.serveCard(w, data)
}

func (s *Server) serveCard(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=900")
	w.Write(data)
}
