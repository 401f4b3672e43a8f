package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"legally/internal/advice"
	"legally/internal/app"
	"legally/internal/feedback"
	"legally/internal/httputil"
)

type adviceRequest struct {
	Question string `json:"question" validate:"max=2000"`
}

type feedbackRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
	Response string `json:"response" validate:"required"`
	Feedback string `json:"feedback" validate:"max=2000"`
	Rating   int    `json:"rating" validate:"min=0,max=5"`
}

// adviceHandler always answers 200 when the body parses; failures are
// reported inside the advice text and the failed flag.
func adviceHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adviceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid request body", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		res := deps.Processor.Answer(r.Context(), req.Question)
		httputil.WriteJSON(w, http.StatusOK, res)
	}
}

func samplesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, advice.Samples())
	}
}

func cacheStatsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := deps.Cache.Len(r.Context())
		if err != nil {
			httputil.Fail(deps.Log, w, "cache unavailable", err, http.StatusServiceUnavailable)
			return
		}
		stats := deps.Cache.Stats()
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"entries": n,
			"hits":    stats.Hits,
			"misses":  stats.Misses,
		})
	}
}

func feedbackHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req feedbackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid request body", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		rec := feedback.Record{
			ID:        uuid.New(),
			Question:  req.Question,
			Response:  req.Response,
			Feedback:  req.Feedback,
			Rating:    req.Rating,
			CreatedAt: time.Now().UTC(),
		}
		if err := feedback.PublishWithRetry(r.Context(), deps.Feedback, rec, 3, 200*time.Millisecond); err != nil {
			httputil.Fail(deps.Log.With("feedback_id", rec.ID), w, "failed to record feedback; please retry", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusAccepted, map[string]any{"id": rec.ID.String()})
	}
}
