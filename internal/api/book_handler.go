package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mjgrant/bookrec-api/internal/api/shared"
	"github.com/mjgrant/bookrec-api/internal/metrics"
	"github.com/mjgrant/bookrec-api/internal/platform/logger"
	"github.com/mjgrant/bookrec-api/internal/service/catalog"
	"github.com/mjgrant/bookrec-api/internal/service/review"
)

// BookHandler handles book-related HTTP requests: genre suggestions,
// review listing, and review submission.
type BookHandler struct {
	catalog   catalog.Service
	reviews   review.Service
	recorder  metrics.Recorder
	validator *validator.Validate
	logger    *slog.Logger
}

// NewBookHandler creates a new BookHandler with its dependencies. The
// recorder may be nil when metrics are disabled.
func NewBookHandler(
	catalogSvc catalog.Service,
	reviewSvc review.Service,
	recorder metrics.Recorder,
	log *slog.Logger,
) *BookHandler {
	if catalogSvc == nil {
		panic("catalogSvc cannot be nil")
	}
	if reviewSvc == nil {
		panic("reviewSvc cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &BookHandler{
		catalog:   catalogSvc,
		reviews:   reviewSvc,
		recorder:  recorder,
		validator: validator.New(),
		logger:    log.With(slog.String("component", "book_handler")),
	}
}

// SuggestByGenre handles GET /api/books/suggest?genre=<genre>. The match
// is exact and case-sensitive; an unknown or empty genre yields an empty
// list, never an error.
func (h *BookHandler) SuggestByGenre(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	genre := r.URL.Query().Get("genre")

	books, err := h.catalog.SuggestByGenre(ctx, genre)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	resp := make([]BookResponse, 0, len(books))
	for _, b := range books {
		resp = append(resp, NewBookResponse(b))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// ListReviews handles GET /api/books/{bookID}/reviews. Reviews come back
// in append order with usernames resolved. An unknown book yields 404
// rather than an empty list.
func (h *BookHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bookID, err := uuid.Parse(chi.URLParam(r, "bookID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid book ID")
		return
	}

	reviews, err := h.catalog.ListReviews(ctx, bookID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	resp := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		resp = append(resp, NewReviewResponse(&reviews[i]))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// AddReview handles POST /api/books/{bookID}/review. The endpoint sits
// behind bearer authentication; the reviewer identity comes from the
// request body. On success it responds 201 with the persisted review.
func (h *BookHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	bookID, err := uuid.Parse(chi.URLParam(r, "bookID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid book ID")
		return
	}

	var req AddReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "userId, review, and rating are required")
		return
	}

	persisted, err := h.reviews.AddReview(ctx, bookID, req.UserID, req.Review, req.Rating)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if h.recorder != nil {
		h.recorder.RecordReviewAdded()
	}

	log.Info("review added",
		slog.String("book_id", bookID.String()),
		slog.String("review_id", persisted.ID.String()))

	shared.RespondWithJSON(w, r, http.StatusCreated, NewReviewResponse(persisted))
}
