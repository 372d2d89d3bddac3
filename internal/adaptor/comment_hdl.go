package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"review-hub/internal/access"
	"review-hub/internal/dto/request"
	"review-hub/internal/usecase"
	"review-hub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CommentHandler struct {
	service usecase.CommentService
	log     *zap.Logger
}

func NewCommentHandler(service usecase.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		log:     log.With(zap.String("handler", "comment")),
	}
}

// CreateComment handles POST /api/v1/titles/{titleID}/reviews/{reviewID}/comments (authenticated)
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	caller, ok := access.CallerFrom(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	titleID := chi.URLParam(r, "titleID")
	reviewID := chi.URLParam(r, "reviewID")
	if titleID == "" || reviewID == "" {
		utils.ResponseBadRequest(w, "Title ID and review ID are required", nil)
		return
	}

	var req request.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	comment, err := h.service.CreateComment(r.Context(), caller, titleID, reviewID, &req)
	if err != nil {
		h.handleServiceError(w, err, "create comment")
		return
	}

	utils.ResponseCreated(w, "success", comment)
}

// GetComments handles GET /api/v1/titles/{titleID}/reviews/{reviewID}/comments (public)
func (h *CommentHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "titleID")
	reviewID := chi.URLParam(r, "reviewID")
	if titleID == "" || reviewID == "" {
		utils.ResponseBadRequest(w, "Title ID and review ID are required", nil)
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	comments, err := h.service.GetComments(r.Context(), titleID, reviewID, req)
	if err != nil {
		h.handleServiceError(w, err, "get comments")
		return
	}

	utils.ResponseSuccess(w, "success", comments)
}

// GetComment handles GET /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID} (public)
func (h *CommentHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "titleID")
	reviewID := chi.URLParam(r, "reviewID")
	commentID := chi.URLParam(r, "commentID")
	if titleID == "" || reviewID == "" || commentID == "" {
		utils.ResponseBadRequest(w, "Title ID, review ID and comment ID are required", nil)
		return
	}

	comment, err := h.service.GetComment(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		h.handleServiceError(w, err, "get comment")
		return
	}

	utils.ResponseSuccess(w, "success", comment)
}

// UpdateComment handles PATCH /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID} (author, moderator or admin)
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	caller, ok := access.CallerFrom(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	titleID := chi.URLParam(r, "titleID")
	reviewID := chi.URLParam(r, "reviewID")
	commentID := chi.URLParam(r, "commentID")
	if titleID == "" || reviewID == "" || commentID == "" {
		utils.ResponseBadRequest(w, "Title ID, review ID and comment ID are required", nil)
		return
	}

	var req request.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	comment, err := h.service.UpdateComment(r.Context(), caller, titleID, reviewID, commentID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update comment")
		return
	}

	utils.ResponseSuccess(w, "success", comment)
}

// DeleteComment handles DELETE /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID} (author, moderator or admin)
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	caller, ok := access.CallerFrom(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	titleID := chi.URLParam(r, "titleID")
	reviewID := chi.URLParam(r, "reviewID")
	commentID := chi.URLParam(r, "commentID")
	if titleID == "" || reviewID == "" || commentID == "" {
		utils.ResponseBadRequest(w, "Title ID, review ID and comment ID are required", nil)
		return
	}

	if err := h.service.DeleteComment(r.Context(), caller, titleID, reviewID, commentID); err != nil {
		h.handleServiceError(w, err, "delete comment")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// handleServiceError handles errors for comment operations
func (h *CommentHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "forbidden"):
		h.log.Warn(operation+" failed - forbidden",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
