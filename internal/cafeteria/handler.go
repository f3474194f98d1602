package cafeteria

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pardha-bandaru/cafeteria-api/internal/auth"
	"github.com/pardha-bandaru/cafeteria-api/internal/httputil"
	"github.com/pardha-bandaru/cafeteria-api/internal/logging"
)

// Handler contains HTTP handlers for cafeteria endpoints. All routes run
// behind the auth gate, so the owner is always present in the context.
type Handler struct {
	repo   *Repository
	logger *logging.Logger
}

func NewHandler(repo *Repository, logger *logging.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// CreateRequest represents the cafeteria creation request body
type CreateRequest struct {
	Name      string `json:"name"`
	City      string `json:"city"`
	Address   string `json:"address"`
	Pincode   int    `json:"pincode"`
	StartTime int    `json:"start_time"`
	CloseTime int    `json:"close_time"`
}

// UpdateRequest represents the cafeteria update request body
type UpdateRequest struct {
	Address string `json:"address"`
}

// Create handles cafeteria creation
// @Summary      Create a cafeteria
// @Tags         cafeteria
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateRequest true "Cafeteria details"
// @Success      201 {object} httputil.Response
// @Failure      400 {object} httputil.Response "Validation error"
// @Router       /user/cafeteria/ [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	owner, _ := auth.UserFromContext(r.Context())

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondFail(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	if err := ValidateHours(req.StartTime, req.CloseTime); err != nil {
		httputil.RespondFail(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}

	cafe, err := h.repo.Create(r.Context(), &Cafeteria{
		OwnerID:   owner.ID,
		Name:      req.Name,
		City:      req.City,
		Address:   req.Address,
		Pincode:   req.Pincode,
		StartTime: req.StartTime,
		CloseTime: req.CloseTime,
	})
	if err != nil {
		logger.Error("failed to create cafeteria", "error", err.Error())
		httputil.RespondFail(w, "failed to create cafeteria", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("cafeteria created", "cafe_id", cafe.ID, "owner_id", owner.ID)

	httputil.RespondData(w, cafe, http.StatusCreated)
}

// List handles listing the authenticated user's cafeterias
// @Summary      List own cafeterias
// @Tags         cafeteria
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} httputil.Response
// @Router       /user/cafeteria/ [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	owner, _ := auth.UserFromContext(r.Context())

	cafes, err := h.repo.ListByOwner(r.Context(), owner.ID)
	if err != nil {
		logger.Error("failed to list cafeterias", "error", err.Error())
		httputil.RespondFail(w, "failed to list cafeterias", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondData(w, cafes, http.StatusOK)
}

// Get handles fetching a single owned cafeteria
// @Summary      Get an owned cafeteria
// @Tags         cafeteria
// @Produce      json
// @Security     BearerAuth
// @Param        cafeID path int true "Cafeteria ID"
// @Success      200 {object} httputil.Response
// @Failure      404 {object} httputil.Response "Not found"
// @Router       /user/cafeteria/{cafeID} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	owner, _ := auth.UserFromContext(r.Context())

	cafeID, ok := parseID(w, r, "cafeID")
	if !ok {
		return
	}

	cafe, err := h.repo.GetByIDForOwner(r.Context(), cafeID, owner.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondFail(w, "cafeteria not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to get cafeteria", "error", err.Error())
		httputil.RespondFail(w, "failed to get cafeteria", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondData(w, cafe, http.StatusOK)
}

// Update handles updating an owned cafeteria's address
// @Summary      Update an owned cafeteria
// @Tags         cafeteria
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        cafeID path int true "Cafeteria ID"
// @Param        request body UpdateRequest true "Fields to update"
// @Success      200 {object} httputil.Response
// @Failure      404 {object} httputil.Response "Not found"
// @Router       /user/cafeteria/{cafeID} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	owner, _ := auth.UserFromContext(r.Context())

	cafeID, ok := parseID(w, r, "cafeID")
	if !ok {
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondFail(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	cafe, err := h.repo.UpdateAddress(r.Context(), cafeID, owner.ID, req.Address)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondFail(w, "cafeteria not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to update cafeteria", "error", err.Error())
		httputil.RespondFail(w, "failed to update cafeteria", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondData(w, cafe, http.StatusOK)
}

// Delete handles deleting an owned cafeteria
// @Summary      Delete an owned cafeteria
// @Tags         cafeteria
// @Produce      json
// @Security     BearerAuth
// @Param        cafeID path int true "Cafeteria ID"
// @Success      200 {object} httputil.Response
// @Failure      404 {object} httputil.Response "Not found"
// @Router       /user/cafeteria/{cafeID} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	owner, _ := auth.UserFromContext(r.Context())

	cafeID, ok := parseID(w, r, "cafeID")
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), cafeID, owner.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondFail(w, "cafeteria not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to delete cafeteria", "error", err.Error())
		httputil.RespondFail(w, "failed to delete cafeteria", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("cafeteria deleted", "cafe_id", cafeID, "owner_id", owner.ID)

	httputil.RespondSuccess(w, "cafeteria deleted successfully", http.StatusOK)
}

// parseID reads a positive integer URL parameter or writes a validation
// failure.
func parseID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		httputil.RespondFail(w, "invalid "+param, httputil.CodeValidationFailed, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
