package item

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pardha-bandaru/cafeteria-api/internal/auth"
	"github.com/pardha-bandaru/cafeteria-api/internal/cafeteria"
	"github.com/pardha-bandaru/cafeteria-api/internal/database"
	"github.com/pardha-bandaru/cafeteria-api/internal/httputil"
	"github.com/pardha-bandaru/cafeteria-api/internal/logging"
)

// Handler contains HTTP handlers for item endpoints. Items live under a
// cafeteria, so every handler first resolves the cafeteria for the
// authenticated owner.
type Handler struct {
	repo     *Repository
	cafeRepo *cafeteria.Repository
	logger   *logging.Logger
	now      func() time.Time
}

func NewHandler(repo *Repository, cafeRepo *cafeteria.Repository, logger *logging.Logger) *Handler {
	return &Handler{
		repo:     repo,
		cafeRepo: cafeRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// Request represents the item create/update request body
type Request struct {
	Name           string                        `json:"name"`
	AvailableHours []database.AvailabilityWindow `json:"item_available_hours"`
}

// Create handles item creation under a cafeteria
// @Summary      Create an item
// @Tags         item
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        cafeID path int true "Cafeteria ID"
// @Param        request body Request true "Item details"
// @Success      201 {object} httputil.Response
// @Failure      400 {object} httputil.Response "Validation error"
// @Failure      404 {object} httputil.Response "Cafeteria not found"
// @Router       /user/cafeteria/{cafeID}/item/ [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	cafe, ok := h.resolveCafeteria(w, r)
	if !ok {
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondFail(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	if err := ValidateAvailability(req.AvailableHours); err != nil {
		httputil.RespondFail(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}

	created, err := h.repo.Create(r.Context(), &Item{
		CafeteriaID:    cafe.ID,
		Name:           req.Name,
		AvailableHours: req.AvailableHours,
	})
	if err != nil {
		logger.Error("failed to create item", "error", err.Error())
		httputil.RespondFail(w, "failed to create item", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("item created", "item_id", created.ID, "cafe_id", cafe.ID)

	httputil.RespondData(w, created, http.StatusCreated)
}

// List handles listing a cafeteria's items currently being served
// @Summary      List items available now
// @Tags         item
// @Produce      json
// @Security     BearerAuth
// @Param        cafeID path int true "Cafeteria ID"
// @Success      200 {object} httputil.Response
// @Failure      404 {object} httputil.Response "Cafeteria not found"
// @Router       /user/cafeteria/{cafeID}/item/ [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	cafe, ok := h.resolveCafeteria(w, r)
	if !ok {
		return
	}

	items, err := h.repo.ListByCafeteria(r.Context(), cafe.ID)
	if err != nil {
		logger.Error("failed to list items", "error", err.Error())
		httputil.RespondFail(w, "failed to list items", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondData(w, FilterAvailable(items, h.now()), http.StatusOK)
}

// Get handles fetching a single item
// @Summary      Get an item
// @Tags         item
// @Produce      json
// @Security     BearerAuth
// @Param        cafeID path int true "Cafeteria ID"
// @Param        itemID path int true "Item ID"
// @Success      200 {object} httputil.Response
// @Failure      404 {object} httputil.Response "Not found"
// @Router       /user/cafeteria/{cafeID}/item/{itemID} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	cafe, ok := h.resolveCafeteria(w, r)
	if !ok {
		return
	}

	itemID, ok := parseID(w, r, "itemID")
	if !ok {
		return
	}

	found, err := h.repo.GetByID(r.Context(), itemID, cafe.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondFail(w, "item not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to get item", "error", err.Error())
		httputil.RespondFail(w, "failed to get item", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondData(w, found, http.StatusOK)
}

// Update handles replacing an item's name and availability
// @Summary      Update an item
// @Tags         item
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        cafeID path int true "Cafeteria ID"
// @Param        itemID path int true "Item ID"
// @Param        request body Request true "Fields to update"
// @Success      200 {object} httputil.Response
// @Failure      404 {object} httputil.Response "Not found"
// @Router       /user/cafeteria/{cafeID}/item/{itemID} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	cafe, ok := h.resolveCafeteria(w, r)
	if !ok {
		return
	}

	itemID, ok := parseID(w, r, "itemID")
	if !ok {
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondFail(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	if err := ValidateAvailability(req.AvailableHours); err != nil {
		httputil.RespondFail(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}

	updated, err := h.repo.Update(r.Context(), &Item{
		ID:             itemID,
		CafeteriaID:    cafe.ID,
		Name:           req.Name,
		AvailableHours: req.AvailableHours,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondFail(w, "item not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to update item", "error", err.Error())
		httputil.RespondFail(w, "failed to update item", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondData(w, updated, http.StatusOK)
}

// Delete handles removing an item
// @Summary      Delete an item
// @Tags         item
// @Produce      json
// @Security     BearerAuth
// @Param        cafeID path int true "Cafeteria ID"
// @Param        itemID path int true "Item ID"
// @Success      200 {object} httputil.Response
// @Failure      404 {object} httputil.Response "Not found"
// @Router       /user/cafeteria/{cafeID}/item/{itemID} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	cafe, ok := h.resolveCafeteria(w, r)
	if !ok {
		return
	}

	itemID, ok := parseID(w, r, "itemID")
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), itemID, cafe.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondFail(w, "item not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to delete item", "error", err.Error())
		httputil.RespondFail(w, "failed to delete item", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("item deleted", "item_id", itemID, "cafe_id", cafe.ID)

	httputil.RespondSuccess(w, "item deleted successfully", http.StatusOK)
}

// resolveCafeteria loads the cafeteria from the URL for the authenticated
// owner, writing the rejection itself when that fails.
func (h *Handler) resolveCafeteria(w http.ResponseWriter, r *http.Request) (*cafeteria.Cafeteria, bool) {
	logger := logging.GetLoggerFromContext(r.Context())
	owner, _ := auth.UserFromContext(r.Context())

	cafeID, ok := parseID(w, r, "cafeID")
	if !ok {
		return nil, false
	}

	cafe, err := h.cafeRepo.GetByIDForOwner(r.Context(), cafeID, owner.ID)
	if err != nil {
		if errors.Is(err, cafeteria.ErrNotFound) {
			httputil.RespondFail(w, "cafeteria not found", httputil.CodeNotFound, http.StatusNotFound)
			return nil, false
		}
		logger.Error("failed to resolve cafeteria", "error", err.Error())
		httputil.RespondFail(w, "failed to resolve cafeteria", httputil.CodeInternalError, http.StatusInternalServerError)
		return nil, false
	}

	return cafe, true
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
