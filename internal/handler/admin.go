package handler

import (
	"net/http"

	"github.com/osse101/stardust-engine/internal/catalog"
	"github.com/osse101/stardust-engine/internal/domain"
	"github.com/osse101/stardust-engine/internal/logger"
	"github.com/osse101/stardust-engine/internal/player"
)

// AdminHandler serves operations restricted to the administrator.
// The services enforce the admin gate; this layer only forwards the caller.
type AdminHandler struct {
	catalog catalog.Service
	players player.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(catalog catalog.Service, players player.Service) *AdminHandler {
	return &AdminHandler{catalog: catalog, players: players}
}

// GrantExperienceRequest is the amount of experience to grant
type GrantExperienceRequest struct {
	Amount uint64 `json:"amount" validate:"required,gt=0"`
}

// InitializeMissionsResponse lists the ids created by a seed run
type InitializeMissionsResponse struct {
	Message string   `json:"message"`
	Created []uint64 `json:"created"`
}

// HandleCreateMission adds a template to the catalog
// @Summary Create a mission template
// @Tags admin
// @Accept json
// @Produce json
// @Param X-Player-Address header string true "Admin address"
// @Param request body domain.MissionTemplate true "Template"
// @Success 201 {object} DataResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/admin/missions [post]
func (h *AdminHandler) HandleCreateMission(w http.ResponseWriter, r *http.Request) {
	caller, ok := RequireCaller(w, r)
	if !ok {
		return
	}

	var tmpl domain.MissionTemplate
	if err := DecodeAndValidateRequest(r, w, &tmpl, "Create mission"); err != nil {
		return
	}

	created, err := h.catalog.Create(r.Context(), caller, tmpl)
	if err != nil {
		respondServiceError(w, r, ErrMsgCreateMissionFailed, err)
		return
	}

	logger.FromContext(r.Context()).Info("Mission created", "mission_id", created.ID, "admin", caller)
	respondJSON(w, http.StatusCreated, DataResponse{Message: MsgMissionCreated, Data: created})
}

// HandleInitializeMissions seeds the chapter 1 catalog
// @Summary Seed chapter missions
// @Tags admin
// @Produce json
// @Param X-Player-Address header string true "Admin address"
// @Success 200 {object} InitializeMissionsResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/admin/missions/initialize [post]
func (h *AdminHandler) HandleInitializeMissions(w http.ResponseWriter, r *http.Request) {
	caller, ok := RequireCaller(w, r)
	if !ok {
		return
	}

	created, err := h.catalog.InitializeChapterMissions(r.Context(), caller)
	if err != nil {
		respondServiceError(w, r, ErrMsgInitMissionsFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, InitializeMissionsResponse{Message: MsgMissionsSeeded, Created: nonNilIDs(created)})
}

// HandleGrantExperience grants experience to a player
// @Summary Grant player experience
// @Tags admin
// @Accept json
// @Produce json
// @Param X-Player-Address header string true "Admin address"
// @Param address path string true "Player address"
// @Param request body GrantExperienceRequest true "Amount"
// @Success 200 {object} DataResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/admin/players/{address}/experience [post]
func (h *AdminHandler) HandleGrantExperience(w http.ResponseWriter, r *http.Request) {
	caller, ok := RequireCaller(w, r)
	if !ok {
		return
	}
	address, ok := GetAddressParam(w, r)
	if !ok {
		return
	}

	var req GrantExperienceRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Grant experience"); err != nil {
		return
	}

	p, err := h.players.GrantExperience(r.Context(), caller, address, req.Amount)
	if err != nil {
		respondServiceError(w, r, ErrMsgGrantExperienceFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: MsgExperienceGranted, Data: p})
}

// HandlePlatformStats returns registry-wide totals
// @Summary Platform statistics
// @Tags stats
// @Produce json
// @Success 200 {object} domain.PlatformStats
// @Router /api/v1/stats/platform [get]
func HandlePlatformStats(players player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := players.PlatformStats(r.Context())
		if err != nil {
			respondServiceError(w, r, ErrMsgPlatformStatsFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, stats)
	}
}
