package handler

import (
	"net/http"

	"github.com/osse101/stardust-engine/internal/catalog"
	"github.com/osse101/stardust-engine/internal/domain"
	"github.com/osse101/stardust-engine/internal/quest"
)

// MissionHandler serves the mission catalog and mission progression
type MissionHandler struct {
	catalog catalog.Service
	quests  quest.Service
}

// NewMissionHandler creates a new mission handler
func NewMissionHandler(catalog catalog.Service, quests quest.Service) *MissionHandler {
	return &MissionHandler{catalog: catalog, quests: quests}
}

// MissionsResponse lists catalog templates
type MissionsResponse struct {
	Missions []domain.MissionTemplate `json:"missions"`
}

// CompleteObjectiveRequest carries the proof for an objective.
// CollectAssets reads proof as asset ids the caller owns; JoinTournament and
// ExploreTerritory only require it to be non-empty.
type CompleteObjectiveRequest struct {
	ProofAssets []uint64 `json:"proof_assets" validate:"max=64"`
}

// HandleListMissions lists every catalog template in id order
// @Summary List missions
// @Tags missions
// @Produce json
// @Success 200 {object} MissionsResponse
// @Router /api/v1/missions [get]
func (h *MissionHandler) HandleListMissions(w http.ResponseWriter, r *http.Request) {
	missions, err := h.catalog.List(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgListMissionsFailed, err)
		return
	}
	if missions == nil {
		missions = []domain.MissionTemplate{}
	}

	respondJSON(w, http.StatusOK, MissionsResponse{Missions: missions})
}

// HandleGetMission returns one catalog template
// @Summary Get a mission
// @Tags missions
// @Produce json
// @Param id path int true "Mission id"
// @Success 200 {object} domain.MissionTemplate
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/missions/{id} [get]
func (h *MissionHandler) HandleGetMission(w http.ResponseWriter, r *http.Request) {
	missionID, ok := GetIDParam(w, r, ParamID)
	if !ok {
		return
	}

	m, err := h.catalog.Get(r.Context(), missionID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetMissionFailed, err)
		return
	}
	if m == nil {
		respondError(w, http.StatusNotFound, ErrMsgMissionNotFoundHTTP)
		return
	}

	respondJSON(w, http.StatusOK, m)
}

// HandleStartMission starts a mission for the caller
// @Summary Start a mission
// @Tags missions
// @Produce json
// @Param X-Player-Address header string true "Caller address"
// @Param id path int true "Mission id"
// @Success 201 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/missions/{id}/start [post]
func (h *MissionHandler) HandleStartMission(w http.ResponseWriter, r *http.Request) {
	caller, ok := RequireCaller(w, r)
	if !ok {
		return
	}
	missionID, ok := GetIDParam(w, r, ParamID)
	if !ok {
		return
	}

	pm, err := h.quests.Start(r.Context(), caller, missionID)
	if err != nil {
		respondServiceError(w, r, ErrMsgStartMissionFailed, err)
		return
	}

	respondJSON(w, http.StatusCreated, DataResponse{Message: MsgMissionStarted, Data: pm})
}

// HandleCompleteObjective records an objective for the caller's active mission
// @Summary Complete a mission objective
// @Tags missions
// @Accept json
// @Produce json
// @Param X-Player-Address header string true "Caller address"
// @Param id path int true "Mission id"
// @Param objectiveID path int true "Objective id"
// @Param request body CompleteObjectiveRequest true "Proof"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/missions/{id}/objectives/{objectiveID}/complete [post]
func (h *MissionHandler) HandleCompleteObjective(w http.ResponseWriter, r *http.Request) {
	caller, ok := RequireCaller(w, r)
	if !ok {
		return
	}
	missionID, ok := GetIDParam(w, r, ParamID)
	if !ok {
		return
	}
	objectiveID, ok := GetIDParam(w, r, ParamObjectiveID)
	if !ok {
		return
	}

	var req CompleteObjectiveRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Complete objective"); err != nil {
		return
	}

	result, err := h.quests.CompleteObjective(r.Context(), caller, missionID, objectiveID, req.ProofAssets)
	if err != nil {
		respondServiceError(w, r, ErrMsgCompleteObjectiveFail, err)
		return
	}

	message := MsgObjectiveCompleted
	if result.Grant != nil {
		message = MsgMissionCompleted
	}
	respondJSON(w, http.StatusOK, DataResponse{Message: message, Data: result})
}
