package handler

import (
	"net/http"

	"github.com/osse101/stardust-engine/internal/asset"
	"github.com/osse101/stardust-engine/internal/battle"
	"github.com/osse101/stardust-engine/internal/domain"
	"github.com/osse101/stardust-engine/internal/logger"
	"github.com/osse101/stardust-engine/internal/player"
	"github.com/osse101/stardust-engine/internal/quest"
)

// PlayerHandler serves player registration and the per-player read views
type PlayerHandler struct {
	players player.Service
	assets  asset.Service
	battles battle.Service
	quests  quest.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(players player.Service, assets asset.Service, battles battle.Service, quests quest.Service) *PlayerHandler {
	return &PlayerHandler{
		players: players,
		assets:  assets,
		battles: battles,
		quests:  quests,
	}
}

// AssetsResponse lists assets
type AssetsResponse struct {
	Assets []domain.GameAsset `json:"assets"`
}

// IDsResponse lists battle or mission ids
type IDsResponse struct {
	IDs []uint64 `json:"ids"`
}

// PlayerMissionsResponse lists a player's mission instances
type PlayerMissionsResponse struct {
	Missions []domain.PlayerMission `json:"missions"`
}

// HandleRegister registers the caller
// @Summary Register the caller as a player
// @Tags players
// @Produce json
// @Param X-Player-Address header string true "Caller address"
// @Success 201 {object} DataResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/players/register [post]
func (h *PlayerHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	caller, ok := RequireCaller(w, r)
	if !ok {
		return
	}

	p, err := h.players.Register(r.Context(), caller)
	if err != nil {
		respondServiceError(w, r, ErrMsgRegisterPlayerFailed, err)
		return
	}

	logger.FromContext(r.Context()).Info("Player registered", "address", p.Address)
	respondJSON(w, http.StatusCreated, DataResponse{Message: MsgPlayerRegistered, Data: p})
}

// HandleGetPlayer returns a player record
// @Summary Get a player
// @Tags players
// @Produce json
// @Param address path string true "Player address"
// @Success 200 {object} domain.Player
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/players/{address} [get]
func (h *PlayerHandler) HandleGetPlayer(w http.ResponseWriter, r *http.Request) {
	address, ok := GetAddressParam(w, r)
	if !ok {
		return
	}

	p, err := h.players.GetPlayer(r.Context(), address)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetPlayerFailed, err)
		return
	}
	if p == nil {
		respondError(w, http.StatusNotFound, ErrMsgPlayerNotFoundHTTP)
		return
	}

	respondJSON(w, http.StatusOK, p)
}

// HandleGetProfile returns the aggregated profile of a player
// @Summary Get a player profile
// @Tags players
// @Produce json
// @Param address path string true "Player address"
// @Success 200 {object} domain.PlayerProfile
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/players/{address}/profile [get]
func (h *PlayerHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	address, ok := GetAddressParam(w, r)
	if !ok {
		return
	}

	profile, err := h.players.GetProfile(r.Context(), address)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetProfileFailed, err)
		return
	}
	if profile == nil {
		respondError(w, http.StatusNotFound, ErrMsgPlayerNotFoundHTTP)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// HandleListAssets lists the assets a player owns
// @Summary List a player's assets
// @Tags players
// @Produce json
// @Param address path string true "Player address"
// @Success 200 {object} AssetsResponse
// @Router /api/v1/players/{address}/assets [get]
func (h *PlayerHandler) HandleListAssets(w http.ResponseWriter, r *http.Request) {
	address, ok := GetAddressParam(w, r)
	if !ok {
		return
	}

	assets, err := h.assets.ListByOwner(r.Context(), address)
	if err != nil {
		respondServiceError(w, r, ErrMsgListAssetsFailed, err)
		return
	}
	if assets == nil {
		assets = []domain.GameAsset{}
	}

	respondJSON(w, http.StatusOK, AssetsResponse{Assets: assets})
}

// HandleListBattles lists the ids of battles a player took part in
// @Summary List a player's battles
// @Tags players
// @Produce json
// @Param address path string true "Player address"
// @Success 200 {object} IDsResponse
// @Router /api/v1/players/{address}/battles [get]
func (h *PlayerHandler) HandleListBattles(w http.ResponseWriter, r *http.Request) {
	address, ok := GetAddressParam(w, r)
	if !ok {
		return
	}

	ids, err := h.battles.ListPlayerBattles(r.Context(), address)
	if err != nil {
		respondServiceError(w, r, ErrMsgListBattlesFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, IDsResponse{IDs: nonNilIDs(ids)})
}

// HandleListActiveMissions lists the player's active mission instances
// @Summary List active missions
// @Tags players
// @Produce json
// @Param address path string true "Player address"
// @Success 200 {object} PlayerMissionsResponse
// @Router /api/v1/players/{address}/missions/active [get]
func (h *PlayerHandler) HandleListActiveMissions(w http.ResponseWriter, r *http.Request) {
	address, ok := GetAddressParam(w, r)
	if !ok {
		return
	}

	missions, err := h.quests.ListActiveMissions(r.Context(), address)
	if err != nil {
		respondServiceError(w, r, ErrMsgListMissionsFailed, err)
		return
	}
	if missions == nil {
		missions = []domain.PlayerMission{}
	}

	respondJSON(w, http.StatusOK, PlayerMissionsResponse{Missions: missions})
}

// HandleListAvailableMissions lists the mission ids the player could start now
// @Summary List available missions
// @Tags players
// @Produce json
// @Param address path string true "Player address"
// @Success 200 {object} IDsResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/players/{address}/missions/available [get]
func (h *PlayerHandler) HandleListAvailableMissions(w http.ResponseWriter, r *http.Request) {
	address, ok := GetAddressParam(w, r)
	if !ok {
		return
	}

	ids, err := h.quests.ListAvailableMissions(r.Context(), address)
	if err != nil {
		respondServiceError(w, r, ErrMsgListMissionsFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, IDsResponse{IDs: nonNilIDs(ids)})
}

// HandleListCompletedMissions lists completed mission ids in completion order
// @Summary List completed missions
// @Tags players
// @Produce json
// @Param address path string true "Player address"
// @Success 200 {object} IDsResponse
// @Router /api/v1/players/{address}/missions/completed [get]
func (h *PlayerHandler) HandleListCompletedMissions(w http.ResponseWriter, r *http.Request) {
	address, ok := GetAddressParam(w, r)
	if !ok {
		return
	}

	ids, err := h.quests.ListCompletedMissions(r.Context(), address)
	if err != nil {
		respondServiceError(w, r, ErrMsgListMissionsFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, IDsResponse{IDs: nonNilIDs(ids)})
}

func nonNilIDs(ids []uint64) []uint64 {
	if ids == nil {
		return []uint64{}
	}
	return ids
}
