package handler

import (
	"net/http"

	"github.com/osse101/stardust-engine/internal/battle"
	"github.com/osse101/stardust-engine/internal/domain"
	"github.com/osse101/stardust-engine/internal/logger"
)

// BattleHandler serves the battle lifecycle
type BattleHandler struct {
	battles battle.Service
}

// NewBattleHandler creates a new battle handler
func NewBattleHandler(battles battle.Service) *BattleHandler {
	return &BattleHandler{battles: battles}
}

// InitiateBattleRequest opens a challenge
type InitiateBattleRequest struct {
	Opponent   string   `json:"opponent" validate:"required,address"`
	AssetIDs   []uint64 `json:"asset_ids" validate:"dive,gt=0"`
	BattleType string   `json:"battle_type" validate:"required,battle_kind"`
}

// AcceptBattleRequest commits the defender's assets
type AcceptBattleRequest struct {
	AssetIDs []uint64 `json:"asset_ids" validate:"dive,gt=0"`
}

// SubmitMoveRequest is one turn's action
type SubmitMoveRequest struct {
	AssetID     uint64  `json:"asset_id" validate:"required,gt=0"`
	MoveType    string  `json:"move_type" validate:"required,move_kind"`
	TargetAsset *uint64 `json:"target_asset,omitempty"`
}

// HandleInitiate opens a challenge against an opponent
// @Summary Initiate a battle
// @Tags battles
// @Accept json
// @Produce json
// @Param X-Player-Address header string true "Caller address"
// @Param request body InitiateBattleRequest true "Challenge"
// @Success 201 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/battles [post]
func (h *BattleHandler) HandleInitiate(w http.ResponseWriter, r *http.Request) {
	caller, ok := RequireCaller(w, r)
	if !ok {
		return
	}

	var req InitiateBattleRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Initiate battle"); err != nil {
		return
	}

	kind, err := domain.ParseBattleKind(req.BattleType)
	if err != nil {
		respondServiceError(w, r, ErrMsgInitiateBattleFailed, err)
		return
	}

	b, err := h.battles.Initiate(r.Context(), caller, req.Opponent, req.AssetIDs, kind)
	if err != nil {
		respondServiceError(w, r, ErrMsgInitiateBattleFailed, err)
		return
	}

	respondJSON(w, http.StatusCreated, DataResponse{Message: MsgBattleInitiated, Data: b})
}

// HandleAccept commits the defender's assets and starts the battle
// @Summary Accept a battle
// @Tags battles
// @Accept json
// @Produce json
// @Param X-Player-Address header string true "Caller address"
// @Param id path int true "Battle id"
// @Param request body AcceptBattleRequest true "Defender assets"
// @Success 200 {object} DataResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/battles/{id}/accept [post]
func (h *BattleHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	caller, ok := RequireCaller(w, r)
	if !ok {
		return
	}
	battleID, ok := GetIDParam(w, r, ParamID)
	if !ok {
		return
	}

	var req AcceptBattleRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Accept battle"); err != nil {
		return
	}

	b, err := h.battles.Accept(r.Context(), caller, battleID, req.AssetIDs)
	if err != nil {
		respondServiceError(w, r, ErrMsgAcceptBattleFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: MsgBattleAccepted, Data: b})
}

// HandleSubmitMove records the caller's move for the current turn
// @Summary Submit a battle move
// @Tags battles
// @Accept json
// @Produce json
// @Param X-Player-Address header string true "Caller address"
// @Param id path int true "Battle id"
// @Param request body SubmitMoveRequest true "Move"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/battles/{id}/moves [post]
func (h *BattleHandler) HandleSubmitMove(w http.ResponseWriter, r *http.Request) {
	caller, ok := RequireCaller(w, r)
	if !ok {
		return
	}
	battleID, ok := GetIDParam(w, r, ParamID)
	if !ok {
		return
	}

	var req SubmitMoveRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Submit move"); err != nil {
		return
	}

	kind, err := domain.ParseMoveKind(req.MoveType)
	if err != nil {
		respondServiceError(w, r, ErrMsgSubmitMoveFailed, err)
		return
	}

	LogRequestFields(logger.FromContext(r.Context()), "battle_id", battleID, "asset_id", req.AssetID, "move", kind)

	result, err := h.battles.SubmitMove(r.Context(), caller, battleID, req.AssetID, kind, req.TargetAsset)
	if err != nil {
		respondServiceError(w, r, ErrMsgSubmitMoveFailed, err)
		return
	}

	message := MsgMoveAccepted
	if result.Outcome != nil {
		message = MsgBattleResolved
	}
	respondJSON(w, http.StatusOK, DataResponse{Message: message, Data: result})
}

// HandleGetBattle returns a battle with its move log
// @Summary Get a battle
// @Tags battles
// @Produce json
// @Param id path int true "Battle id"
// @Success 200 {object} domain.Battle
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/battles/{id} [get]
func (h *BattleHandler) HandleGetBattle(w http.ResponseWriter, r *http.Request) {
	battleID, ok := GetIDParam(w, r, ParamID)
	if !ok {
		return
	}

	b, err := h.battles.GetBattle(r.Context(), battleID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetBattleFailed, err)
		return
	}
	if b == nil {
		respondError(w, http.StatusNotFound, ErrMsgBattleNotFoundHTTP)
		return
	}

	respondJSON(w, http.StatusOK, b)
}
