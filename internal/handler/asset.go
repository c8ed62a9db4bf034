package handler

import (
	"net/http"

	"github.com/osse101/stardust-engine/internal/asset"
	"github.com/osse101/stardust-engine/internal/battle"
	"github.com/osse101/stardust-engine/internal/domain"
)

// AssetHandler serves minting, transfers and asset read views
type AssetHandler struct {
	assets  asset.Service
	battles battle.Service
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assets asset.Service, battles battle.Service) *AssetHandler {
	return &AssetHandler{assets: assets, battles: battles}
}

// MintAssetRequest describes the asset to mint for the caller
type MintAssetRequest struct {
	AssetType   string `json:"asset_type" validate:"required,asset_type"`
	Rarity      string `json:"rarity" validate:"required,rarity"`
	Name        string `json:"name" validate:"required,max=64,excludesall=\x00\n\r\t"`
	Description string `json:"description" validate:"max=256"`
}

// TransferAssetRequest names the recipient of a transfer
type TransferAssetRequest struct {
	To string `json:"to" validate:"required,address"`
}

// AssetPowerResponse reports an asset's battle power
type AssetPowerResponse struct {
	AssetID uint64 `json:"asset_id"`
	Power   uint64 `json:"power"`
}

// HandleMint mints a level 1 asset for the caller
// @Summary Mint an asset
// @Tags assets
// @Accept json
// @Produce json
// @Param X-Player-Address header string true "Caller address"
// @Param request body MintAssetRequest true "Asset template"
// @Success 201 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/assets/mint [post]
func (h *AssetHandler) HandleMint(w http.ResponseWriter, r *http.Request) {
	caller, ok := RequireCaller(w, r)
	if !ok {
		return
	}

	var req MintAssetRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Mint asset"); err != nil {
		return
	}

	assetType, err := domain.ParseAssetType(req.AssetType)
	if err != nil {
		respondServiceError(w, r, ErrMsgMintAssetFailed, err)
		return
	}
	rarity, err := domain.ParseRarity(req.Rarity)
	if err != nil {
		respondServiceError(w, r, ErrMsgMintAssetFailed, err)
		return
	}

	minted, err := h.assets.Mint(r.Context(), caller, domain.AssetTemplate{
		Type:        assetType,
		Rarity:      rarity,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(w, r, ErrMsgMintAssetFailed, err)
		return
	}

	respondJSON(w, http.StatusCreated, DataResponse{Message: MsgAssetMinted, Data: minted})
}

// HandleTransfer moves an asset from the caller to another registered player
// @Summary Transfer an asset
// @Tags assets
// @Accept json
// @Produce json
// @Param X-Player-Address header string true "Caller address"
// @Param id path int true "Asset id"
// @Param request body TransferAssetRequest true "Recipient"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/assets/{id}/transfer [post]
func (h *AssetHandler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	caller, ok := RequireCaller(w, r)
	if !ok {
		return
	}
	assetID, ok := GetIDParam(w, r, ParamID)
	if !ok {
		return
	}

	var req TransferAssetRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Transfer asset"); err != nil {
		return
	}

	moved, err := h.assets.Transfer(r.Context(), caller, assetID, req.To)
	if err != nil {
		respondServiceError(w, r, ErrMsgTransferAssetFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: MsgAssetTransferred, Data: moved})
}

// HandleGetAsset returns an asset
// @Summary Get an asset
// @Tags assets
// @Produce json
// @Param id path int true "Asset id"
// @Success 200 {object} domain.GameAsset
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/assets/{id} [get]
func (h *AssetHandler) HandleGetAsset(w http.ResponseWriter, r *http.Request) {
	assetID, ok := GetIDParam(w, r, ParamID)
	if !ok {
		return
	}

	a, err := h.assets.GetAsset(r.Context(), assetID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetAssetFailed, err)
		return
	}
	if a == nil {
		respondError(w, http.StatusNotFound, ErrMsgAssetNotFoundHTTP)
		return
	}

	respondJSON(w, http.StatusOK, a)
}

// HandleGetPower returns the battle power of an asset
// @Summary Get an asset's battle power
// @Tags assets
// @Produce json
// @Param id path int true "Asset id"
// @Success 200 {object} AssetPowerResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/assets/{id}/power [get]
func (h *AssetHandler) HandleGetPower(w http.ResponseWriter, r *http.Request) {
	assetID, ok := GetIDParam(w, r, ParamID)
	if !ok {
		return
	}

	power, err := h.battles.AssetPower(r.Context(), assetID)
	if err != nil {
		respondServiceError(w, r, ErrMsgAssetPowerFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, AssetPowerResponse{AssetID: assetID, Power: power})
}
