package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/stardust-engine/internal/battle"
	"github.com/osse101/stardust-engine/internal/domain"
)

func TestHandleInitiate(t *testing.T) {
	InitValidator()

	t.Run("Success", func(t *testing.T) {
		battles := &MockBattleService{}
		battles.On("Initiate", mock.Anything, testAlice, testBob, []uint64{1, 2}, domain.BattleRanked).
			Return(&domain.Battle{ID: 1, Attacker: testAlice, Defender: testBob, Status: domain.BattleWaitingForDefender}, nil)
		h := NewBattleHandler(battles)

		w := httptest.NewRecorder()
		body := InitiateBattleRequest{Opponent: testBob, AssetIDs: []uint64{1, 2}, BattleType: "ranked"}
		h.HandleInitiate(w, newRequest(t, http.MethodPost, "/api/v1/battles", testAlice, body, nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		var got domain.Battle
		assert.Equal(t, MsgBattleInitiated, decodeData(t, w, &got))
		assert.Equal(t, domain.BattleWaitingForDefender, got.Status)
		battles.AssertExpectations(t)
	})

	t.Run("Too many assets", func(t *testing.T) {
		battles := &MockBattleService{}
		battles.On("Initiate", mock.Anything, testAlice, testBob, mock.Anything, domain.BattleCasual).
			Return(nil, fmt.Errorf("%w: 4 > 3", domain.ErrTooManyAssets))
		h := NewBattleHandler(battles)

		w := httptest.NewRecorder()
		body := InitiateBattleRequest{Opponent: testBob, AssetIDs: []uint64{1, 2, 3, 4}, BattleType: "Casual"}
		h.HandleInitiate(w, newRequest(t, http.MethodPost, "/", testAlice, body, nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), domain.ErrMsgTooManyAssets)
	})

	t.Run("Unknown battle type", func(t *testing.T) {
		battles := &MockBattleService{}
		h := NewBattleHandler(battles)

		w := httptest.NewRecorder()
		body := InitiateBattleRequest{Opponent: testBob, BattleType: "Arena"}
		h.HandleInitiate(w, newRequest(t, http.MethodPost, "/", testAlice, body, nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid battle type")
		battles.AssertNotCalled(t, "Initiate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHandleAccept(t *testing.T) {
	InitValidator()
	params := map[string]string{ParamID: "4"}

	t.Run("Second accept conflicts", func(t *testing.T) {
		battles := &MockBattleService{}
		battles.On("Accept", mock.Anything, testBob, uint64(4), []uint64{9}).
			Return(nil, fmt.Errorf("%w: battle 4", domain.ErrBattleNotWaiting))
		h := NewBattleHandler(battles)

		w := httptest.NewRecorder()
		h.HandleAccept(w, newRequest(t, http.MethodPost, "/", testBob, AcceptBattleRequest{AssetIDs: []uint64{9}}, params))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Unknown battle", func(t *testing.T) {
		battles := &MockBattleService{}
		battles.On("Accept", mock.Anything, testBob, uint64(4), []uint64{9}).
			Return(nil, fmt.Errorf("%w: 4", domain.ErrBattleNotFound))
		h := NewBattleHandler(battles)

		w := httptest.NewRecorder()
		h.HandleAccept(w, newRequest(t, http.MethodPost, "/", testBob, AcceptBattleRequest{AssetIDs: []uint64{9}}, params))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleSubmitMove(t *testing.T) {
	InitValidator()
	params := map[string]string{ParamID: "4"}

	t.Run("Move accepted", func(t *testing.T) {
		battles := &MockBattleService{}
		battles.On("SubmitMove", mock.Anything, testAlice, uint64(4), uint64(1), domain.MoveAttack, (*uint64)(nil)).
			Return(&battle.MoveResult{Battle: domain.Battle{ID: 4, Turn: 2}}, nil)
		h := NewBattleHandler(battles)

		w := httptest.NewRecorder()
		h.HandleSubmitMove(w, newRequest(t, http.MethodPost, "/", testAlice, SubmitMoveRequest{AssetID: 1, MoveType: "attack"}, params))

		assert.Equal(t, http.StatusOK, w.Code)
		var got battle.MoveResult
		assert.Equal(t, MsgMoveAccepted, decodeData(t, w, &got))
		assert.Nil(t, got.Outcome)
	})

	t.Run("Resolving move reports the outcome", func(t *testing.T) {
		target := uint64(9)
		battles := &MockBattleService{}
		battles.On("SubmitMove", mock.Anything, testBob, uint64(4), uint64(9), domain.MoveCombo, &target).
			Return(&battle.MoveResult{
				Battle:  domain.Battle{ID: 4, Status: domain.BattleCompleted},
				Outcome: &domain.BattleOutcome{BattleID: 4, Winner: testAlice, Loser: testBob},
			}, nil)
		h := NewBattleHandler(battles)

		w := httptest.NewRecorder()
		body := SubmitMoveRequest{AssetID: 9, MoveType: "Combo", TargetAsset: &target}
		h.HandleSubmitMove(w, newRequest(t, http.MethodPost, "/", testBob, body, params))

		assert.Equal(t, http.StatusOK, w.Code)
		var got battle.MoveResult
		assert.Equal(t, MsgBattleResolved, decodeData(t, w, &got))
		if assert.NotNil(t, got.Outcome) {
			assert.Equal(t, testAlice, got.Outcome.Winner)
		}
	})

	t.Run("Out of turn", func(t *testing.T) {
		battles := &MockBattleService{}
		battles.On("SubmitMove", mock.Anything, testBob, uint64(4), uint64(9), domain.MoveDefend, (*uint64)(nil)).
			Return(nil, fmt.Errorf("%w: turn 1", domain.ErrNotYourTurn))
		h := NewBattleHandler(battles)

		w := httptest.NewRecorder()
		h.HandleSubmitMove(w, newRequest(t, http.MethodPost, "/", testBob, SubmitMoveRequest{AssetID: 9, MoveType: "defend"}, params))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), domain.ErrMsgNotYourTurn)
	})

	t.Run("Missing asset id", func(t *testing.T) {
		battles := &MockBattleService{}
		h := NewBattleHandler(battles)

		w := httptest.NewRecorder()
		h.HandleSubmitMove(w, newRequest(t, http.MethodPost, "/", testBob, SubmitMoveRequest{MoveType: "defend"}, params))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "assetid")
	})
}

func TestHandleGetBattle(t *testing.T) {
	battles := &MockBattleService{}
	battles.On("GetBattle", mock.Anything, uint64(1)).Return(&domain.Battle{ID: 1}, nil)
	battles.On("GetBattle", mock.Anything, uint64(2)).Return(nil, nil)
	h := NewBattleHandler(battles)

	w := httptest.NewRecorder()
	h.HandleGetBattle(w, newRequest(t, http.MethodGet, "/", "", nil, map[string]string{ParamID: "1"}))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.HandleGetBattle(w, newRequest(t, http.MethodGet, "/", "", nil, map[string]string{ParamID: "2"}))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgBattleNotFoundHTTP)

	w = httptest.NewRecorder()
	h.HandleGetBattle(w, newRequest(t, http.MethodGet, "/", "", nil, map[string]string{ParamID: "abc"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
