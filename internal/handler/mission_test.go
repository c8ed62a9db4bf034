package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/stardust-engine/internal/domain"
	"github.com/osse101/stardust-engine/internal/quest"
)

func trainingAcademy() domain.MissionTemplate {
	return domain.MissionTemplate{
		ID:      1,
		Name:    "Training Academy",
		Chapter: 1,
		Objectives: []domain.Objective{
			{ID: 1, Kind: domain.ObjectiveCollectAssets, TargetAmount: 1},
		},
		Rewards: []domain.Reward{
			domain.ExperienceReward{Amount: 200},
			domain.TitleReward{Title: "Rookie Engineer"},
		},
	}
}

func TestHandleListAndGetMission(t *testing.T) {
	cat := &MockCatalogService{}
	cat.On("List", mock.Anything).Return([]domain.MissionTemplate{trainingAcademy()}, nil)
	tmpl := trainingAcademy()
	cat.On("Get", mock.Anything, uint64(1)).Return(&tmpl, nil)
	cat.On("Get", mock.Anything, uint64(99)).Return(nil, nil)
	h := NewMissionHandler(cat, &MockQuestService{})

	w := httptest.NewRecorder()
	h.HandleListMissions(w, newRequest(t, http.MethodGet, "/api/v1/missions", "", nil, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	var list MissionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Missions, 1)
	assert.Equal(t, trainingAcademy().Rewards, list.Missions[0].Rewards)

	w = httptest.NewRecorder()
	h.HandleGetMission(w, newRequest(t, http.MethodGet, "/", "", nil, map[string]string{ParamID: "1"}))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"reward_type":"Title"`)

	w = httptest.NewRecorder()
	h.HandleGetMission(w, newRequest(t, http.MethodGet, "/", "", nil, map[string]string{ParamID: "99"}))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgMissionNotFoundHTTP)
}

func TestHandleStartMission(t *testing.T) {
	params := map[string]string{ParamID: "1"}

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"Started", nil, http.StatusCreated},
		{"Level too low", fmt.Errorf("%w: need 2", domain.ErrLevelTooLow), http.StatusBadRequest},
		{"Prerequisite missing", fmt.Errorf("%w: mission 1", domain.ErrPrerequisiteMissing), http.StatusBadRequest},
		{"Already active", fmt.Errorf("%w: mission 1", domain.ErrMissionAlreadyActive), http.StatusConflict},
		{"Unknown mission", fmt.Errorf("%w: 1", domain.ErrMissionNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quests := &MockQuestService{}
			if tt.err != nil {
				quests.On("Start", mock.Anything, testAlice, uint64(1)).Return(nil, tt.err)
			} else {
				quests.On("Start", mock.Anything, testAlice, uint64(1)).
					Return(&domain.PlayerMission{Player: testAlice, MissionID: 1, Status: domain.MissionActive}, nil)
			}
			h := NewMissionHandler(&MockCatalogService{}, quests)

			w := httptest.NewRecorder()
			h.HandleStartMission(w, newRequest(t, http.MethodPost, "/", testAlice, nil, params))

			assert.Equal(t, tt.expectedStatus, w.Code)
			quests.AssertExpectations(t)
		})
	}
}

func TestHandleCompleteObjective(t *testing.T) {
	InitValidator()
	params := map[string]string{ParamID: "1", ParamObjectiveID: "2"}

	t.Run("Objective recorded", func(t *testing.T) {
		quests := &MockQuestService{}
		quests.On("CompleteObjective", mock.Anything, testAlice, uint64(1), uint64(2), []uint64{5}).
			Return(&quest.ObjectiveResult{Mission: domain.PlayerMission{MissionID: 1, Progress: 66}}, nil)
		h := NewMissionHandler(&MockCatalogService{}, quests)

		w := httptest.NewRecorder()
		h.HandleCompleteObjective(w, newRequest(t, http.MethodPost, "/", testAlice, CompleteObjectiveRequest{ProofAssets: []uint64{5}}, params))

		assert.Equal(t, http.StatusOK, w.Code)
		var got quest.ObjectiveResult
		assert.Equal(t, MsgObjectiveCompleted, decodeData(t, w, &got))
		assert.Equal(t, uint32(66), got.Mission.Progress)
		assert.Nil(t, got.Grant)
	})

	t.Run("Final objective completes the mission", func(t *testing.T) {
		quests := &MockQuestService{}
		quests.On("CompleteObjective", mock.Anything, testAlice, uint64(1), uint64(2), []uint64(nil)).
			Return(&quest.ObjectiveResult{
				Mission: domain.PlayerMission{MissionID: 1, Progress: 100, Status: domain.MissionCompleted},
				Grant:   &quest.CompletionGrant{Player: domain.Player{Address: testAlice, Experience: 200}},
			}, nil)
		h := NewMissionHandler(&MockCatalogService{}, quests)

		w := httptest.NewRecorder()
		h.HandleCompleteObjective(w, newRequest(t, http.MethodPost, "/", testAlice, CompleteObjectiveRequest{}, params))

		assert.Equal(t, http.StatusOK, w.Code)
		var got quest.ObjectiveResult
		assert.Equal(t, MsgMissionCompleted, decodeData(t, w, &got))
		require.NotNil(t, got.Grant)
		assert.Equal(t, uint64(200), got.Grant.Player.Experience)
	})

	t.Run("Repeated objective conflicts", func(t *testing.T) {
		quests := &MockQuestService{}
		quests.On("CompleteObjective", mock.Anything, testAlice, uint64(1), uint64(2), []uint64{5}).
			Return(nil, fmt.Errorf("%w: 2", domain.ErrObjectiveAlreadyCompleted))
		h := NewMissionHandler(&MockCatalogService{}, quests)

		w := httptest.NewRecorder()
		h.HandleCompleteObjective(w, newRequest(t, http.MethodPost, "/", testAlice, CompleteObjectiveRequest{ProofAssets: []uint64{5}}, params))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Reward integrity fault is a 500", func(t *testing.T) {
		quests := &MockQuestService{}
		quests.On("CompleteObjective", mock.Anything, testAlice, uint64(1), uint64(2), []uint64{5}).
			Return(nil, fmt.Errorf("reward 1: %w", domain.ErrRewardMissingAsset))
		h := NewMissionHandler(&MockCatalogService{}, quests)

		w := httptest.NewRecorder()
		h.HandleCompleteObjective(w, newRequest(t, http.MethodPost, "/", testAlice, CompleteObjectiveRequest{ProofAssets: []uint64{5}}, params))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgGenericServerError)
	})
}
