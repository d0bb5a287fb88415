package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRecentLogsPassesLimit(t *testing.T) {
	var gotLimit string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":7,"created_at":"2026-08-30T10:00:00","type":"classify","result":"Cầu trùng","confidence":0.9,"status":"Sick","image_url":"/media/7.jpg"}]`))
	}))
	defer server.Close()

	client := New(server.URL, Options{})
	logs, err := client.AdminRecentLogs(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "10", gotLimit)
	require.Len(t, logs, 1)
	assert.Equal(t, "Sick", logs[0].Status)
}

func TestUpdateSettingSendsSinglePair(t *testing.T) {
	var got Setting
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(server.URL, Options{})
	require.NoError(t, client.UpdateSetting(context.Background(), "ai_model", "gpt-4o-mini"))
	assert.Equal(t, Setting{Key: "ai_model", Value: "gpt-4o-mini"}, got)
}

func TestDiseaseUpdateRoundTrip(t *testing.T) {
	var gotMethod, gotPath string
	var got Disease
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(got)
	}))
	defer server.Close()

	disease := Disease{
		ID:     4,
		Code:   "nd",
		NameVI: "Bệnh Newcastle",
		TreatmentSteps: []TreatmentStep{
			{StepOrder: 1, Description: "Cách ly", Medicines: []Medicine{}},
			{StepOrder: 2, Description: "Tiêm vắc-xin", Medicines: []Medicine{{Name: "Lasota", Dosage: "nhỏ mắt"}}},
		},
	}

	client := New(server.URL, Options{})
	_, err := client.UpdateDisease(context.Background(), 4, disease)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/v1/admin/diseases/4", gotPath)
	assert.Equal(t, disease.TreatmentSteps, got.TreatmentSteps)
}

func TestDeleteUserHitsPath(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(server.URL, Options{})
	require.NoError(t, client.DeleteUser(context.Background(), 12))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/v1/admin/users/12", gotPath)
}
