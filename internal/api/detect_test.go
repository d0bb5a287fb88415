package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyUploadsFileField(t *testing.T) {
	var gotField, gotName, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotField = "file"
		gotName = header.Filename
		data, _ := io.ReadAll(file)
		gotBody = string(data)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"disease": "Cầu trùng",
			"confidence": 0.925,
			"all_probabilities": {"Cầu trùng": 0.925, "Khỏe mạnh": 0.075},
			"is_healthy": false,
			"disease_detail": {
				"code": "cocci",
				"name_vi": "Bệnh cầu trùng",
				"symptoms": "Phân có máu",
				"cause": "Eimeria",
				"prevention": "Vệ sinh chuồng trại",
				"treatment_steps": [
					{"step_order": 1, "description": "Cách ly", "medicines": []}
				]
			}
		}`))
	}))
	defer server.Close()

	client := New(server.URL, Options{})
	result, err := client.Classify(context.Background(), "phan_ga.jpg", strings.NewReader("jpegbytes"))
	require.NoError(t, err)

	assert.Equal(t, "file", gotField)
	assert.Equal(t, "phan_ga.jpg", gotName)
	assert.Equal(t, "jpegbytes", gotBody)

	assert.Equal(t, VerdictSick, result.Verdict())
	assert.Equal(t, "Cầu trùng", result.Disease)
	require.NotNil(t, result.DiseaseDetail)
	assert.Equal(t, "Bệnh cầu trùng", result.DiseaseDetail.NameVI)
	assert.Equal(t, 93, ConfidencePercent(result.Confidence))
}

func TestClassifyHealthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"disease":"Khỏe mạnh","confidence":0.98,"all_probabilities":{},"is_healthy":true}`))
	}))
	defer server.Close()

	client := New(server.URL, Options{})
	result, err := client.Classify(context.Background(), "ok.jpg", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, VerdictHealthy, result.Verdict())
	assert.Nil(t, result.DiseaseDetail)
}

func TestClassifyRejectsOutOfRangeConfidence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"disease":"x","confidence":1.7,"all_probabilities":{},"is_healthy":false}`))
	}))
	defer server.Close()

	client := New(server.URL, Options{})
	_, err := client.Classify(context.Background(), "bad.jpg", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestDetectRejectsOutOfRangeBox(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total_chickens":1,"healthy_count":0,"sick_count":1,"has_sick_chickens":true,
			"detections":[{"id":1,"class_name":"sick","confidence":-0.2,"bbox":[0,0,10,10]}]}`))
	}))
	defer server.Close()

	client := New(server.URL, Options{})
	_, err := client.Detect(context.Background(), "flock.jpg", strings.NewReader("x"))
	require.Error(t, err)
}

func TestConfidencePercentRounds(t *testing.T) {
	assert.Equal(t, 0, ConfidencePercent(0))
	assert.Equal(t, 100, ConfidencePercent(1))
	assert.Equal(t, 93, ConfidencePercent(0.925))
	assert.Equal(t, 92, ConfidencePercent(0.924))
	assert.Equal(t, 87, ConfidencePercent(0.866))
}
