package pricemodel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPredict(t *testing.T) {
	tests := []struct {
		name string
		body string
		want float64
	}{
		{name: "single", body: `{"prediction": 1234.5}`, want: 1234.5},
		{name: "array", body: `{"predictions": [987.0, 1.0]}`, want: 987},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got PredictRequest
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Content-Type") != "application/json" {
					w.WriteHeader(http.StatusUnsupportedMediaType)
					return
				}
				if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewHTTPClient(srv.URL, time.Second)
			price, err := c.Predict(context.Background(), []string{"bedrooms", "wifi"}, []float64{2, 1})
			if err != nil {
				t.Fatalf("Predict: %v", err)
			}
			if price != tt.want {
				t.Errorf("price = %v, want %v", price, tt.want)
			}
			if len(got.Columns) != 2 || got.Columns[0] != "bedrooms" || len(got.Instances) != 1 || got.Instances[0][1] != 1 {
				t.Errorf("request = %+v", got)
			}
		})
	}
}

func TestPredictFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{}`},
		{name: "bad json", status: http.StatusOK, body: `nope`},
		{name: "no prediction", status: http.StatusOK, body: `{}`},
		{name: "overflow", status: http.StatusOK, body: `{"prediction": 1e999}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewHTTPClient(srv.URL, time.Second)
			if _, err := c.Predict(context.Background(), []string{"a"}, []float64{1}); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestPredictRejectsMismatchedRow(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:0", time.Second)
	if _, err := c.Predict(context.Background(), []string{"a", "b"}, []float64{1}); err == nil {
		t.Fatal("expected an error")
	}
}
