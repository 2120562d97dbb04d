package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestHealthCheck(t *testing.T) {
	r := gin.New()
	r.GET("/health", NewHealthHandler("1.2.3").Check)

	rec := doRequest(r, "GET", "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	data := parseJSON(t, rec)["data"].(map[string]interface{})
	if data["status"] != "OK" {
		t.Errorf("expected status OK, got %v", data["status"])
	}
	if data["version"] != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %v", data["version"])
	}
	ts, ok := data["timestamp"].(string)
	if !ok {
		t.Fatal("expected a timestamp string")
	}
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Errorf("timestamp not RFC3339: %v", err)
	}
}
