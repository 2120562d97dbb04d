package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"trashapp/internal/portfolio"
)

func setupPortfolioRouter() *gin.Engine {
	handler := NewPortfolioHandler()
	r := gin.New()
	g := r.Group("/portfolio")
	g.GET("", handler.Get)
	g.GET("/projects", handler.Projects)
	g.GET("/projects/:id", handler.ProjectByID)
	g.GET("/skills", handler.Skills)
	g.GET("/logotext", handler.LogoText)
	return r
}

func TestPortfolioEndpoints(t *testing.T) {
	r := setupPortfolioRouter()

	t.Run("full_payload", func(t *testing.T) {
		rec := doRequest(r, "GET", "/portfolio", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		data := parseJSON(t, rec)["data"].(map[string]interface{})
		if _, ok := data["dataportfolio"]; !ok {
			t.Error("expected dataportfolio key in full payload")
		}
	})

	t.Run("project_by_id", func(t *testing.T) {
		if len(portfolio.Projects) == 0 {
			t.Fatal("expected seeded projects")
		}
		rec := doRequest(r, "GET", "/portfolio/projects/"+portfolio.Projects[0].ID, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("unknown_project", func(t *testing.T) {
		rec := doRequest(r, "GET", "/portfolio/projects/does-not-exist", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("skills_list", func(t *testing.T) {
		rec := doRequest(r, "GET", "/portfolio/skills", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		data := parseJSON(t, rec)["data"].([]interface{})
		if len(data) == 0 {
			t.Error("expected a non-empty skill list")
		}
	})

	t.Run("logotext", func(t *testing.T) {
		rec := doRequest(r, "GET", "/portfolio/logotext", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if data := parseJSON(t, rec)["data"].(string); data != portfolio.LogoText {
			t.Errorf("expected the wordmark, got %q", data)
		}
	})
}
