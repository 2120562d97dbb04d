package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "trashapp/internal/errors"
	"trashapp/internal/pagination"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/test", nil)
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	return body
}

func TestSuccess(t *testing.T) {
	c, w := newTestContext()
	Success(c, gin.H{"id": "abc"}, "Retrieved")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["message"] != "Retrieved" {
		t.Errorf("unexpected message: %v", body["message"])
	}
	if body["status_code"] != float64(200) {
		t.Errorf("expected status_code 200 in body, got %v", body["status_code"])
	}
	if _, ok := body["pagination"]; ok {
		t.Error("expected pagination omitted")
	}
}

func TestSuccessPaginated(t *testing.T) {
	c, w := newTestContext()
	meta := pagination.NewMetadata(25, 2, 10)
	SuccessPaginated(c, []string{"a"}, "Listed", meta)

	body := decodeBody(t, w)
	pg, ok := body["pagination"].(map[string]interface{})
	if !ok {
		t.Fatal("expected pagination object")
	}
	if pg["total_items"] != float64(25) || pg["total_pages"] != float64(3) {
		t.Errorf("unexpected pagination: %v", pg)
	}
	if pg["next_page"] != float64(3) {
		t.Errorf("expected next_page 3, got %v", pg["next_page"])
	}
}

func TestCreated(t *testing.T) {
	c, w := newTestContext()
	Created(c, gin.H{"id": "abc"}, "Created")

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
}

func TestErrorWithAppError(t *testing.T) {
	c, w := newTestContext()
	Error(c, apperrors.ErrAccountLocked)

	if w.Code != http.StatusLocked {
		t.Fatalf("expected 423, got %d", w.Code)
	}
	body := decodeBody(t, w)
	errObj, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatal("expected error object")
	}
	if errObj["code"] != "ACCOUNT_LOCKED" {
		t.Errorf("unexpected code: %v", errObj["code"])
	}
	if _, ok := errObj["details"].(map[string]interface{}); !ok {
		t.Error("expected details to be an object, not null")
	}
	if body["status_code"] != float64(423) {
		t.Errorf("expected status_code 423 in body, got %v", body["status_code"])
	}
}

func TestErrorCollapsesUnknownErrors(t *testing.T) {
	c, w := newTestContext()
	Error(c, errors.New("driver: bad connection"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	body := decodeBody(t, w)
	errObj := body["error"].(map[string]interface{})
	if errObj["code"] != "INTERNAL_ERROR" {
		t.Errorf("unexpected code: %v", errObj["code"])
	}
	if errObj["message"] == "driver: bad connection" {
		t.Error("internal error text must not leak to the client")
	}
}

func TestValidationError(t *testing.T) {
	c, w := newTestContext()
	ValidationError(c, map[string]string{"email": "email is required"})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	body := decodeBody(t, w)
	errObj := body["error"].(map[string]interface{})
	if errObj["code"] != "VALIDATION_ERROR" {
		t.Errorf("unexpected code: %v", errObj["code"])
	}
	details := errObj["details"].(map[string]interface{})
	if details["email"] != "email is required" {
		t.Errorf("unexpected details: %v", details)
	}
}

func TestNotFoundNamesResource(t *testing.T) {
	c, w := newTestContext()
	NotFound(c, "Pickup")

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	body := decodeBody(t, w)
	errObj := body["error"].(map[string]interface{})
	if errObj["message"] != "Pickup not found" {
		t.Errorf("unexpected message: %v", errObj["message"])
	}
}

func TestUnauthorizedAndForbidden(t *testing.T) {
	c, w := newTestContext()
	Unauthorized(c, "Token expired")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	c2, w2 := newTestContext()
	Forbidden(c2, "Admins only")
	if w2.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w2.Code)
	}
}
