package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/calmzone-backend/internal/platform/apierr"
)

func TestRespondAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
		details string
	}{
		{"validation", apierr.Required("user_hash"), http.StatusBadRequest, apierr.CodeInvalidRequest, "user_hash: is required", ""},
		{"not found", apierr.NotFound("post"), http.StatusNotFound, apierr.CodeNotFound, "post not found", ""},
		{"upstream", apierr.Upstream("Erro ao processar mensagem", errors.New("timeout")), http.StatusInternalServerError, apierr.CodeUpstream, "Erro ao processar mensagem", "timeout"},
		{"status-less", &apierr.Error{Code: "odd", Message: "odd failure"}, http.StatusInternalServerError, "odd", "odd failure", ""},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error", "internal error", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			RespondAPIError(c, tc.err)

			if rec.Code != tc.status {
				t.Fatalf("status=%d want=%d", rec.Code, tc.status)
			}
			var body ErrorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tc.code || body.Error != tc.message || body.Details != tc.details {
				t.Fatalf("body=%+v", body)
			}
		})
	}
}

func TestErrorBodyOmitsEmptyDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondError(c, http.StatusBadRequest, apierr.CodeInvalidRequest, errors.New("bad json"))

	var raw map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := raw["details"]; ok {
		t.Fatalf("details should be omitted: %s", rec.Body.String())
	}
}
