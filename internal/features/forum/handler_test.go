package forum

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/commune-hq/community-server-go/internal/middleware"
	"github.com/commune-hq/community-server-go/pkg/validation"
)

func postContext(t *testing.T, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/forums/follow", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, recorder
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return body
}

func TestBindFollowRequestAcceptsForumName(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	c, _ := postContext(t, `{"forum_name":"Chess Club"}`)
	middleware.SetUserInContext(c, &middleware.User{ID: uuid.New()})

	name, viewer, ok := h.bindFollowRequest(c)
	if !ok {
		t.Fatal("follow payload with forum_name should parse")
	}
	if name != "Chess Club" {
		t.Errorf("name = %q, want %q", name, "Chess Club")
	}
	if viewer == nil {
		t.Error("viewer should be resolved from context")
	}
}

func TestBindFollowRequestRejectsMissingField(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	c, recorder := postContext(t, `{"name":"Chess Club"}`)
	middleware.SetUserInContext(c, &middleware.User{ID: uuid.New()})

	if _, _, ok := h.bindFollowRequest(c); ok {
		t.Fatal("follow payload without forum_name should be rejected")
	}
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", recorder.Code, http.StatusBadRequest)
	}
}

func TestBindUnfollowRequestAcceptsName(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	c, _ := postContext(t, `{"name":"Chess Club"}`)
	middleware.SetUserInContext(c, &middleware.User{ID: uuid.New()})

	name, _, ok := h.bindUnfollowRequest(c)
	if !ok {
		t.Fatal("unfollow payload with name should parse")
	}
	if name != "Chess Club" {
		t.Errorf("name = %q, want %q", name, "Chess Club")
	}
}

func TestBindFollowRequestRequiresViewer(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	c, recorder := postContext(t, `{"forum_name":"Chess Club"}`)

	if _, _, ok := h.bindFollowRequest(c); ok {
		t.Fatal("anonymous follow should be rejected")
	}
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", recorder.Code, http.StatusUnauthorized)
	}
}

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"forum not found", ErrForumNotFound, http.StatusNotFound, "Forum does not exist."},
		{"duplicate name", ErrNameExists, http.StatusConflict, "A forum with this name already exists."},
		{"duplicate follow", ErrAlreadyMember, http.StatusConflict, "Already following this forum."},
		{"unfollow non-member", ErrNotMember, http.StatusBadRequest, "User not enrolled in forum"},
		{"missing name", ErrNameRequired, http.StatusBadRequest, "Forum name is required."},
		{"bad name format", validation.ErrInvalidForumName, http.StatusBadRequest, validation.ErrInvalidForumName.Error()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHandler(nil, nil, nil)
			c, recorder := postContext(t, `{}`)

			h.respondError(c, tc.err, "fallback")

			if recorder.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", recorder.Code, tc.wantStatus)
			}

			body := decodeEnvelope(t, recorder)
			if body["success"] != false {
				t.Error("error body should carry success=false")
			}
			if body["message"] != tc.wantMsg {
				t.Errorf("message = %q, want %q", body["message"], tc.wantMsg)
			}
			if int(body["status"].(float64)) != tc.wantStatus {
				t.Errorf("status field = %v, want %d", body["status"], tc.wantStatus)
			}
		})
	}
}
