package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := common.Logger
	common.Logger = zap.New(core)
	t.Cleanup(func() { common.Logger = prev })
	return logs
}

func TestLoggerRecordsShoppingFields(t *testing.T) {
	logs := observeLogs(t)

	r := gin.New()
	r.Use(Logger())
	r.GET("/meal-plans/:id/shopping-list/export", RequireUser(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/meal-plans/plan-7/shopping-list/export?format=csv", nil)
	req.Header.Set(UserIDHeader, "user-1")
	serve(r, req)

	entries := logs.FilterMessage("請求完成").All()
	if len(entries) != 1 {
		t.Fatalf("got %d request log entries", len(entries))
	}
	fields := entries[0].ContextMap()

	want := map[string]string{
		"route":         "/meal-plans/:id/shopping-list/export",
		"user_id":       "user-1",
		"meal_plan_id":  "plan-7",
		"export_format": "csv",
	}
	for key, value := range want {
		if fields[key] != value {
			t.Errorf("%s = %v, want %q", key, fields[key], value)
		}
	}
	if fields["status"] != int64(http.StatusOK) {
		t.Errorf("status = %v", fields["status"])
	}
}

func TestLoggerLevelByStatus(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		header    string
		wantMsg   string
		wantLevel zapcore.Level
	}{
		{"missing user", "/plans/p1", "", "用戶端錯誤", zapcore.WarnLevel},
		{"server error", "/fail", "user-1", "伺服器錯誤", zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := observeLogs(t)

			r := gin.New()
			r.Use(Logger())
			r.GET("/plans/:id", RequireUser(), func(c *gin.Context) { c.Status(http.StatusOK) })
			r.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(UserIDHeader, tt.header)
			}
			serve(r, req)

			entries := logs.FilterMessage(tt.wantMsg).All()
			if len(entries) != 1 || entries[0].Level != tt.wantLevel {
				t.Fatalf("entries = %+v", logs.All())
			}
			if _, ok := entries[0].ContextMap()["user_id"]; ok {
				t.Error("user_id logged for a request without identity")
			}
		})
	}
}
