package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ellied/framecast/device"
	"github.com/ellied/framecast/tool"
	"github.com/ellied/framecast/types"
)

func setupSettingsRouter(t *testing.T, endpoint *device.Endpoint) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tool.ConfigPath = filepath.Join(t.TempDir(), "config.yaml")
	tool.CurrentConfig = types.AppConfig{
		WebPort:          8080,
		DeviceHost:       "192.168.1.50",
		DevicePort:       12345,
		CommandTimeoutMs: 5000,
		GraceDelayMs:     100,
		ScanTimeoutMs:    500,
	}

	ctrl := NewSettingsController(endpoint)
	statusCtrl := NewStatusController(endpoint)
	router := gin.New()
	v1 := router.Group("/api/frame/v1")
	{
		v1.GET("/settings", ctrl.HandleGet)
		v1.PATCH("/settings", ctrl.HandlePatch)
		v1.GET("/status", statusCtrl.HandleStatus)
		v1.GET("/create-qr-code", GenerateQRCode)
	}
	return router
}

// TestSettingsPatchPersists applies a partial update and checks both the
// in-memory config and the file on disk.
func TestSettingsPatchPersists(t *testing.T) {
	endpoint := device.NewEndpoint("192.168.1.50", 12345, time.Second, 10*time.Millisecond)
	router := setupSettingsRouter(t, endpoint)

	body, _ := json.Marshal(gin.H{"defaultTag": "holidays", "deviceHost": "192.168.1.77"})
	req, _ := http.NewRequest("PATCH", "/api/frame/v1/settings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "127.0.0.1:40000"
	w := postRecorder(router, req)
	if w.Code != http.StatusOK {
		t.Fatalf("patch: status = %d, body %s", w.Code, w.Body.String())
	}

	cfg := tool.GetCurrentConfig()
	if cfg.DefaultTag != "holidays" {
		t.Errorf("defaultTag = %q, want holidays", cfg.DefaultTag)
	}
	if cfg.DeviceHost != "192.168.1.77" {
		t.Errorf("deviceHost = %q, want the patched host", cfg.DeviceHost)
	}
	// Untouched keys keep their values.
	if cfg.DevicePort != 12345 || cfg.GraceDelayMs != 100 {
		t.Errorf("untouched settings changed: %+v", cfg)
	}
	// The endpoint follows the host change immediately.
	if got := endpoint.Snapshot().Host; got != "192.168.1.77" {
		t.Errorf("endpoint host = %q, want the patched host", got)
	}

	data, err := os.ReadFile(tool.ConfigPath)
	if err != nil {
		t.Fatalf("read persisted config: %v", err)
	}
	if !strings.Contains(string(data), "holidays") {
		t.Error("persisted config should contain the patched tag")
	}
}

// TestSettingsPatchRejectsWireHostileHost keeps commas out of the host.
func TestSettingsPatchRejectsWireHostileHost(t *testing.T) {
	endpoint := device.NewEndpoint("192.168.1.50", 12345, time.Second, 10*time.Millisecond)
	router := setupSettingsRouter(t, endpoint)

	body, _ := json.Marshal(gin.H{"deviceHost": "192.168.1.77,evil"})
	req, _ := http.NewRequest("PATCH", "/api/frame/v1/settings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "127.0.0.1:40000"
	if w := postRecorder(router, req); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

// TestStatusRoute reports running and the configured device target.
func TestStatusRoute(t *testing.T) {
	endpoint := device.NewEndpoint("192.168.1.50", 12345, time.Second, 10*time.Millisecond)
	router := setupSettingsRouter(t, endpoint)

	w := getPath(router, "/api/frame/v1/status")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if running, ok := resp["running"].(bool); !ok || !running {
		t.Error("response should report running=true")
	}
}

// TestQRCodeRoute returns a PNG for explicit data.
func TestQRCodeRoute(t *testing.T) {
	endpoint := device.NewEndpoint("192.168.1.50", 12345, time.Second, 10*time.Millisecond)
	router := setupSettingsRouter(t, endpoint)

	w := getPath(router, "/api/frame/v1/create-qr-code?data=http://example.test/&size=128")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q, want image/png", ct)
	}
	if w.Body.Len() == 0 {
		t.Error("body should contain PNG bytes")
	}
}
