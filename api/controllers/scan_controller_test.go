package controllers

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ellied/framecast/api/notifyhub"
	"github.com/ellied/framecast/device"
	"github.com/ellied/framecast/tool"
	"github.com/ellied/framecast/types"
)

func setupScanRouter(t *testing.T, endpoint *device.Endpoint) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tool.ConfigPath = filepath.Join(t.TempDir(), "config.yaml")
	tool.CurrentConfig = types.AppConfig{WebPort: 8080, DevicePort: 12345, ScanTimeoutMs: 200}

	ctrl := NewScanController(endpoint, notifyhub.New())
	router := gin.New()
	v1 := router.Group("/api/frame/v1")
	{
		v1.GET("/scan", ctrl.HandleScan)
		v1.GET("/scan/last", ctrl.HandleLastScan)
		v1.GET("/detect-subnet", ctrl.HandleDetectSubnet)
	}
	return router
}

func getPath(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	req.RemoteAddr = "127.0.0.1:40000"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestScanRouteValidatesSubnet rejects malformed prefixes and timeouts.
func TestScanRouteValidatesSubnet(t *testing.T) {
	endpoint := device.NewEndpoint("", 12345, time.Second, 10*time.Millisecond)
	router := setupScanRouter(t, endpoint)

	for _, path := range []string{
		"/api/frame/v1/scan?subnet=192.168.1.0.1",
		"/api/frame/v1/scan?subnet=not-a-subnet",
		"/api/frame/v1/scan?subnet=10.0.0&timeoutMs=abc",
		"/api/frame/v1/scan?subnet=10.0.0&timeoutMs=0",
	} {
		if w := getPath(router, path); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, w.Code)
		}
	}
}

// TestScanRouteFindsLoopbackListener sweeps 127.0.0.* against a listener on
// 127.0.0.5 only, then fetches the cached result from /scan/last.
func TestScanRouteFindsLoopbackListener(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.5:0")
	if err != nil {
		t.Skipf("cannot bind 127.0.0.5: %v", err)
	}
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				_, _ = io.ReadAll(c)
				c.Close()
			}(conn)
		}
	}()
	port := ln.Addr().(*net.TCPAddr).Port

	endpoint := device.NewEndpoint("", port, time.Second, 10*time.Millisecond)
	router := setupScanRouter(t, endpoint)

	w := getPath(router, "/api/frame/v1/scan?subnet=127.0.0&timeoutMs=300")
	if w.Code != http.StatusOK {
		t.Fatalf("scan: status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data device.ScanResult `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Data.SubnetPrefix != "127.0.0" {
		t.Errorf("subnet prefix = %q, want 127.0.0", resp.Data.SubnetPrefix)
	}
	if len(resp.Data.RespondingHosts) != 1 || resp.Data.RespondingHosts[0] != "127.0.0.5" {
		t.Errorf("responding hosts = %v, want only 127.0.0.5", resp.Data.RespondingHosts)
	}

	// The sweep result should now be cached.
	if w := getPath(router, "/api/frame/v1/scan/last"); w.Code != http.StatusOK {
		t.Errorf("scan/last after a sweep: status = %d, want 200", w.Code)
	}
}

// TestDetectSubnetRoute always answers, flagging whether detection worked.
func TestDetectSubnetRoute(t *testing.T) {
	endpoint := device.NewEndpoint("", 12345, time.Second, 10*time.Millisecond)
	router := setupScanRouter(t, endpoint)

	w := getPath(router, "/api/frame/v1/detect-subnet")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Data struct {
			SubnetPrefix string `json:"subnetPrefix"`
			Detected     bool   `json:"detected"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Data.Detected && resp.Data.SubnetPrefix == "" {
		t.Error("detected=true should come with a prefix")
	}
}
