package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/ellied/framecast/api/controllers"
	"github.com/ellied/framecast/api/middlewares"
	"github.com/ellied/framecast/api/notifyhub"
	"github.com/ellied/framecast/device"
	"github.com/ellied/framecast/flickr"
	"github.com/ellied/framecast/tool"
)

// WebOutPath is where the static web UI lives, when present.
var WebOutPath = "web/out"

// Server is the HTTP API server bridging the browser UI to the frame.
type Server struct {
	port     int
	engine   *gin.Engine
	server   *http.Server
	endpoint *device.Endpoint
	photos   *flickr.Client
	hub      *notifyhub.Hub
	mu       sync.RWMutex
}

// NewServer creates the API server with its collaborators injected.
func NewServer(port int, endpoint *device.Endpoint, photos *flickr.Client, hub *notifyhub.Hub) *Server {
	return &Server{
		port:     port,
		endpoint: endpoint,
		photos:   photos,
		hub:      hub,
	}
}

func (s *Server) setupRoutes() *gin.Engine {
	if tool.DefaultLogger.GetLevel() == log.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.Default()
	engine.Use(gin.Recovery())

	// Initialize controllers
	deviceCtrl := controllers.NewDeviceController(s.endpoint, s.hub)
	scanCtrl := controllers.NewScanController(s.endpoint, s.hub)
	photoCtrl := controllers.NewPhotoController(s.photos)
	presetCtrl := controllers.NewPresetController(s.endpoint, s.hub)
	settingsCtrl := controllers.NewSettingsController(s.endpoint)
	statusCtrl := controllers.NewStatusController(s.endpoint)

	v1 := engine.Group("/api/frame/v1", middlewares.OnlyAllowLAN)
	{
		v1.POST("/display/image", deviceCtrl.HandleDisplayImage) // Show one photo
		v1.POST("/display/video", deviceCtrl.HandleDisplayVideo) // Play one video
		v1.POST("/resume", deviceCtrl.HandleResume)              // Back to slideshow
		v1.POST("/tag", deviceCtrl.HandleTag)                    // Switch slideshow tag
		v1.POST("/brightness", deviceCtrl.HandleBrightness)      // Adjust brightness
		v1.POST("/options", deviceCtrl.HandleOptions)            // Push full option block

		v1.GET("/device", deviceCtrl.HandleGetDevice)     // Current endpoint
		v1.POST("/device/host", deviceCtrl.HandleSetHost) // Update device IP
		v1.GET("/device/ping", deviceCtrl.HandlePing)     // ICMP reachability (never the command port)

		v1.GET("/scan", scanCtrl.HandleScan)                  // Sweep a /24 for frames
		v1.GET("/scan/last", scanCtrl.HandleLastScan)         // Most recent sweep
		v1.GET("/detect-subnet", scanCtrl.HandleDetectSubnet) // Guess local /24

		v1.GET("/photos/search", photoCtrl.HandleSearch) // Flickr search by tags/user
		v1.GET("/photos/recent", photoCtrl.HandleRecent) // Flickr recent uploads

		v1.GET("/presets", presetCtrl.HandleList)
		v1.POST("/presets", presetCtrl.HandleAdd)
		v1.DELETE("/presets/:id", presetCtrl.HandleDelete)
		v1.POST("/presets/:id/apply", presetCtrl.HandleApply)

		v1.GET("/settings", settingsCtrl.HandleGet)
		v1.PATCH("/settings", settingsCtrl.HandlePatch)

		v1.GET("/status", statusCtrl.HandleStatus)
		v1.GET("/create-qr-code", controllers.GenerateQRCode)
		v1.GET("/notify-ws", notifyhub.HandleNotifyWS(s.hub))
	}

	// Serve the static web UI when a build is present. App routes fall back to
	// index.html so deep links open without a redirect.
	if info, err := os.Stat(WebOutPath); err == nil && info.IsDir() {
		fileServer := http.FileServer(http.Dir(WebOutPath))
		engine.NoRoute(gin.WrapF(func(w http.ResponseWriter, r *http.Request) {
			path := strings.TrimPrefix(r.URL.Path, "/")
			if path == "" {
				path = "index.html"
			}
			if ext := filepath.Ext(path); ext != "" && ext != ".html" {
				fileServer.ServeHTTP(w, r)
				return
			}
			http.ServeFile(w, r, filepath.Join(WebOutPath, "index.html"))
		}))
		tool.DefaultLogger.Infof("[Server] Serving web UI from %s", WebOutPath)
	}

	return engine
}

// Start starts the HTTP server
func (s *Server) Start() error {
	engine := s.setupRoutes()

	s.mu.Lock()
	s.engine = engine
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: engine,
	}
	server := s.server
	s.mu.Unlock()

	tool.DefaultLogger.Infof("Starting API server on http://0.0.0.0:%d", s.port)
	return server.ListenAndServe()
}
