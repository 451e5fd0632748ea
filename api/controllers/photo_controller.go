package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ellied/framecast/flickr"
	"github.com/ellied/framecast/tool"
)

// PhotoController owns the Flickr browsing routes.
type PhotoController struct {
	client *flickr.Client
}

func NewPhotoController(client *flickr.Client) *PhotoController {
	return &PhotoController{client: client}
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// HandleSearch pages through photos by tags and/or user. With neither given,
// falls back to the configured default tag and user.
// GET /api/frame/v1/photos/search?tags=dogs&user=...&page=1&perPage=100
func (ctrl *PhotoController) HandleSearch(c *gin.Context) {
	cfg := tool.GetCurrentConfig()
	tags := c.Query("tags")
	user := c.Query("user")
	if tags == "" && user == "" {
		tags = cfg.DefaultTag
		user = cfg.FlickrUserID
	}
	if tags == "" && user == "" {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("pass ?tags= or ?user=, or configure a default"))
		return
	}

	page, err := ctrl.client.Search(tags, user, queryInt(c, "page", 1), queryInt(c, "perPage", 100))
	if err != nil {
		tool.DefaultLogger.Warnf("Flickr search failed: %v", err)
		c.JSON(http.StatusBadGateway, tool.FastReturnError("Flickr search failed: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(page))
}

// HandleRecent pages through the most recent public uploads.
// GET /api/frame/v1/photos/recent?page=1&perPage=100
func (ctrl *PhotoController) HandleRecent(c *gin.Context) {
	page, err := ctrl.client.Recent(queryInt(c, "page", 1), queryInt(c, "perPage", 100))
	if err != nil {
		tool.DefaultLogger.Warnf("Flickr recent failed: %v", err)
		c.JSON(http.StatusBadGateway, tool.FastReturnError("Flickr request failed: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(page))
}
