package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// RegisterFallback serves static assets from STATIC_DIR. Unknown API paths
// get a JSON 404 and anything else lands on the console.
func (r *Router) RegisterFallback() {
	staticDir := r.cfg.StaticDir
	r.engine.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}

		if c.Request.Method == http.MethodGet && fileExists(staticDir, path) {
			c.File(filepath.Join(staticDir, filepath.Clean(path)))
			return
		}

		c.Redirect(http.StatusFound, "/")
	})
}

func fileExists(publicDir, reqPath string) bool {
	if publicDir == "" {
		return false
	}
	clean := filepath.Clean(reqPath)

	// prevent path traversal
	if clean == "." || clean == "/" || clean == ".." || strings.Contains(clean, "..") {
		return false
	}

	info, err := os.Stat(filepath.Join(publicDir, clean))
	if err != nil {
		return false
	}

	return !info.IsDir()
}
