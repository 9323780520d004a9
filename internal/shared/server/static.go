package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// registerStatic serves the single-page frontend from publicDir. Unknown
// paths fall back to index.html so client-side routing works.
func registerStatic(r *gin.Engine, publicDir string) {
	if strings.TrimSpace(publicDir) == "" {
		return
	}
	root, err := filepath.Abs(publicDir)
	if err != nil {
		return
	}

	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Status(http.StatusNotFound)
			return
		}
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		reqPath := c.Request.URL.Path
		if reqPath == "/" {
			reqPath = "/index.html"
		}

		target := filepath.Join(root, filepath.FromSlash(reqPath))
		// Directory traversal guard.
		if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			c.String(http.StatusForbidden, "Forbidden")
			return
		}

		if info, err := os.Stat(target); err == nil && !info.IsDir() {
			c.Header("Cache-Control", "public, max-age=3600")
			c.File(target)
			return
		}

		index := filepath.Join(root, "index.html")
		if _, err := os.Stat(index); err == nil {
			c.File(index)
			return
		}
		c.String(http.StatusNotFound, "Not found")
	})
}
