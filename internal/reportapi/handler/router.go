// Package handler serves the report API over HTTP with gin.
package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"report-portal/internal/logging"
	"report-portal/internal/reportapi"
	"report-portal/internal/reportapi/repository"
)

// NewRouter returns the report API engine: GET /api/report, CORS for any origin,
// 204 for every OPTIONS request and a JSON 404 for anything else.
func NewRouter(repo repository.Repository, log logrus.FieldLogger) *gin.Engine {
	if log == nil {
		log = logging.Discard()
	}
	r := gin.New()
	r.Use(requestLogger(log))
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodOptions}
	corsConfig.AllowHeaders = []string{"Content-Type"}
	r.Use(cors.New(corsConfig))

	r.GET(reportapi.Path, listReports(repo, log))
	r.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET(reportapi.HealthPath, func(c *gin.Context) { c.Status(http.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
	})
	return r
}

func listReports(repo repository.Repository, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := repo.ListReports(c.Request.Context())
		if err != nil {
			logging.LogError(log, "reportapi", "listReports", "list reports", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
			return
		}
		c.JSON(http.StatusOK, reportapi.FromDomainList(list))
	}
}

func requestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Debug("report api request")
	}
}
