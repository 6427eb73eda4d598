package main

import (
	"net/http"
	"time"

	"github.com/WST-T/pweaseHiredMe/pkg/response"
	"github.com/gin-gonic/gin"
)

func (app *application) routes() http.Handler {
	if !app.Config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// simple logger middleware that uses zap
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		app.Logger.Sugar().Infow("http",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	})

	r.GET("/healthz", app.healthz)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/interviews", app.listInterviews)
		v1.GET("/rankings", app.listRankings)
	}

	return r
}

func (app *application) healthz(c *gin.Context) {
	if err := app.DB.Ping(c.Request.Context()); err != nil {
		response.InternalError(c, "database unreachable")
		return
	}
	response.OK(c, gin.H{"status": "ok"})
}

// listInterviews returns every future interview across owners.
func (app *application) listInterviews(c *gin.Context) {
	interviews, err := app.Repository.ListAllFuture(c.Request.Context())
	if err != nil {
		app.Logger.Sugar().Errorw("failed to list interviews", "err", err)
		response.InternalError(c, "")
		return
	}
	response.OK(c, interviews)
}

// listRankings returns all-time per-owner interview counts.
func (app *application) listRankings(c *gin.Context) {
	counts, err := app.Repository.CountByOwner(c.Request.Context())
	if err != nil {
		app.Logger.Sugar().Errorw("failed to list rankings", "err", err)
		response.InternalError(c, "")
		return
	}
	response.OK(c, counts)
}
