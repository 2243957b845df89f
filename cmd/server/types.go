package main

import (
	"github.com/gin-gonic/gin"
	gsessions "github.com/gorilla/sessions"

	"codeberg.org/atlasagency/server/internal/config"
	"codeberg.org/atlasagency/server/internal/license"
	"codeberg.org/atlasagency/server/internal/llm"
	"codeberg.org/atlasagency/server/internal/planner"
	"codeberg.org/atlasagency/server/internal/sessions"
)

// holds all dependencies and state for the API server
type Server struct {
	config   *config.Config
	services *Services
	sessions sessions.Store
	cookies  gsessions.Store
	limiter  gin.HandlerFunc
	router   *gin.Engine
}

// holds all external service clients (generation, planning, licensing)
type Services struct {
	Generator llm.TextGenerator
	Planner   *planner.Planner
	Verifier  *license.Verifier
}
