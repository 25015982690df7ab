// Package server exposes a loaded knowledge store over HTTP so a corpus can
// be inspected without running the answering pipeline. All endpoints are
// read-only.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/medgraphlab/smra/internal/kb"
)

type Server struct {
	Retriever *kb.Retriever
	Meta      kb.Metadata
	Log       *zap.SugaredLogger
}

func New(retriever *kb.Retriever, meta kb.Metadata, log *zap.SugaredLogger) *Server {
	return &Server{
		Retriever: retriever,
		Meta:      meta,
		Log:       log,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", s.Health)

	v1 := r.Group("/v1")
	v1.POST("/entities/similar", s.SimilarEntities)
	v1.POST("/knowledge/entity", s.EntityKnowledge)
	v1.POST("/knowledge/relationship", s.RelationshipKnowledge)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"metadata": s.Meta,
	})
}

type SimilarEntitiesRequest struct {
	Query string `json:"query" binding:"required"`
	TopK  int    `json:"top_k"`
}

func (s *Server) SimilarEntities(c *gin.Context) {
	var req SimilarEntitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.TopK <= 0 {
		req.TopK = 5
	}

	matches := s.Retriever.FindSimilarEntities(req.Query, req.TopK)
	results := make([]gin.H, 0, len(matches))
	for _, m := range matches {
		results = append(results, gin.H{"entity": m.Entity, "score": m.Score})
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

type EntityKnowledgeRequest struct {
	Entity      string `json:"entity" binding:"required"`
	MaxTriplets int    `json:"max_triplets"`
}

func (s *Server) EntityKnowledge(c *gin.Context) {
	var req EntityKnowledgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.MaxTriplets <= 0 {
		req.MaxTriplets = 10
	}

	triplets := s.Retriever.RetrieveEntityKnowledge(req.Entity, req.MaxTriplets)
	c.JSON(http.StatusOK, gin.H{"triplets": triplets})
}

type RelationshipKnowledgeRequest struct {
	Subject   string `json:"subject" binding:"required"`
	Predicate string `json:"predicate" binding:"required"`
	Object    string `json:"object" binding:"required"`
}

func (s *Server) RelationshipKnowledge(c *gin.Context) {
	var req RelationshipKnowledgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	triplets := s.Retriever.RetrieveRelationshipKnowledge(req.Subject, req.Predicate, req.Object)
	c.JSON(http.StatusOK, gin.H{"triplets": triplets})
}
