package server

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/lox/pokernight/internal/game"
	"github.com/lox/pokernight/internal/leaderboard"
	"github.com/lox/pokernight/internal/session"
)

// Notifier receives the updated public view after every session mutation
type Notifier interface {
	Publish(sessionID string, view session.View)
}

// API exposes the session registry and the leaderboard over REST
type API struct {
	registry  *session.Registry
	store     leaderboard.Store
	notifiers []Notifier
	logger    *log.Logger
}

// NewAPI creates the REST API
func NewAPI(registry *session.Registry, store leaderboard.Store, logger *log.Logger, notifiers ...Notifier) *API {
	return &API{
		registry:  registry,
		store:     store,
		notifiers: notifiers,
		logger:    logger.WithPrefix("api"),
	}
}

// Router builds the gin engine with all routes registered
func (a *API) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	poker := api.Group("/poker")
	poker.POST("/game/create", a.createGame)
	poker.POST("/game/:id/join", a.joinGame)
	poker.GET("/game/:id/state", a.gameState)
	poker.POST("/game/:id/action", a.playerAction)
	poker.POST("/game/:id/next-hand", a.nextHand)
	poker.GET("/game/:id/available-actions/:player_id", a.availableActions)

	persons := api.Group("/persons")
	persons.GET("", a.listPersons)
	persons.GET("/:id", a.getPerson)
	persons.POST("", a.createPerson)
	persons.PUT("/bulk", a.bulkUpdatePersons)
	persons.PUT("/:id", a.updatePerson)
	persons.POST("/reset", a.resetPersons)

	return r
}

func (a *API) notify(view session.View) {
	for _, n := range a.notifiers {
		n.Publish(view.SessionID, view)
	}
}

// statusFor maps registry errors onto HTTP status codes: missing things are
// 404, policy/turn/action violations are 400
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, session.ErrPlayerNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"detail": err.Error()})
}

func (a *API) createGame(c *gin.Context) {
	id := a.registry.Create()
	c.JSON(http.StatusOK, gin.H{"game_id": id, "message": "Game created successfully"})
}

func (a *API) joinGame(c *gin.Context) {
	name := c.Query("player_name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "player_name is required"})
		return
	}

	view, err := a.registry.Join(c.Param("id"), name)
	if err != nil {
		abortWithError(c, err)
		return
	}

	a.notify(view)
	c.JSON(http.StatusOK, view)
}

func (a *API) gameState(c *gin.Context) {
	view, err := a.registry.State(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type actionRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
	Action   string `json:"action" binding:"required"`
	Amount   int    `json:"amount"`
}

func (a *API) playerAction(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	kind, ok := game.ParseAction(req.Action)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "unknown action: " + req.Action})
		return
	}

	view, err := a.registry.Apply(c.Param("id"), req.PlayerID, kind, req.Amount)
	if err != nil {
		abortWithError(c, err)
		return
	}

	a.notify(view)
	c.JSON(http.StatusOK, view)
}

func (a *API) nextHand(c *gin.Context) {
	view, err := a.registry.NextHand(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	a.notify(view)
	c.JSON(http.StatusOK, view)
}

func (a *API) availableActions(c *gin.Context) {
	actions, err := a.registry.AvailableActions(c.Param("id"), c.Param("player_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, actions)
}

func (a *API) listPersons(c *gin.Context) {
	c.JSON(http.StatusOK, a.store.List())
}

func (a *API) getPerson(c *gin.Context) {
	person, err := a.store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Person not found"})
		return
	}
	c.JSON(http.StatusOK, person)
}

type personCreateRequest struct {
	Name   string  `json:"name" binding:"required"`
	Amount float64 `json:"amount"`
}

func (a *API) createPerson(c *gin.Context) {
	var req personCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, a.store.Create(req.Name, req.Amount))
}

type personUpdateRequest struct {
	Amount float64 `json:"amount"`
}

func (a *API) updatePerson(c *gin.Context) {
	var req personUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	person, err := a.store.UpdateAmount(c.Param("id"), req.Amount)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Person not found"})
		return
	}
	c.JSON(http.StatusOK, person)
}

type bulkUpdateRequest struct {
	Persons []leaderboard.Update `json:"persons" binding:"required"`
}

func (a *API) bulkUpdatePersons(c *gin.Context) {
	var req bulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, a.store.BulkUpdate(req.Persons))
}

func (a *API) resetPersons(c *gin.Context) {
	c.JSON(http.StatusOK, a.store.ResetAll())
}
