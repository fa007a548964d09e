// FILE: internal/httpapi/handler.go
package httpapi

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"chessmate/internal/chess"
	"chessmate/internal/core"
	"chessmate/internal/service"
)

const rateLimitRate = 10 // req/sec

// HealthChecker reports whether the storage backend is reachable.
type HealthChecker interface {
	IsHealthy() bool
}

type HTTPHandler struct {
	svc    *service.Service
	health HealthChecker
}

func NewHTTPHandler(svc *service.Service, health HealthChecker) *HTTPHandler {
	return &HTTPHandler{svc: svc, health: health}
}

func NewFiberApp(svc *service.Service, health HealthChecker, devMode bool) *fiber.App {
	// Create handler
	h := NewHTTPHandler(svc, health)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Health check (no rate limit)
	app.Get("/health", h.Health)

	// API v1 routes with rate limiting
	api := app.Group("/api/v1")

	// Rate limiter: 10/20 req/sec per IP with expiry
	maxReq := rateLimitRate
	if devMode {
		maxReq = rateLimitRate * 2 // Loosen rate limiter for testing
	}
	api.Use(limiter.New(limiter.Config{
		Max:        maxReq,          // Allow requests per second
		Expiration: 1 * time.Second, // Per second
		KeyGenerator: func(c *fiber.Ctx) string {
			// Check X-Forwarded-For first, then RemoteIP
			if xff := c.Get("X-Forwarded-For"); xff != "" {
				// Take the first IP from X-Forwarded-For chain
				if idx := strings.Index(xff, ","); idx != -1 {
					return strings.TrimSpace(xff[:idx])
				}
				return xff
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(core.ErrorResponse{
				Error:   "rate limit exceeded",
				Code:    core.ErrRateLimitExceeded,
				Details: fmt.Sprintf("%d requests per second allowed", maxReq),
			})
		},
		Storage:                nil, // Use in-memory storage (default)
		SkipFailedRequests:     false,
		SkipSuccessfulRequests: false,
	}))

	// Content-Type validation for POST requests
	api.Use(contentTypeValidator)

	// Middleware validation for sanitization
	api.Use(validationMiddleware)

	// Register game routes
	api.Post("/games", h.CreateGame)
	api.Post("/games/:gameId/join", h.JoinGame)
	api.Get("/games/:gameId", h.GetGame)
	api.Get("/games/:gameId/moves", h.LegalMoves)
	api.Post("/games/:gameId/moves", h.MakeMove)
	api.Get("/games/:gameId/board", h.GetBoard)
	api.Delete("/games/:gameId", h.DeleteGame)

	return app
}

// contentTypeValidator ensures POST requests have application/json
func contentTypeValidator(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		contentType := c.Get("Content-Type")
		if contentType != "application/json" && contentType != "" {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(core.ErrorResponse{
				Error:   "unsupported media type",
				Code:    core.ErrInvalidContent,
				Details: "Content-Type must be application/json",
			})
		}
	}
	return c.Next()
}

// customErrorHandler provides consistent error responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	response := core.ErrorResponse{
		Error: "internal server error",
		Code:  core.ErrInternalError,
	}

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		response.Error = e.Message

		// Map HTTP status to error codes
		switch code {
		case fiber.StatusNotFound:
			response.Code = core.ErrGameNotFound
		case fiber.StatusBadRequest:
			response.Code = core.ErrInvalidRequest
		case fiber.StatusTooManyRequests:
			response.Code = core.ErrRateLimitExceeded
		}
	}

	return c.Status(code).JSON(response)
}

// serviceError maps service and rules errors onto the wire taxonomy.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return c.Status(fiber.StatusNotFound).JSON(core.ErrorResponse{
			Error: "game not found",
			Code:  core.ErrGameNotFound,
		})
	case errors.Is(err, chess.ErrInvalidFEN):
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid FEN",
			Code:    core.ErrInvalidFEN,
			Details: err.Error(),
		})
	case errors.Is(err, chess.ErrIllegalMove):
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "illegal move",
			Code:    core.ErrInvalidMove,
			Details: err.Error(),
		})
	case errors.Is(err, chess.ErrNotYourTurn):
		return c.Status(fiber.StatusConflict).JSON(core.ErrorResponse{
			Error:   "not your turn",
			Code:    core.ErrNotYourTurn,
			Details: err.Error(),
		})
	case errors.Is(err, chess.ErrGameState):
		return c.Status(fiber.StatusConflict).JSON(core.ErrorResponse{
			Error:   "operation not allowed in current game state",
			Code:    core.ErrGameState,
			Details: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "internal server error",
			Code:  core.ErrInternalError,
		})
	}
}

// requireGameID validates the gameId path parameter.
func requireGameID(c *fiber.Ctx) (string, bool) {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		_ = c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid game ID format",
			Code:    core.ErrInvalidRequest,
			Details: "game ID must be a valid UUID",
		})
		return "", false
	}
	return gameID, true
}

// requireValidatedBody retrieves the struct the validation middleware parsed.
func requireValidatedBody(c *fiber.Ctx) (any, bool) {
	validated, ok := c.Locals("validated").(bool)
	if !ok || !validated {
		_ = c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "validation bypass detected",
			Code:  core.ErrInternalError,
		})
		return nil, false
	}
	body := c.Locals("validatedBody")
	if body == nil {
		_ = c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "validation data missing",
			Code:  core.ErrInternalError,
		})
		return nil, false
	}
	return body, true
}

// Health check endpoint
func (h *HTTPHandler) Health(c *fiber.Ctx) error {
	status := "healthy"
	if h.health != nil && !h.health.IsHealthy() {
		status = "degraded"
	}
	return c.JSON(fiber.Map{
		"status": status,
		"time":   time.Now().Unix(),
	})
}

// CreateGame starts a new game for the first player
func (h *HTTPHandler) CreateGame(c *fiber.Ctx) error {
	body, ok := requireValidatedBody(c)
	if !ok {
		return nil
	}
	req := *(body.(*core.CreateGameRequest))

	resp, err := h.svc.CreateGame(c.Context(), req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// JoinGame registers the second player
func (h *HTTPHandler) JoinGame(c *fiber.Ctx) error {
	gameID, ok := requireGameID(c)
	if !ok {
		return nil
	}
	body, ok := requireValidatedBody(c)
	if !ok {
		return nil
	}
	req := *(body.(*core.JoinGameRequest))

	resp, err := h.svc.JoinGame(c.Context(), gameID, req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

// GetGame retrieves current game state
func (h *HTTPHandler) GetGame(c *fiber.Ctx) error {
	gameID, ok := requireGameID(c)
	if !ok {
		return nil
	}

	resp, err := h.svc.GetGame(c.Context(), gameID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

// LegalMoves lists the legal moves for the player named in the query
func (h *HTTPHandler) LegalMoves(c *fiber.Ctx) error {
	gameID, ok := requireGameID(c)
	if !ok {
		return nil
	}
	player := c.Query("player")
	if player == "" {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "missing player name",
			Code:    core.ErrInvalidRequest,
			Details: "query parameter 'player' is required",
		})
	}

	resp, err := h.svc.LegalMoves(c.Context(), gameID, player)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

// MakeMove submits a move
func (h *HTTPHandler) MakeMove(c *fiber.Ctx) error {
	gameID, ok := requireGameID(c)
	if !ok {
		return nil
	}
	body, ok := requireValidatedBody(c)
	if !ok {
		return nil
	}
	req := *(body.(*core.MoveRequest))

	resp, err := h.svc.MakeMove(c.Context(), gameID, req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

// GetBoard returns ASCII representation of the board
func (h *HTTPHandler) GetBoard(c *fiber.Ctx) error {
	gameID, ok := requireGameID(c)
	if !ok {
		return nil
	}

	resp, err := h.svc.GetBoard(c.Context(), gameID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

// DeleteGame removes a game
func (h *HTTPHandler) DeleteGame(c *fiber.Ctx) error {
	gameID, ok := requireGameID(c)
	if !ok {
		return nil
	}

	if err := h.svc.DeleteGame(c.Context(), gameID); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
