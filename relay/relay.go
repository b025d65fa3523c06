// Package relay implements the TBB backend: it accepts user messages over
// HTTP, persists them, forwards them to the AI responder, and returns the
// responder's reply.
package relay

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Joseph-Bostok/TBB/pkg/responder"
	"github.com/Joseph-Bostok/TBB/pkg/safety"
	"github.com/Joseph-Bostok/TBB/pkg/store"
)

// Relay owns the HTTP server and the two collaborators every request flows
// through: the message store and the responder client. All three are fixed
// at construction for the lifetime of the process.
type Relay struct {
	config    Config
	messages  store.Messages
	responder *responder.Client
	screener  *safety.Screener
	validate  *validator.Validate
	logger    *zap.Logger
	server    *fiber.App
}

// inboundMessage is the body of POST /message. The fields are pointers so
// "field missing" and "field empty" stay distinguishable: required rejects
// only the former.
type inboundMessage struct {
	User    *string `json:"user" validate:"required"`
	Message *string `json:"message" validate:"required"`
}

type replyResponse struct {
	Reply string `json:"reply"`
}

type statsResponse struct {
	User         string `json:"user"`
	MessageCount int    `json:"message_count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New creates a Relay from the given configuration.
func New(config Config, logger *zap.Logger) (*Relay, error) {
	var messages store.Messages
	var err error

	if config.DBPath != "" {
		messages, err = store.NewSQLiteMessages(config.DBPath)
		if err != nil {
			return nil, fmt.Errorf("create SQLite message store: %w", err)
		}
		logger.Info("using SQLite storage", zap.String("path", config.DBPath))
	} else {
		messages = store.NewMemoryMessages()
		logger.Info("using in-memory storage")
	}

	var screener *safety.Screener
	if !config.SafetyDisabled {
		rules := safety.DefaultRules()
		if config.SafetyRulesPath != "" {
			rules, err = safety.LoadRules(config.SafetyRulesPath)
			if err != nil {
				return nil, fmt.Errorf("load safety rules: %w", err)
			}
			logger.Info("loaded safety rules", zap.String("path", config.SafetyRulesPath))
		}
		if config.Hotline != "" {
			rules.Hotline = config.Hotline
		}
		screener, err = safety.NewScreener(rules)
		if err != nil {
			return nil, fmt.Errorf("create crisis screener: %w", err)
		}
	} else {
		logger.Warn("crisis screening disabled")
	}

	app := fiber.New(fiber.Config{
		// Disable startup message for cleaner logs
		DisableStartupMessage: true,
	})

	r := &Relay{
		config:    config,
		messages:  messages,
		responder: responder.NewClient(config.ResponderURL, config.ResponderTimeout),
		screener:  screener,
		validate:  validator.New(),
		logger:    logger,
		server:    app,
	}

	// Register routes
	app.Post("/message", r.handleMessage)
	app.Get("/stats/:user", r.handleStats)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})

	return r, nil
}

// Run starts the backend server on the configured listening address.
func (r *Relay) Run() error {
	r.logger.Info("TTB backend running",
		zap.String("listen", r.config.ListenAddr),
		zap.String("responder", r.config.ResponderURL),
	)

	return r.server.Listen(r.config.ListenAddr)
}

// Shutdown stops accepting connections and drains in-flight requests.
func (r *Relay) Shutdown() error {
	return r.server.Shutdown()
}

// Close releases the relay's resources.
func (r *Relay) Close() error {
	return r.messages.Close()
}

// handleMessage runs the full per-request flow: parse, validate, persist,
// screen, forward, reply. Any failure short-circuits to a 400 with a
// plain-text "Error: ..." body; there are no retries. A message persisted
// before a responder failure stays persisted.
func (r *Relay) handleMessage(c *fiber.Ctx) error {
	var msg inboundMessage
	if err := json.Unmarshal(c.Body(), &msg); err != nil {
		r.logger.Error("failed to parse request", zap.Error(err))
		return errorText(c, fmt.Errorf("parse request body: %w", err))
	}

	if err := r.validate.Struct(msg); err != nil {
		r.logger.Error("invalid request body", zap.Error(err))
		return errorText(c, fmt.Errorf("invalid request body: %w", err))
	}

	user, message := *msg.User, *msg.Message
	r.logger.Info(fmt.Sprintf("[INCOMING] %s: %s", user, message))

	ctx := c.Context()

	if err := r.messages.SaveMessage(ctx, user, message); err != nil {
		r.logger.Error("failed to save message", zap.Error(err), zap.String("user", user))
		return errorText(c, err)
	}

	if r.screener != nil && r.screener.Screen(message) {
		r.logger.Warn("crisis content detected, skipping responder", zap.String("user", user))
		return c.JSON(replyResponse{Reply: r.screener.Response()})
	}

	reply, err := r.responder.GetAIResponse(ctx, user, message)
	if err != nil {
		r.logger.Error("responder request failed", zap.Error(err), zap.String("user", user))
		return errorText(c, err)
	}

	return c.JSON(replyResponse{Reply: reply})
}

// handleStats returns the number of messages stored for a user.
func (r *Relay) handleStats(c *fiber.Ctx) error {
	user := c.Params("user")

	count, err := r.messages.CountByUser(c.Context(), user)
	if err != nil {
		r.logger.Error("failed to count messages", zap.Error(err), zap.String("user", user))
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "failed to count messages"})
	}

	return c.JSON(statsResponse{User: user, MessageCount: count})
}

// errorText writes the single failure shape of POST /message: status 400
// with a plain-text body describing what went wrong.
func errorText(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).SendString("Error: " + err.Error())
}
