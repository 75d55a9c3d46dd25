// Package server exposes a gobangla engine over HTTP.
package server

/**
 * gobangla - A phonetic Bengali transliteration library
 * Licensed under AGPL-3.0-only
 */

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/banglaphonetic/gobangla/gobangla"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Longest text accepted by the convert endpoints, in bytes
const maxTextLength = 64 * 1024

// ErrorResponse body of every non 2xx response
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ConvertRequest body of POST /convert and POST /convert/word
type ConvertRequest struct {
	Text  string `json:"text"`
	Caret *int   `json:"caret,omitempty"`
}

// ConvertResponse body of a successful conversion
type ConvertResponse struct {
	Text  string `json:"text"`
	Caret *int   `json:"caret,omitempty"`
}

// SchemeResponse body of GET /scheme
type SchemeResponse struct {
	Identifier   string `json:"identifier"`
	LangCode     string `json:"lang_code"`
	DisplayName  string `json:"display_name"`
	Author       string `json:"author"`
	CompiledDate string `json:"compiled_date,omitempty"`
	IsStable     bool   `json:"is_stable"`
	Mappings     int    `json:"mappings"`
}

type handler struct {
	engine *gobangla.Engine
	logger *zap.Logger
}

// New makes the fiber app serving engine
func New(engine *gobangla.Engine, logger *zap.Logger) *fiber.App {
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &handler{engine: engine, logger: logger}

	app := fiber.New(fiber.Config{
		AppName:               "gobangla",
		DisableStartupMessage: true,
		BodyLimit:             maxTextLength + 1024,
		ErrorHandler:          h.errorHandler,
	})

	app.Use(h.logRequests)

	app.Get("/health", ping)
	app.Get("/scheme", h.scheme)
	app.Post("/convert", h.convert)
	app.Post("/convert/word", h.convertWord)

	return app
}

// Serve app on addr until ctx is done
func Serve(ctx context.Context, app *fiber.App, addr string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	errs := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", addr))
		errs <- app.Listen(addr)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		return app.ShutdownWithTimeout(10 * time.Second)
	}
}

func ping(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func badRequest(c *fiber.Ctx, code string, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Code: code, Message: message})
}

func (h *handler) parse(c *fiber.Ctx) (*ConvertRequest, error) {
	var req ConvertRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, badRequest(c, "invalid_body", "body should be JSON like {\"text\": \"ami\"}")
	}

	if len(req.Text) > maxTextLength {
		return nil, badRequest(c, "text_too_long", "text is longer than 64KiB")
	}

	return &req, nil
}

func (h *handler) scheme(c *fiber.Ctx) error {
	scheme := h.engine.Scheme()
	sd := scheme.Details()

	return c.JSON(SchemeResponse{
		Identifier:   sd.Identifier,
		LangCode:     sd.LangCode,
		DisplayName:  sd.DisplayName,
		Author:       sd.Author,
		CompiledDate: sd.CompiledDate,
		IsStable:     sd.IsStable,
		Mappings:     scheme.Len(),
	})
}

func (h *handler) convert(c *fiber.Ctx) error {
	req, err := h.parse(c)
	if req == nil {
		return err
	}

	return c.JSON(ConvertResponse{Text: h.engine.Convert(req.Text)})
}

// Same as pressing space at caret, caret defaults to the end of text
func (h *handler) convertWord(c *fiber.Ctx) error {
	req, err := h.parse(c)
	if req == nil {
		return err
	}

	caret := len([]rune(req.Text))
	if req.Caret != nil {
		caret = *req.Caret
	}

	edit := gobangla.NewInputSession(h.engine).OnSpace(req.Text, caret)

	return c.JSON(ConvertResponse{Text: edit.Text, Caret: &edit.Caret})
}

func (h *handler) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	h.logger.Debug("request",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("took", time.Since(start)),
	)

	return err
}

func (h *handler) errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(ErrorResponse{Code: http.StatusText(fe.Code), Message: fe.Message})
	}

	h.logger.Error("handler error",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)

	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{Code: "internal", Message: "internal error"})
}
