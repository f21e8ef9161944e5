// Package server implements the HTTP API for evaluating expressions against
// a variable store.
package server

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zephyrtronium/radicals"
	"github.com/zephyrtronium/radicals/varstore"
)

// Server is the HTTP API server.
type Server struct {
	app    *fiber.App
	engine *radicals.Engine
	store  varstore.Store
	log    *slog.Logger
	// mu serializes evaluations that read and then set the answer.
	mu sync.Mutex
}

// New creates a server that evaluates with e against s.
func New(e *radicals.Engine, s varstore.Store, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	srv := &Server{engine: e, store: s, log: log}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
	})

	app.Get("/healthz", srv.health)
	app.Post("/v1/evaluate", srv.evaluate)
	app.Get("/v1/variables", srv.listVariables)
	app.Get("/v1/variables/:name", srv.getVariable)
	app.Put("/v1/variables/:name", srv.putVariable)
	app.Delete("/v1/variables/:name", srv.deleteVariable)
	app.Delete("/v1/variables", srv.clearVariables)

	srv.app = app
	return srv
}

// Listen starts the HTTP server on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App returns the underlying Fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

type evaluateRequest struct {
	Expression string `json:"expression"`
	// Approx, if positive, is the precision for recognizing an inexact
	// result as a radical.
	Approx float64 `json:"approx"`
}

func (s *Server) evaluate(c *fiber.Ctx) error {
	var req evaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
	}
	if req.Expression == "" {
		return errorJSON(c, fiber.StatusBadRequest, "expression is required")
	}
	e := s.engine
	if req.Approx > 0 {
		e = radicals.NewEngine(radicals.WithLogger(s.log), radicals.WithApproxPrecision(req.Approx))
	}

	s.mu.Lock()
	src := varstore.PrependAnswer(req.Expression, s.store)
	r := e.Evaluate(src, s.store)
	if r.Success {
		if err := s.store.SetAnswer(r.Value); err != nil {
			// Results too large for the answer slot are still reported.
			s.log.Warn("couldn't set answer", slog.Any("err", err))
		}
	}
	s.mu.Unlock()

	if !r.Success {
		s.log.Info("evaluation failed", slog.String("expr", src), slog.Any("err", r.Err))
		return c.JSON(failureJSON(src, r.Err))
	}
	s.log.Info("evaluated", slog.String("expr", src), slog.Float64("value", r.Value))
	return c.JSON(resultJSON(src, r))
}

func (s *Server) listVariables(c *fiber.Ctx) error {
	all := varstore.All(s.store)
	names := s.store.Names()
	items := make([]fiber.Map, 0, len(names))
	for _, name := range names {
		v, ok := all[name]
		if !ok {
			continue
		}
		items = append(items, variableJSON(name, v))
	}
	return c.JSON(fiber.Map{"variables": items})
}

func (s *Server) getVariable(c *fiber.Ctx) error {
	name := c.Params("name")
	v, ok := s.store.Lookup(name)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, fmt.Sprintf("variable %s is not defined", name))
	}
	return c.JSON(variableJSON(name, v))
}

type putVariableRequest struct {
	Value *float64 `json:"value"`
}

func (s *Server) putVariable(c *fiber.Ctx) error {
	name := c.Params("name")
	var req putVariableRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
	}
	if req.Value == nil {
		return errorJSON(c, fiber.StatusBadRequest, "value is required")
	}
	if err := s.store.Define(name, *req.Value); err != nil {
		return storeError(c, err)
	}
	s.log.Info("defined variable", slog.String("name", name), slog.Float64("value", *req.Value))
	return c.JSON(variableJSON(name, *req.Value))
}

func (s *Server) deleteVariable(c *fiber.Ctx) error {
	name := c.Params("name")
	if err := s.store.Delete(name); err != nil {
		return storeError(c, err)
	}
	s.log.Info("deleted variable", slog.String("name", name))
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) clearVariables(c *fiber.Ctx) error {
	if err := s.store.Clear(); err != nil {
		return storeError(c, err)
	}
	s.log.Info("cleared variables")
	return c.SendStatus(fiber.StatusNoContent)
}

func storeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, varstore.ErrConstant), errors.Is(err, varstore.ErrReserved):
		return errorJSON(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, varstore.ErrInvalidName), errors.Is(err, varstore.ErrInvalidValue):
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}
	return errorJSON(c, fiber.StatusInternalServerError, err.Error())
}

func errorJSON(c *fiber.Ctx, code int, msg string) error {
	return c.Status(code).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": msg,
		},
	})
}

func variableJSON(name string, v float64) fiber.Map {
	return fiber.Map{
		"name":     name,
		"value":    v,
		"constant": varstore.IsConstant(name),
	}
}

func resultJSON(src string, r radicals.Result) fiber.Map {
	m := fiber.Map{
		"expression": src,
		"success":    true,
		"value":      number(r.Value),
		"decimal":    number(r.Decimal),
	}
	if r.Radical != nil {
		m["radical"] = r.Radical.String()
	}
	if r.Approx != nil {
		m["approx"] = r.Approx.String()
	}
	return m
}

func failureJSON(src string, err error) fiber.Map {
	e := fiber.Map{"message": err.Error()}
	var in radicals.InputError
	if errors.As(err, &in) && in.Pos() >= 0 {
		e["position"] = in.Pos()
	}
	return fiber.Map{
		"expression": src,
		"success":    false,
		"error":      e,
	}
}

// number renders v for JSON, which has no infinities or NaN. Those are
// written as strings.
func number(v float64) any {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return v
}
