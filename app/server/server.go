package server

import (
	"context"
	"log/slog"
	"time"

	"contactia/app/config"
	"contactia/app/service/availability"
	"contactia/app/service/booking"
	"contactia/app/service/session"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
	"github.com/samber/oops"
)

// Server is the HTTP transport of the chat bot. The widget talks to
// /api/chat; /api/cancelar and the "verificar" action are kept for the
// pre-chat integrations.
type Server struct {
	cfg             *config.Config
	app             *fiber.App
	sessionMgr      *session.Manager
	availabilitySvc *availability.Service
	bookingSvc      *booking.Service
	timeout         time.Duration
}

func New(di *do.Injector) (*Server, error) {
	cfg := do.MustInvoke[*config.Config](di)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
	})

	s := &Server{
		cfg:             cfg,
		app:             app,
		sessionMgr:      do.MustInvoke[*session.Manager](di),
		availabilitySvc: do.MustInvoke[*availability.Service](di),
		bookingSvc:      do.MustInvoke[*booking.Service](di),
		timeout:         time.Duration(cfg.Chat.TimeoutSeconds) * time.Second,
	}

	api := app.Group("/api")
	api.Post("/chat", s.handleChat)
	api.Post("/cancelar", s.handleCancel)
	api.Get("/health", s.handleHealth)

	return s, nil
}

func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.app.ShutdownWithTimeout(5 * time.Second)
	}()

	slog.Info("HTTP server listening", "addr", s.cfg.HTTP.Addr)

	if err := s.app.Listen(s.cfg.HTTP.Addr); err != nil {
		return oops.Errorf("http server failed: %w", err)
	}

	return nil
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`

	// Legacy widget availability probe.
	Accion        string `json:"accion"`
	RestauranteID int    `json:"restaurante_id"`
	Fecha         string `json:"fecha"`
	Hora          string `json:"hora"`
	Personas      int    `json:"personas"`
}

func (s *Server) handleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"reply": "Petición inválida.",
		})
	}

	if req.Accion == "verificar" {
		ctx, cancel := context.WithTimeout(c.UserContext(), s.timeout)
		defer cancel()

		available, err := s.availabilitySvc.Check(ctx, req.RestauranteID, req.Fecha, req.Hora, req.Personas)
		if err != nil {
			slog.Error("Availability check failed", "error", err)

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"reply": "Error al verificar disponibilidad",
			})
		}

		return c.JSON(fiber.Map{"disponible": available})
	}

	sessionID, reply := s.sessionMgr.Handle(c.UserContext(), req.SessionID, req.Message)

	return c.JSON(fiber.Map{
		"session_id": sessionID,
		"reply":      reply,
	})
}

type cancelRequest struct {
	IDReserva string `json:"id_reserva"`
	Email     string `json:"email"`
}

func (s *Server) handleCancel(c *fiber.Ctx) error {
	var req cancelRequest
	if err := c.BodyParser(&req); err != nil || req.IDReserva == "" || req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"reply": "Faltan datos: id_reserva o email.",
		})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), s.timeout)
	defer cancel()

	reply, err := s.bookingSvc.Cancel(ctx, req.IDReserva, req.Email)
	if err != nil {
		slog.Error("Cancellation failed", "reservation", req.IDReserva, "error", err)

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"reply": "Error interno al cancelar la reserva.",
		})
	}

	return c.JSON(fiber.Map{"reply": reply})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
