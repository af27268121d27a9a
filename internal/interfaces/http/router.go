package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Avisos-pago-api/internal/application/auth"
	apppayrun "github.com/jhoicas/Avisos-pago-api/internal/application/payrun"
	"github.com/jhoicas/Avisos-pago-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Records    repository.RecordRepository
	ApproveUC  *apppayrun.ApproveUseCase
	GenerateUC *apppayrun.GenerateRunUseCase
	DispatchUC *apppayrun.DispatchRunUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Records (protegido): listado y compuerta de aprobación
	records := protected.Group("/records")
	recordHandler := NewRecordHandler(deps.Records, deps.ApproveUC)
	records.Get("/", recordHandler.List)
	records.Get("/:row", recordHandler.GetByRow)
	records.Post("/:row/approve", recordHandler.Approve)

	// Runs (protegido): disparo manual de las dos fases
	runs := protected.Group("/runs")
	runHandler := NewRunHandler(deps.GenerateUC, deps.DispatchUC)
	runs.Post("/generation", runHandler.Generation)
	runs.Post("/dispatch", runHandler.Dispatch)
}
