package routers

import (
	"class-registration-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachScheduleSessionRoutes(router chi.Router, scheduleController *controllers.ScheduleController) {
	router.Get("/{sessionID}", scheduleController.GetSession)
	router.Post("/{sessionID}/pointer", scheduleController.ApplyPointerEvents)
	router.Put("/{sessionID}/filter", scheduleController.ChangeFilter)
	router.Delete("/{sessionID}/runs", scheduleController.DeleteRun)
	router.Post("/{sessionID}/reset", scheduleController.ResetSession)
	router.Post("/{sessionID}/submit", scheduleController.SubmitSession)
}
