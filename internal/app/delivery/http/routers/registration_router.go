package routers

import (
	"class-registration-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachRegistrationRoutes(router chi.Router, registrationController *controllers.RegistrationController, scheduleController *controllers.ScheduleController) {
	router.Get("/", registrationController.GetRegistration)
	router.Put("/details", registrationController.UpdateDetails)
	router.Post("/reservation/confirm", registrationController.ConfirmReservation)
	router.Get("/classes", registrationController.ListAvailableClasses)
	router.Post("/classes/{classID}", registrationController.SelectClass)
	router.Get("/schedule/export", registrationController.ExportSchedule)
	router.Post("/schedule/sessions", scheduleController.CreateSession)
}
