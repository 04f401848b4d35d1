package routers

import (
	"class-registration-service/internal/app/config"
	"class-registration-service/internal/app/delivery/http/controllers"
	"class-registration-service/internal/app/delivery/http/middlewares"
	"class-registration-service/internal/pkg/constvars"
	"fmt"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	accessLogger *logrus.Logger,
	middlewares *middlewares.Middlewares,
	registrationController *controllers.RegistrationController,
	scheduleController *controllers.ScheduleController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{internalConfig.App.FrontendDomain},
		AllowedMethods:   []string{constvars.MethodGet, constvars.MethodPost, constvars.MethodPut, constvars.MethodDelete, constvars.MethodOptions},
		AllowedHeaders:   []string{constvars.HeaderAccept, constvars.HeaderAuthorization, constvars.HeaderContentType, constvars.HeaderXRequestID},
		ExposedHeaders:   []string{constvars.HeaderContentDisposition, constvars.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.RequestID)
	router.Use(middlewares.RequestLogger(internalConfig.App, accessLogger))
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.RateLimit())
	router.Use(middlewares.BodyLimit)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/registrations/me", func(r chi.Router) {
				r.Use(middlewares.RegistrationToken)
				attachRegistrationRoutes(r, registrationController, scheduleController)
			})

			r.Route("/schedule-sessions", func(r chi.Router) {
				r.Use(middlewares.RegistrationToken)
				attachScheduleSessionRoutes(r, scheduleController)
			})
		})
	})
}
