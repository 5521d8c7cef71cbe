package routes

import (
	"github.com/GiorgiUbiria/donation_platform/internal/auth"
	"github.com/GiorgiUbiria/donation_platform/internal/handlers"
	appmw "github.com/GiorgiUbiria/donation_platform/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/GiorgiUbiria/donation_platform/docs"
)

func NewRoutes(h *handlers.Handler, tokens *auth.Tokens, log *zap.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(appmw.RequestID)
	r.Use(appmw.AccessLog(log))
	r.Use(middleware.Recoverer)

	authed := appmw.Authenticated(tokens)

	r.Get("/health", h.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.With(authed).Get("/me", h.Me)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Get("/{id}", h.GetCategory)
		r.With(authed).Post("/", h.CreateCategory)
		r.With(authed).Put("/{id}", h.UpdateCategory)
		r.With(authed).Delete("/{id}", h.DeleteCategory)
	})

	r.Route("/campaigns", func(r chi.Router) {
		r.Get("/", h.ListCampaigns)
		r.With(authed).Post("/", h.CreateCampaign)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetCampaign)
			r.With(authed).Put("/", h.UpdateCampaign)
			r.With(authed).Delete("/", h.DeleteCampaign)
			r.With(authed).Post("/recompute-status", h.RecomputeStatus)

			r.Get("/donations", h.ListCampaignDonations)
			r.Get("/donations/stats", h.DonationStats)
			r.With(authed).Post("/donations", h.Donate)

			r.Get("/comments", h.ListComments)
			r.With(authed).Post("/comments", h.CreateComment)
		})
	})

	r.Route("/donations", func(r chi.Router) {
		r.Use(authed)
		r.Get("/mine", h.MyDonations)
		r.Get("/{id}", h.GetDonation)
	})

	r.Route("/comments/{id}", func(r chi.Router) {
		r.Get("/", h.GetComment)
		r.With(authed).Put("/", h.UpdateComment)
		r.With(authed).Delete("/", h.DeleteComment)
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
