package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter builds the /api route tree. Reads are public, writes sit
// behind the session middleware, and the upload PUT is gated by its
// single-use token instead.
func NewRouter(h *Handler, events http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.Login)

	r.Get("/header/latest", h.LatestHeader)
	r.Get("/introduction/latest", h.LatestIntroduction)
	r.Get("/sections", h.ListSectionCopies)
	r.Get("/sections/{key}", h.SectionCopy)
	r.Get("/skills", h.ListSkills)
	r.Get("/skills/{id}", h.GetSkill)
	r.Get("/projects", h.ListProjects)
	r.Get("/projects/{id}", h.GetProject)
	r.Get("/offerings", h.ListOfferings)
	r.Get("/offerings/{id}", h.GetOffering)
	r.Get("/experiences", h.ListExperiences)
	r.Get("/experiences/{id}", h.GetExperience)
	r.Get("/technologies/visible", h.VisibleTechnologies)

	r.Put("/uploads/{token}", h.ReceiveUpload)

	r.Get("/events", events.ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(h.sessions.Middleware(reject))

		r.Post("/header", h.CreateHeader)
		r.Patch("/header/{id}", h.UpdateHeader)
		r.Delete("/header/{id}", h.DeleteHeader)

		r.Post("/introduction", h.CreateIntroduction)
		r.Patch("/introduction/{id}", h.UpdateIntroduction)
		r.Delete("/introduction/{id}", h.DeleteIntroduction)

		r.Post("/sections", h.CreateSectionCopy)
		r.Patch("/sections/{id}", h.UpdateSectionCopy)
		r.Delete("/sections/{id}", h.DeleteSectionCopy)

		r.Post("/skills", h.CreateSkill)
		r.Patch("/skills/{id}", h.UpdateSkill)
		r.Delete("/skills/{id}", h.DeleteSkill)

		r.Post("/projects", h.CreateProject)
		r.Patch("/projects/{id}", h.UpdateProject)
		r.Delete("/projects/{id}", h.DeleteProject)

		r.Get("/offerings/all", h.AdminListOfferings)
		r.Post("/offerings", h.CreateOffering)
		r.Patch("/offerings/{id}", h.UpdateOffering)
		r.Delete("/offerings/{id}", h.DeleteOffering)
		r.Delete("/offerings/{id}/purge", h.PurgeOffering)

		r.Post("/experiences", h.CreateExperience)
		r.Patch("/experiences/latest", h.UpdateLatestExperience)
		r.Patch("/experiences/{id}", h.UpdateExperience)
		r.Delete("/experiences/{id}", h.DeleteExperience)

		r.Get("/technologies", h.AdminListTechnologies)
		r.Post("/technologies", h.CreateTechnology)
		r.Patch("/technologies/{id}", h.UpdateTechnology)
		r.Put("/technologies/{id}/visibility", h.SetTechnologyVisibility)
		r.Put("/technologies/{id}/order", h.SetTechnologyOrder)
		r.Delete("/technologies/{id}", h.DeleteTechnology)

		r.Post("/uploads", h.IssueUpload)
	})

	return r
}
