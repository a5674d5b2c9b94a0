package api

import "github.com/gofiber/fiber/v3"

// Handlers groups the taxonomy handlers served under /api/v1.
type Handlers struct {
	Domains   *DomainHandler
	Niches    *NicheHandler
	Subniches *SubnicheHandler
	Keywords  *KeywordHandler
}

// Register mounts every taxonomy route on r. Static segments are registered
// before :id so they are not parsed as ids.
func (h *Handlers) Register(r fiber.Router) {
	domains := r.Group("/domains")
	domains.Get("/", h.Domains.List)
	domains.Get("/all", h.Domains.All)
	domains.Get("/:id", h.Domains.Get)
	domains.Post("/", h.Domains.Create)
	domains.Patch("/:id", h.Domains.Update)
	domains.Delete("/:id", h.Domains.Delete)

	niches := r.Group("/niches")
	niches.Get("/", h.Niches.List)
	niches.Get("/all", h.Niches.All)
	niches.Get("/:id", h.Niches.Get)
	niches.Post("/", h.Niches.Create)
	niches.Patch("/:id", h.Niches.Update)
	niches.Delete("/:id", h.Niches.Delete)

	subniches := r.Group("/subniches")
	subniches.Get("/", h.Subniches.List)
	subniches.Get("/all", h.Subniches.All)
	subniches.Get("/:id", h.Subniches.Get)
	subniches.Post("/", h.Subniches.Create)
	subniches.Patch("/:id", h.Subniches.Update)
	subniches.Delete("/:id", h.Subniches.Delete)

	keywords := r.Group("/keywords")
	keywords.Get("/", h.Keywords.List)
	keywords.Get("/all", h.Keywords.All)
	keywords.Get("/export", h.Keywords.Export)
	keywords.Post("/import", h.Keywords.Import)
	keywords.Get("/:id", h.Keywords.Get)
	keywords.Post("/", h.Keywords.Create)
	keywords.Patch("/:id", h.Keywords.Update)
	keywords.Delete("/:id", h.Keywords.Delete)
}
