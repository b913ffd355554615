package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/smitebuilder/server/api/response"
	"github.com/kasuganosora/smitebuilder/server/game/item"
	"github.com/kasuganosora/smitebuilder/server/resource"
)

// GodHandler handles god REST endpoints.
type GodHandler struct {
	catalog *resource.Catalog
	elig    *Eligibility
}

// NewGodHandler creates a GodHandler.
func NewGodHandler(catalog *resource.Catalog, elig *Eligibility) *GodHandler {
	return &GodHandler{catalog: catalog, elig: elig}
}

// List returns every god.
// GET /api/gods
func (h *GodHandler) List(c *gin.Context) {
	response.OK(c, h.catalog.Gods())
}

func (h *GodHandler) lookup(c *gin.Context) (*resource.God, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid id")
		return nil, false
	}
	g, ok := h.catalog.GodByID(id)
	if !ok {
		response.Fail(c, http.StatusNotFound, "god not found")
		return nil, false
	}
	return g, true
}

// Get returns one god by id.
// GET /api/gods/:id
func (h *GodHandler) Get(c *gin.Context) {
	if g, ok := h.lookup(c); ok {
		response.OK(c, g)
	}
}

// Items returns the regular items the god may equip.
// GET /api/gods/:id/items?equipped=1,2,3
func (h *GodHandler) Items(c *gin.Context) {
	g, ok := h.lookup(c)
	if !ok {
		return
	}
	var equipped item.ItemSet
	if raw, present := c.GetQuery("equipped"); present {
		set, err := parseItemSet(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "invalid equipped list")
			return
		}
		if set == nil {
			set = item.NewItemSet()
		}
		equipped = set
	}
	response.OK(c, h.elig.Eligible(c.Request.Context(), item.QueryForGod(g, equipped)))
}
