package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/smitebuilder/server/api/response"
	"github.com/kasuganosora/smitebuilder/server/game/item"
	"github.com/kasuganosora/smitebuilder/server/resource"
)

// ItemHandler handles item REST endpoints.
type ItemHandler struct {
	catalog *resource.Catalog
	elig    *Eligibility
}

// NewItemHandler creates an ItemHandler.
func NewItemHandler(catalog *resource.Catalog, elig *Eligibility) *ItemHandler {
	return &ItemHandler{catalog: catalog, elig: elig}
}

// List returns every active item.
// GET /api/items
func (h *ItemHandler) List(c *gin.Context) {
	response.OK(c, h.elig.List(item.ActivePipeline))
}

// Consumables returns active consumables.
// GET /api/items/consumables
func (h *ItemHandler) Consumables(c *gin.Context) {
	response.OK(c, h.elig.List(item.ConsumablesPipeline))
}

// Relics returns active relics.
// GET /api/items/relics
func (h *ItemHandler) Relics(c *gin.Context) {
	response.OK(c, h.elig.List(item.RelicsPipeline))
}

// Get returns one item by id, active or not.
// GET /api/items/:id
func (h *ItemHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	it, ok := h.catalog.ItemByID(id)
	if !ok {
		response.Fail(c, http.StatusNotFound, "item not found")
		return
	}
	response.OK(c, it)
}

// Tree returns the upgrade tree rooted at :id grouped by tier. An unknown
// root yields three empty tiers.
// GET /api/items/:id/tree
func (h *ItemHandler) Tree(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid id")
		return
	}
	response.OK(c, item.BuildTree(h.catalog.Items(), id))
}

// EligibleByPath runs the eligibility pipeline without a loadout.
// GET /api/items/eligible/:role/:damageType/:basicAttackType/:itemsOnly/:isSpecial
func (h *ItemHandler) EligibleByPath(c *gin.Context) {
	itemsOnly, err := strconv.ParseBool(c.Param("itemsOnly"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid itemsOnly flag")
		return
	}
	isSpecial, err := strconv.ParseBool(c.Param("isSpecial"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid isSpecial flag")
		return
	}
	q := item.Query{
		Role:               c.Param("role"),
		DamageType:         c.Param("damageType"),
		BasicAttackType:    c.Param("basicAttackType"),
		ItemsOnly:          itemsOnly,
		IsSpecialCharacter: isSpecial,
	}
	response.OK(c, h.elig.Eligible(c.Request.Context(), q))
}

type eligibleRequest struct {
	Role               string `json:"role"               binding:"required"`
	DamageType         string `json:"damageType"`
	BasicAttackType    string `json:"basicAttackType"`
	ItemsOnly          bool   `json:"itemsOnly"`
	IsSpecialCharacter bool   `json:"isSpecialCharacter"`
	// EquippedItemIDs is the current loadout. Omitted means none supplied.
	EquippedItemIDs []int `json:"equippedItemIds"`
}

// EligibleByBody runs the eligibility pipeline with an optional loadout.
// POST /api/items/eligible
func (h *ItemHandler) EligibleByBody(c *gin.Context) {
	var req eligibleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	q := item.Query{
		Role:               req.Role,
		DamageType:         req.DamageType,
		BasicAttackType:    req.BasicAttackType,
		ItemsOnly:          req.ItemsOnly,
		IsSpecialCharacter: req.IsSpecialCharacter,
	}
	if req.EquippedItemIDs != nil {
		q.Equipped = item.NewItemSet(req.EquippedItemIDs...)
	}
	response.OK(c, h.elig.Eligible(c.Request.Context(), q))
}
