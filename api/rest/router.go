package rest

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the item and god endpoints under /api.
func RegisterRoutes(r gin.IRouter, items *ItemHandler, gods *GodHandler) {
	api := r.Group("/api")

	api.GET("/items", items.List)
	api.GET("/items/consumables", items.Consumables)
	api.GET("/items/relics", items.Relics)
	api.GET("/items/eligible/:role/:damageType/:basicAttackType/:itemsOnly/:isSpecial", items.EligibleByPath)
	api.POST("/items/eligible", items.EligibleByBody)
	api.GET("/items/:id", items.Get)
	api.GET("/items/:id/tree", items.Tree)

	api.GET("/gods", gods.List)
	api.GET("/gods/:id", gods.Get)
	api.GET("/gods/:id/items", gods.Items)
}
