package router

import "github.com/gin-gonic/gin"

// Module registers its routes on the group the Registry hands it:
// the page root for AddPage, /api for Add.
type Module interface {
	Register(rg *gin.RouterGroup)
}
