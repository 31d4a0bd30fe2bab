package webui

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"edudash.insights.org/internal/app"
)

// WebUI serves the human readable debug pages.
type WebUI struct {
	*app.Application
}

func (webUI *WebUI) SetWebUIRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/debug/", webUI.debugIndexHandler)
}
