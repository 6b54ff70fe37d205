// Package swaggerkit serves the swagger UI and a decorated doc.json
package swaggerkit

import (
	"net/http"

	phttp "minishop/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	docsPath = "/api/docs"
	docJSON  = docsPath + "/doc.json"
)

// Options controls the docs endpoints
type Options struct {
	Enabled bool
	// Server is the base URL operations are relative to
	Server string
	// TitleSuffix is appended to info.title, e.g. "(staging)"
	TitleSuffix string
}

// Mount serves the UI under /api/docs/ when enabled
func Mount(r phttp.Router, o Options) {
	if !o.Enabled {
		return
	}
	if o.Server == "" {
		o.Server = "/api/v1"
	}
	r.Get(docsPath, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, docsPath+"/", http.StatusPermanentRedirect)
	})
	r.Get(docJSON, docHandler(o))
	r.Handle(docsPath+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL(docJSON),
	))
}
