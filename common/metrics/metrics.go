package metrics

import (
	"net/http"

	"github.com/arl/statsviz"
)

// Serve 在 addr 上挂载 statsviz 面板，路径 /debug/statsviz/
func Serve(addr string) error {
	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		return err
	}
	return http.ListenAndServe(addr, mux)
}
