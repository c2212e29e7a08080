package handlers

import (
	"net/http"

	"github.com/malware-d/bercos/internal/httpx"
	"github.com/malware-d/bercos/internal/version"
)

func VersionHandler(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"version": version.Version})
}
