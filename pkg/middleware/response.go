package middleware

import (
	"net"
	"net/http"
	"strings"

	apperrors "slotlink/pkg/errors"
	httputil "slotlink/pkg/http"
	"slotlink/pkg/logger"
)

func writeError(w http.ResponseWriter, log *logger.Logger, appErr *apperrors.AppError) {
	if err := httputil.WriteError(w, appErr); err != nil && log != nil {
		log.Error("failed to write error response", "code", appErr.Code, "error", err)
	}
}

// ClientKey identifies the caller by the first X-Forwarded-For hop, falling
// back to the remote address.
func ClientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
