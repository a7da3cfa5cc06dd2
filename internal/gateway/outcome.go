package gateway

import (
	"encoding/json"
	"net/http"
	"strings"
)

// FailureKind is the error taxonomy shared by every deployment shape.
type FailureKind int

const (
	FailInvalidIdentifier FailureKind = iota
	FailMissingIdentifier
	FailUserNotFound
	FailStoreError
	FailUpstreamError
	FailMethodNotAllowed
)

// Outcome is the typed result of executing one operation. It is created
// fresh per request by the executor and consumed immediately by Write;
// nothing holds on to it afterwards.
type Outcome struct {
	Status      int
	Payload     interface{} // JSON-encodable success payload
	Raw         []byte      // relayed proxy body, served verbatim
	ContentType string      // content type for Raw
	Failed      bool
	Kind        FailureKind
	Message     string
}

func success(payload interface{}, status int) Outcome {
	return Outcome{Status: status, Payload: payload}
}

func proxied(body []byte, contentType string) Outcome {
	return Outcome{Status: http.StatusOK, Raw: body, ContentType: contentType}
}

func failure(kind FailureKind, message string) Outcome {
	return Outcome{Failed: true, Kind: kind, Message: message, Status: statusFor(kind)}
}

// statusFor is the single taxonomy-to-status table. Route handlers never
// pick status codes themselves, so codes cannot drift between routes.
func statusFor(kind FailureKind) int {
	switch kind {
	case FailInvalidIdentifier, FailMissingIdentifier:
		return http.StatusBadRequest
	case FailUserNotFound:
		return http.StatusNotFound
	case FailMethodNotAllowed:
		return http.StatusMethodNotAllowed
	}
	return http.StatusInternalServerError
}

// allowedMethods is advertised on 405 responses for the users path family.
var allowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}

// Write renders an outcome onto a response writer. gin's c.Writer satisfies
// http.ResponseWriter, so the same mapper serves every deployment shape.
func Write(w http.ResponseWriter, o Outcome) {
	if o.Failed {
		if o.Kind == FailMethodNotAllowed {
			w.Header().Set("Allow", strings.Join(allowedMethods, ", "))
		}
		writeJSON(w, o.Status, map[string]string{"error": o.Message})
		return
	}
	if o.Raw != nil {
		w.Header().Set("Content-Type", o.ContentType)
		w.WriteHeader(o.Status)
		_, _ = w.Write(o.Raw)
		return
	}
	writeJSON(w, o.Status, o.Payload)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
