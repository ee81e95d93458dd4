package httpjson

import (
	"encoding/json"
	"net/http"
)

func Write(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Read(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]interface{}{"message": msg})
}

// ErrorCode writes the {code, message} payload used by the signup flow so
// clients can branch on machine-readable codes like invitation_required.
func ErrorCode(w http.ResponseWriter, status int, code, msg string) {
	Write(w, status, map[string]interface{}{"code": code, "message": msg})
}
