package http

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// dataBody wraps every successful bean reply.
type dataBody struct {
	Data any `json:"data"`
}

// messageBody is the body of every failed bean reply.
type messageBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, v any) {
	writeJSON(w, http.StatusOK, dataBody{Data: v})
}

// writeUnknownBean answers a lookup of a name the container does not know.
func writeUnknownBean(w http.ResponseWriter, name string) {
	writeJSON(w, http.StatusNotFound, messageBody{Message: fmt.Sprintf("No bean named %s.", name)})
}
