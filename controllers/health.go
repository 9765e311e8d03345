package controllers

import "net/http"

// Root confirms the service is up.
func Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": "RasoiSetu Backend is running!"})
}

// Health is the liveness probe.
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "Backend server is operational",
	})
}
