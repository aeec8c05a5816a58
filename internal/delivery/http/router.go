package http

import (
	"database/sql"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"attendancetracker/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(attendanceController *controllers.AttendanceController, db *sql.DB) *http.ServeMux {
	mux := http.NewServeMux()

	// Attendance
	mux.HandleFunc("POST /attendance/{employeeID}/check-in", attendanceController.CheckIn)
	mux.HandleFunc("POST /attendance/{employeeID}/check-out", attendanceController.CheckOut)
	mux.HandleFunc("GET /attendance/{date}", attendanceController.GetByDate)

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
