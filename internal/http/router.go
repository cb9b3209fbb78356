package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/clinic-management/clinic-service/internal/appointment"
	"github.com/clinic-management/clinic-service/internal/auth"
	"github.com/clinic-management/clinic-service/internal/doctor"
	"github.com/clinic-management/clinic-service/internal/history"
	"github.com/clinic-management/clinic-service/internal/messaging"
	"github.com/clinic-management/clinic-service/internal/patient"
	"github.com/clinic-management/clinic-service/internal/telemetry"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

const serviceName = "clinic-service"

// Dependencies are the collaborators the router wires into handlers
type Dependencies struct {
	Repositories Repositories
	Publisher    messaging.PublisherInterface
	Metrics      *telemetry.Metrics
	HTTPMetrics  *HTTPMetrics
	Guard        *auth.Guard
	Login        *auth.LoginHandler
	// HealthCheck reports storage reachability; nil means always healthy
	HealthCheck    func(ctx context.Context) error
	AllowedOrigins []string
	Log            logrus.FieldLogger
}

// SetupRouter initializes all routes for the application
func SetupRouter(deps Dependencies) http.Handler {
	log := deps.Log
	if deps.HTTPMetrics == nil {
		deps.HTTPMetrics = NewHTTPMetrics()
	}

	repos := deps.Repositories

	patientService := patient.NewService(repos.Patients, deps.Publisher, deps.Metrics, log)
	doctorService := doctor.NewService(repos.Doctors, deps.Publisher, deps.Metrics, log)
	historyService := history.NewService(repos.History, deps.Publisher, deps.Metrics, log)
	appointmentService := appointment.NewService(appointment.Dependencies{
		Repository: repos.Appointments,
		Patients:   patientService,
		Doctors:    doctorService,
		History:    historyService,
		Publisher:  deps.Publisher,
		Metrics:    deps.Metrics,
		Log:        log,
	})

	patientHandler := patient.NewHandler(patientService)
	doctorHandler := doctor.NewHandler(doctorService)
	historyHandler := history.NewHandler(historyService)
	appointmentHandler := appointment.NewHandler(appointmentService)

	r := mux.NewRouter()
	r.Use(RequestID, AccessLog(log), deps.HTTPMetrics.Middleware, otelmux.Middleware(serviceName))

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "Backend running perfectly"})
	}).Methods(http.MethodGet)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if deps.HealthCheck != nil {
			if err := deps.HealthCheck(r.Context()); err != nil {
				log.WithError(err).Warn("Health check failed")
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "service": serviceName})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": serviceName})
	}).Methods(http.MethodGet)

	r.Handle("/metrics", deps.HTTPMetrics.Handler()).Methods(http.MethodGet)

	if deps.Login != nil {
		r.HandleFunc("/login", deps.Login.Login).Methods(http.MethodPost)
	}

	routes := []struct {
		method     string
		path       string
		permission string
		handler    http.HandlerFunc
	}{
		{http.MethodGet, "/patients/", "patient:view", patientHandler.ListPatients},
		{http.MethodPost, "/patients/", "patient:create", patientHandler.CreatePatient},
		{http.MethodGet, "/patients/{id}", "patient:view", patientHandler.GetPatient},
		{http.MethodPut, "/patients/{id}", "patient:update", patientHandler.UpdatePatient},
		{http.MethodDelete, "/patients/{id}", "patient:delete", patientHandler.DeletePatient},

		{http.MethodGet, "/doctors/", "doctor:view", doctorHandler.ListDoctors},
		{http.MethodPost, "/doctors/", "doctor:create", doctorHandler.CreateDoctor},
		{http.MethodGet, "/doctors/{id}", "doctor:view", doctorHandler.GetDoctor},

		{http.MethodGet, "/appointments/", "appointment:view", appointmentHandler.ListAppointments},
		{http.MethodPost, "/appointments/", "appointment:create", appointmentHandler.BookAppointment},
		{http.MethodGet, "/appointments/{id}", "appointment:view", appointmentHandler.GetAppointment},
		{http.MethodPut, "/appointments/{id}/status", "appointment:update", appointmentHandler.UpdateStatus},
		{http.MethodGet, "/schedule/doctor/{doctor_id}", "appointment:view", appointmentHandler.DoctorSchedule},

		{http.MethodGet, "/history/", "history:view", historyHandler.ListHistory},
		{http.MethodPost, "/history/", "history:create", historyHandler.CreateHistory},
		{http.MethodGet, "/history/{patient_id}", "history:view", historyHandler.ListPatientHistory},
	}

	for _, rt := range routes {
		h := deps.Guard.Require(rt.permission, rt.handler)
		r.Handle(rt.path, h).Methods(rt.method)
		// clients call both /patients and /patients/
		r.Handle(alternatePath(rt.path), h).Methods(rt.method)
	}

	log.WithField("auth_enabled", deps.Guard.Enabled()).Info("Routes registered")

	return CORSMiddleware(deps.AllowedOrigins)(r)
}

func alternatePath(path string) string {
	if strings.HasSuffix(path, "/") {
		return strings.TrimSuffix(path, "/")
	}
	return path + "/"
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}
