package http

import (
	"net/http"

	"hospital-management/internal/delivery/http/handler"
	"hospital-management/internal/delivery/http/middleware"
	"hospital-management/internal/domain/policy"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Router struct {
	router               *mux.Router
	log                  *logrus.Logger
	authHandler          *handler.AuthHandler
	userHandler          *handler.UserHandler
	surgeryHandler       *handler.SurgeryHandler
	medicalRecordHandler *handler.MedicalRecordHandler
	authMiddleware       *middleware.AuthMiddleware
	roleMiddleware       *middleware.RoleMiddleware
	corsMiddleware       *middleware.CORSMiddleware
}

func NewRouter(
	log *logrus.Logger,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	surgeryHandler *handler.SurgeryHandler,
	medicalRecordHandler *handler.MedicalRecordHandler,
	authMiddleware *middleware.AuthMiddleware,
	roleMiddleware *middleware.RoleMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		log:                  log,
		authHandler:          authHandler,
		userHandler:          userHandler,
		surgeryHandler:       surgeryHandler,
		medicalRecordHandler: medicalRecordHandler,
		authMiddleware:       authMiddleware,
		roleMiddleware:       roleMiddleware,
		corsMiddleware:       corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	r.router.Use(middleware.RequestLogger(r.log))
	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.authMiddleware.Resolve)

	// Health check
	r.router.HandleFunc("/healthz", r.healthCheck).Methods(http.MethodGet)

	// Public routes
	r.router.HandleFunc("/", r.authHandler.Landing).Methods(http.MethodGet)
	r.router.HandleFunc("/login", r.authHandler.LoginForm).Methods(http.MethodGet)
	r.router.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	r.router.HandleFunc("/register", r.authHandler.RegisterForm).Methods(http.MethodGet)
	r.router.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)

	// Any logged-in user
	protected := r.router.NewRoute().Subrouter()
	protected.Use(middleware.RequireLogin)
	protected.HandleFunc("/dashboard", r.userHandler.Dashboard).Methods(http.MethodGet)
	protected.HandleFunc("/view_surgeries", r.surgeryHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/patient_info", r.userHandler.PatientInfo).Methods(http.MethodGet)
	protected.HandleFunc("/doctor_info", r.userHandler.DoctorInfo).Methods(http.MethodGet)
	protected.HandleFunc("/medical_records", r.medicalRecordHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/view_patient_medical_data/{patient_id}", r.medicalRecordHandler.PatientMedicalData).Methods(http.MethodGet)
	protected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodGet)

	// Staff only; patients are sent back to the dashboard with a notice
	canSchedule := r.roleMiddleware.RequirePermission(policy.ActionScheduleSurgery)
	protected.Handle("/schedule_surgery", canSchedule(http.HandlerFunc(r.surgeryHandler.ScheduleForm))).Methods(http.MethodGet)
	protected.Handle("/schedule_surgery", canSchedule(http.HandlerFunc(r.surgeryHandler.Schedule))).Methods(http.MethodPost)

	canAddRecord := r.roleMiddleware.RequirePermission(policy.ActionAddMedicalRecord)
	protected.Handle("/add_medical_record", canAddRecord(http.HandlerFunc(r.medicalRecordHandler.AddForm))).Methods(http.MethodGet)
	protected.Handle("/add_medical_record", canAddRecord(http.HandlerFunc(r.medicalRecordHandler.Add))).Methods(http.MethodPost)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
