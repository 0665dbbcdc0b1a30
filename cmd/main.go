package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	_ "time/tzdata"

	"github.com/kodipay/kodipay-server/internal/app"
	"github.com/kodipay/kodipay-server/internal/config"
	"github.com/kodipay/kodipay-server/internal/controllers"
	"github.com/kodipay/kodipay-server/internal/middleware"
	"github.com/kodipay/kodipay-server/internal/models"
	"github.com/kodipay/kodipay-server/internal/realtime"
	"github.com/kodipay/kodipay-server/internal/repositories"
	"github.com/kodipay/kodipay-server/internal/routes"
	"github.com/kodipay/kodipay-server/internal/services"
	"github.com/kodipay/kodipay-server/internal/utils"
	"github.com/kodipay/kodipay-server/internal/utils/mpesa"
)

// Overdue sweep runs daily at 03:00 UTC, before most business hours in EAT.
const overdueSweepCronSpec = "0 3 * * *"

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize kodipay-server:", err)
	}
	defer application.Close()

	// Repositories
	userRepo := repositories.NewUserRepository(application.DB)
	propertyRepo := repositories.NewPropertyRepository(application.DB)
	tenantRepo := repositories.NewTenantRepository(application.DB)
	billRepo := repositories.NewBillRepository(application.DB)
	paymentRepo := repositories.NewPaymentRepository(application.DB)
	chargeRepo := repositories.NewMpesaChargeRepository(application.DB)
	leaseRepo := repositories.NewLeaseRepository(application.DB)
	complaintRepo := repositories.NewComplaintRepository(application.DB)
	messageRepo := repositories.NewMessageRepository(application.DB)

	darajaClient, err := mpesa.NewClient(
		cfg.MpesaConsumerKey, cfg.MpesaConsumerSecret,
		cfg.MpesaShortCode, cfg.MpesaPasskey,
		cfg.AppURL+routes.PaymentsCallback, cfg.MpesaSandbox,
	)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize M-Pesa client:", err)
	}

	// Realtime hub + services
	hub := realtime.NewHub()

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTRefreshSecret)
	authService := services.NewAuthService(userRepo, jwtService)
	messageService := services.NewMessageService(messageRepo, hub)
	occupancyService := services.NewOccupancyService(propertyRepo, userRepo, tenantRepo, messageService)
	propertyService := services.NewPropertyService(propertyRepo)
	billService := services.NewBillService(billRepo, propertyRepo, userRepo)
	overdueService := services.NewBillOverdueService(billRepo)
	paymentService := services.NewPaymentService(paymentRepo, chargeRepo, billRepo, leaseRepo, darajaClient)
	leaseService := services.NewLeaseService(leaseRepo, propertyRepo, userRepo)
	complaintService := services.NewComplaintService(complaintRepo, propertyRepo)
	tenantService := services.NewTenantService(tenantRepo, userRepo, leaseRepo, occupancyService)
	userService := services.NewUserService(userRepo)

	// Controllers
	healthController := controllers.NewHealthController(application)
	authController := controllers.NewAuthController(authService)
	propertyController := controllers.NewPropertyController(propertyService, occupancyService)
	roomController := controllers.NewRoomController(occupancyService, tenantService)
	billController := controllers.NewBillController(billService)
	paymentController := controllers.NewPaymentController(paymentService)
	leaseController := controllers.NewLeaseController(leaseService)
	complaintController := controllers.NewComplaintController(complaintService)
	messageController := controllers.NewMessageController(messageService, hub, jwtService)
	tenantController := controllers.NewTenantController(tenantService)
	userController := controllers.NewUserController(userService)

	// Router setup
	router := mux.NewRouter()

	// Public routes
	router.HandleFunc(routes.Health, healthController.HealthCheck).Methods(http.MethodGet)
	router.HandleFunc(routes.AuthRegister, authController.Register).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthLogin, authController.Login).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthRefresh, authController.Refresh).Methods(http.MethodPost)
	router.HandleFunc(routes.PaymentsCallback, paymentController.Callback).Methods(http.MethodPost)
	// Websocket authenticates via query token inside the handler.
	router.HandleFunc(routes.Websocket, messageController.ServeWS).Methods(http.MethodGet)

	// Secured routes
	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.Authenticate(jwtService))

	landlord := secured.NewRoute().Subrouter()
	landlord.Use(middleware.RequireRole(models.RoleLandlord))

	landlord.HandleFunc(routes.Properties, propertyController.Create).Methods(http.MethodPost)
	landlord.HandleFunc(routes.Properties, propertyController.List).Methods(http.MethodGet)
	landlord.HandleFunc(routes.Property, propertyController.Delete).Methods(http.MethodDelete)
	landlord.HandleFunc(routes.PropertyAssignTenant, propertyController.AssignTenant).Methods(http.MethodPut)
	landlord.HandleFunc(routes.PropertyReleaseTenant, propertyController.ReleaseTenant).Methods(http.MethodDelete)
	landlord.HandleFunc(routes.RoomAssignTenant, roomController.AssignTenant).Methods(http.MethodPut)
	landlord.HandleFunc(routes.RoomAssignTenant, roomController.AssignNewTenant).Methods(http.MethodPost)

	landlord.HandleFunc(routes.Bills, billController.Create).Methods(http.MethodPost)
	landlord.HandleFunc(routes.BillsLandlord, billController.ListForLandlord).Methods(http.MethodGet)
	landlord.HandleFunc(routes.Leases, leaseController.Create).Methods(http.MethodPost)
	landlord.HandleFunc(routes.Lease, leaseController.Update).Methods(http.MethodPut)
	landlord.HandleFunc(routes.Lease, leaseController.Delete).Methods(http.MethodDelete)
	landlord.HandleFunc(routes.UsersTenants, userController.ListTenants).Methods(http.MethodGet)

	secured.HandleFunc(routes.BillsTenant, billController.ListMine).Methods(http.MethodGet)
	secured.HandleFunc(routes.BillMarkPaid, billController.MarkPaid).Methods(http.MethodPut)

	secured.HandleFunc(routes.Payments, paymentController.Submit).Methods(http.MethodPost)
	secured.HandleFunc(routes.PaymentsTenant, paymentController.ListForTenant).Methods(http.MethodGet)
	secured.HandleFunc(routes.PaymentsInitiate, paymentController.InitiateCharge).Methods(http.MethodPost)

	secured.HandleFunc(routes.Leases, leaseController.List).Methods(http.MethodGet)
	secured.HandleFunc(routes.LeasesTenant, leaseController.ListForTenant).Methods(http.MethodGet)
	secured.HandleFunc(routes.Lease, leaseController.Get).Methods(http.MethodGet)

	secured.HandleFunc(routes.Complaints, complaintController.Create).Methods(http.MethodPost)
	secured.HandleFunc(routes.Complaints, complaintController.List).Methods(http.MethodGet)
	secured.HandleFunc(routes.Complaint, complaintController.Update).Methods(http.MethodPut)
	secured.HandleFunc(routes.Complaint, complaintController.Delete).Methods(http.MethodDelete)

	secured.HandleFunc(routes.MessagesGroup, messageController.SendGroup).Methods(http.MethodPost)
	secured.HandleFunc(routes.MessagesDirect, messageController.SendDirect).Methods(http.MethodPost)
	secured.HandleFunc(routes.MessagesGroupHistory, messageController.GroupHistory).Methods(http.MethodGet)
	secured.HandleFunc(routes.MessagesDirectHistory, messageController.DirectHistory).Methods(http.MethodGet)

	secured.HandleFunc(routes.Tenants, tenantController.Create).Methods(http.MethodPost)
	secured.HandleFunc(routes.Tenant, tenantController.Get).Methods(http.MethodGet)
	secured.HandleFunc(routes.TenantLease, tenantController.MostRecentLease).Methods(http.MethodGet)

	secured.HandleFunc(routes.UsersMe, userController.Me).Methods(http.MethodGet)
	secured.HandleFunc(routes.User, userController.Get).Methods(http.MethodGet)
	secured.HandleFunc(routes.User, userController.Update).Methods(http.MethodPut)

	// Cron job setup
	c := cron.New(cron.WithLocation(time.UTC))
	_, err = c.AddFunc(overdueSweepCronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		utils.Logger.Info("Starting overdue bill sweep cron job...")
		if err := overdueService.SweepDaily(ctx); err != nil {
			utils.Logger.WithError(err).Error("Failed to sweep overdue bills")
		}
	})
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to schedule overdue bill sweep cron")
	}
	c.Start()
	utils.Logger.Info("Scheduled overdue bill sweep cron job")

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppURL, "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", config.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("kodipay-server failed to start:", err)
	}
}
