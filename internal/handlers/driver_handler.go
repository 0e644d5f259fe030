package handlers

import (
	"gigdispatch/internal/models"
	"gigdispatch/internal/services"
	"gigdispatch/internal/utils"
	"gigdispatch/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DriverHandler struct {
	driverService *services.DriverService
}

func NewDriverHandler(driverService *services.DriverService) *DriverHandler {
	return &DriverHandler{
		driverService: driverService,
	}
}

// callerID pulls the authenticated user id set by the auth middleware.
func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}
	id, ok := value.(primitive.ObjectID)
	if !ok {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}
	return id, true
}

// Register creates the driver profile for the authenticated user.
func (h *DriverHandler) Register(c *gin.Context) {
	var request validators.DriverRegistrationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateDriverRegistration(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs)
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	tier := models.SubscriptionTier(request.SubscriptionTier)
	if request.SubscriptionTier == "" {
		tier = models.TierFree
	}

	driver, err := h.driverService.Register(c.Request.Context(), services.RegisterDriverInput{
		UserID: userID,
		Vehicle: models.Vehicle{
			Type:  request.VehicleType,
			Make:  request.VehicleMake,
			Model: request.VehicleModel,
			Year:  request.VehicleYear,
			Plate: request.VehiclePlate,
			Color: request.VehicleColor,
		},
		LicenseNumber:    request.LicenseNumber,
		Services:         request.Services,
		IsPremiumVehicle: request.IsPremiumVehicle,
		SubscriptionTier: tier,
	})
	if err != nil {
		utils.EngineErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Driver registered successfully", driver)
}

// GetProfile returns the authenticated driver's profile.
func (h *DriverHandler) GetProfile(c *gin.Context) {
	driverID, ok := callerID(c)
	if !ok {
		return
	}

	driver, err := h.driverService.GetProfile(c.Request.Context(), driverID)
	if err != nil {
		utils.EngineErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Driver profile retrieved", driver)
}

// SetStatus updates the driver's availability status.
func (h *DriverHandler) SetStatus(c *gin.Context) {
	var request validators.DriverStatusUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateDriverStatusUpdate(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs)
		return
	}

	driverID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.driverService.SetStatus(c.Request.Context(), driverID, models.DriverStatus(request.Status)); err != nil {
		utils.EngineErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Driver status updated", nil)
}

// ToggleService enables or disables one service type.
func (h *DriverHandler) ToggleService(c *gin.Context) {
	var request validators.ServiceToggleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateServiceToggle(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs)
		return
	}

	driverID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.driverService.ToggleService(c.Request.Context(), driverID, models.ServiceType(request.Service), request.Enabled); err != nil {
		utils.EngineErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Service toggled", nil)
}

// UpdateSubscription changes the driver's subscription tier.
func (h *DriverHandler) UpdateSubscription(c *gin.Context) {
	var request validators.SubscriptionUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	driverID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.driverService.UpdateSubscription(c.Request.Context(), driverID, models.SubscriptionTier(request.Tier)); err != nil {
		utils.EngineErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Subscription updated", nil)
}

// UpdateLocation records the driver's advisory position.
func (h *DriverHandler) UpdateLocation(c *gin.Context) {
	var request validators.DriverLocationUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateDriverLocationUpdate(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs)
		return
	}

	driverID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.driverService.UpdateLocation(c.Request.Context(), driverID, request.Latitude, request.Longitude); err != nil {
		utils.EngineErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Location updated", nil)
}

// GetEarnings returns the driver's earnings rollups.
func (h *DriverHandler) GetEarnings(c *gin.Context) {
	driverID, ok := callerID(c)
	if !ok {
		return
	}

	summary, err := h.driverService.GetEarningsSummary(c.Request.Context(), driverID)
	if err != nil {
		utils.EngineErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Earnings summary retrieved", summary)
}

// GetActiveJob returns the driver's current in-flight job, if any.
func (h *DriverHandler) GetActiveJob(c *gin.Context) {
	driverID, ok := callerID(c)
	if !ok {
		return
	}

	job, err := h.driverService.GetActiveJob(c.Request.Context(), driverID)
	if err != nil {
		utils.EngineErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Active job retrieved", job)
}
