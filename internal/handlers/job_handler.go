package handlers

import (
	"gigdispatch/internal/models"
	"gigdispatch/internal/services"
	"gigdispatch/internal/utils"
	"gigdispatch/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type JobHandler struct {
	jobService      *services.JobService
	dispatchService *services.DispatchService
}

func NewJobHandler(jobService *services.JobService, dispatchService *services.DispatchService) *JobHandler {
	return &JobHandler{
		jobService:      jobService,
		dispatchService: dispatchService,
	}
}

func jobIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid job ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

// Create opens a new job for the authenticated customer.
func (h *JobHandler) Create(c *gin.Context) {
	var request validators.CreateJobRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateCreateJob(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs)
		return
	}

	customerID, ok := callerID(c)
	if !ok {
		return
	}

	job, err := h.jobService.Create(c.Request.Context(), services.CreateJobInput{
		JobType:         models.ServiceType(request.JobType),
		CustomerID:      customerID,
		PickupLocation:  request.PickupLocation,
		DropoffLocation: request.DropoffLocation,
		BasePrice:       request.BasePrice,
		SurgeMultiplier: request.SurgeMultiplier,
		PaymentMethod:   request.PaymentMethod,
		PackageType:     request.PackageType,
		OrderDetails:    request.OrderDetails,
	})
	if err != nil {
		utils.EngineErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Job created successfully", job)
}

// Get returns one job by id.
func (h *JobHandler) Get(c *gin.Context) {
	jobID, ok := jobIDParam(c)
	if !ok {
		return
	}

	job, err := h.jobService.Get(c.Request.Context(), jobID)
	if err != nil {
		utils.EngineErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Job retrieved", job)
}

// ListAvailable returns the claimable jobs for the calling driver.
func (h *JobHandler) ListAvailable(c *gin.Context) {
	driverID, ok := callerID(c)
	if !ok {
		return
	}

	jobs, err := h.dispatchService.ListClaimable(c.Request.Context(), driverID)
	if err != nil {
		utils.EngineErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Available jobs retrieved", jobs)
}

// Claim attempts the exclusive assignment. Losing the race returns a
// 409 with JOB_ALREADY_CLAIMED; the client should re-list and pick
// another job.
func (h *JobHandler) Claim(c *gin.Context) {
	jobID, ok := jobIDParam(c)
	if !ok {
		return
	}

	driverID, ok := callerID(c)
	if !ok {
		return
	}

	job, err := h.dispatchService.Claim(c.Request.Context(), driverID, jobID)
	if err != nil {
		utils.EngineErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Job claimed successfully", job)
}

// Advance moves a claimed job to picked_up or in_transit.
func (h *JobHandler) Advance(c *gin.Context) {
	var request validators.AdvanceJobRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateAdvanceJob(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs)
		return
	}

	jobID, ok := jobIDParam(c)
	if !ok {
		return
	}

	driverID, ok := callerID(c)
	if !ok {
		return
	}

	job, err := h.jobService.Advance(c.Request.Context(), jobID, driverID, models.JobStatus(request.Status))
	if err != nil {
		utils.EngineErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Job status updated", job)
}

// Complete finalizes the job, folds in the tip and aggregates earnings.
func (h *JobHandler) Complete(c *gin.Context) {
	var request validators.CompleteJobRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&request); err != nil {
			utils.BadRequestResponse(c, "Invalid request: "+err.Error())
			return
		}
	}
	if errs := validators.ValidateCompleteJob(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs)
		return
	}

	jobID, ok := jobIDParam(c)
	if !ok {
		return
	}

	driverID, ok := callerID(c)
	if !ok {
		return
	}

	job, err := h.jobService.Complete(c.Request.Context(), jobID, driverID, request.TipAmount)
	if err != nil {
		utils.EngineErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Job completed successfully", job)
}

// Cancel terminates a job on behalf of its customer or driver.
func (h *JobHandler) Cancel(c *gin.Context) {
	var request validators.CancelJobRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	jobID, ok := jobIDParam(c)
	if !ok {
		return
	}

	actorID, ok := callerID(c)
	if !ok {
		return
	}

	job, err := h.jobService.Cancel(c.Request.Context(), jobID, actorID, request.Reason)
	if err != nil {
		utils.EngineErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Job cancelled", job)
}
