package handlers

import (
	"net/http"
	"strings"

	"qutlas/internal/adapter/http/dto/request"
	"qutlas/internal/adapter/http/dto/response"
	"qutlas/internal/usecase"

	"github.com/gin-gonic/gin"
)

// JobHandler serves the job lifecycle. Acknowledge and progress are scoped
// to the X-Hub-ID caller, every other route to X-Customer-ID.
type JobHandler struct {
	jobs     usecase.IJobUseCase
	payments usecase.IPaymentReconcilerUseCase
}

func NewJobHandler(jobs usecase.IJobUseCase, payments usecase.IPaymentReconcilerUseCase) *JobHandler {
	return &JobHandler{jobs: jobs, payments: payments}
}

// SubmitJob
//
// @Summary Submit job
// @Description Accepts a quote (or prices the request on the spot) and routes it to the chosen hub.
// @Tags jobs
// @Accept json
// @Produce json
// @Param X-Customer-ID header string true "Customer ID"
// @Param Idempotency-Key header string false "Replays the first response for the same key and payload"
// @Param request body request.SubmitJobRequest true "Job submission"
// @Success 201 {object} response.JobResponse
// @Failure 400 {object} pkg.HTTPError
// @Failure 401 {object} pkg.HTTPError
// @Failure 404 {object} pkg.HTTPError
// @Failure 409 {object} pkg.HTTPError
// @Failure 410 {object} pkg.HTTPError
// @Failure 422 {object} pkg.HTTPError
// @Failure 503 {object} pkg.HTTPError
// @Router /jobs [post]
func (h *JobHandler) SubmitJob(c *gin.Context) {
	customer, ok := customerID(c)
	if !ok {
		return
	}
	var payload request.SubmitJobRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}
	req, err := payload.ToEntity()
	if err != nil {
		writeError(c, err)
		return
	}

	job, err := h.jobs.SubmitJob(c.Request.Context(), customer, req, strings.TrimSpace(payload.HubID))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromJob(job))
}

// @Summary List jobs
// @Tags jobs
// @Produce json
// @Param X-Customer-ID header string true "Customer ID"
// @Success 200 {array} response.JobResponse
// @Failure 401 {object} pkg.HTTPError
// @Router /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	customer, ok := customerID(c)
	if !ok {
		return
	}
	jobs, err := h.jobs.ListJobs(c.Request.Context(), customer)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromJobs(jobs))
}

// @Summary Get job
// @Tags jobs
// @Produce json
// @Param X-Customer-ID header string true "Customer ID"
// @Param id path string true "Job ID"
// @Success 200 {object} response.JobResponse
// @Failure 401 {object} pkg.HTTPError
// @Failure 404 {object} pkg.HTTPError
// @Router /jobs/{id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	customer, ok := customerID(c)
	if !ok {
		return
	}
	job, err := h.jobs.GetJob(c.Request.Context(), c.Param("id"), customer)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromJob(job))
}

// UpdateJob lets the customer cancel with a note. Unknown fields are
// rejected.
//
// @Summary Update job
// @Tags jobs
// @Accept json
// @Produce json
// @Param X-Customer-ID header string true "Customer ID"
// @Param id path string true "Job ID"
// @Param request body request.UpdateJobRequest true "Job patch"
// @Success 200 {object} response.JobResponse
// @Failure 400 {object} pkg.HTTPError
// @Failure 404 {object} pkg.HTTPError
// @Failure 409 {object} pkg.HTTPError
// @Router /jobs/{id} [patch]
func (h *JobHandler) UpdateJob(c *gin.Context) {
	customer, ok := customerID(c)
	if !ok {
		return
	}
	var payload request.UpdateJobRequest
	if err := c.ShouldBindWith(&payload, strictJSON); err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}

	job, err := h.jobs.UpdateJob(c.Request.Context(), c.Param("id"), customer, payload.ToPatch())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromJob(job))
}

// @Summary Cancel job
// @Tags jobs
// @Accept json
// @Produce json
// @Param X-Customer-ID header string true "Customer ID"
// @Param id path string true "Job ID"
// @Param request body request.CancelJobRequest false "Cancellation reason"
// @Success 200 {object} response.JobResponse
// @Failure 404 {object} pkg.HTTPError
// @Failure 409 {object} pkg.HTTPError
// @Router /jobs/{id}/cancel [post]
func (h *JobHandler) CancelJob(c *gin.Context) {
	customer, ok := customerID(c)
	if !ok {
		return
	}
	var payload request.CancelJobRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			writeAppError(c, errInvalidPayload)
			return
		}
	}

	job, err := h.jobs.CancelJob(c.Request.Context(), c.Param("id"), customer, strings.TrimSpace(payload.Reason))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromJob(job))
}

// ReportProgress is the assigned hub narrating production, completing the
// job and filling in shipment tracking.
//
// @Summary Report job progress
// @Tags jobs
// @Accept json
// @Produce json
// @Param X-Hub-ID header string true "Hub ID"
// @Param id path string true "Job ID"
// @Param request body request.JobProgressRequest true "Progress patch"
// @Success 200 {object} response.JobResponse
// @Failure 400 {object} pkg.HTTPError
// @Failure 401 {object} pkg.HTTPError
// @Failure 404 {object} pkg.HTTPError
// @Failure 409 {object} pkg.HTTPError
// @Router /jobs/{id}/progress [patch]
func (h *JobHandler) ReportProgress(c *gin.Context) {
	hubID := strings.TrimSpace(c.GetHeader(HeaderHubID))
	if hubID == "" {
		writeAppError(c, errMissingHub)
		return
	}
	var payload request.JobProgressRequest
	if err := c.ShouldBindWith(&payload, strictJSON); err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}

	job, err := h.jobs.ReportProgress(c.Request.Context(), c.Param("id"), hubID, payload.ToPatch())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromJob(job))
}

// AcknowledgeJob is called by the hub assigned to the job, identified by
// X-Hub-ID.
//
// @Summary Acknowledge job
// @Tags jobs
// @Produce json
// @Param X-Hub-ID header string true "Hub ID"
// @Param id path string true "Job ID"
// @Success 200 {object} response.JobResponse
// @Failure 401 {object} pkg.HTTPError
// @Failure 404 {object} pkg.HTTPError
// @Failure 409 {object} pkg.HTTPError
// @Router /jobs/{id}/acknowledge [post]
func (h *JobHandler) AcknowledgeJob(c *gin.Context) {
	hubID := strings.TrimSpace(c.GetHeader(HeaderHubID))
	if hubID == "" {
		writeAppError(c, errMissingHub)
		return
	}
	job, err := h.jobs.AcknowledgeJob(c.Request.Context(), c.Param("id"), hubID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromJob(job))
}

// InitializePayment opens a checkout for the job's quote total.
//
// @Summary Initialize job payment
// @Tags jobs
// @Accept json
// @Produce json
// @Param X-Customer-ID header string true "Customer ID"
// @Param id path string true "Job ID"
// @Param request body request.InitializePaymentRequest false "Payer"
// @Success 201 {object} response.PaymentInitResponse
// @Failure 404 {object} pkg.HTTPError
// @Failure 409 {object} pkg.HTTPError
// @Failure 503 {object} pkg.HTTPError
// @Router /jobs/{id}/payments [post]
func (h *JobHandler) InitializePayment(c *gin.Context) {
	customer, ok := customerID(c)
	if !ok {
		return
	}
	var payload request.InitializePaymentRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			writeAppError(c, errInvalidPayload)
			return
		}
	}

	started, err := h.payments.InitializePayment(c.Request.Context(), c.Param("id"), customer, strings.TrimSpace(payload.PayerEmail))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromPaymentInitialization(started))
}
