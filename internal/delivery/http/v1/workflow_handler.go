package v1

import (
	"errors"
	"net/http"

	"go-posting-workflow/internal/delivery/http/response"
	"go-posting-workflow/internal/domain"
	"go-posting-workflow/internal/usecase"
	"go-posting-workflow/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type WorkflowHandler struct {
	sessions  *usecase.SessionManager
	steps     *usecase.StepValidator
	gate      *usecase.SubmissionGate
	templates *usecase.TemplateUsecase
}

func NewWorkflowHandler(protected *gin.RouterGroup, sessions *usecase.SessionManager, steps *usecase.StepValidator, gate *usecase.SubmissionGate, templates *usecase.TemplateUsecase) {
	handler := &WorkflowHandler{
		sessions:  sessions,
		steps:     steps,
		gate:      gate,
		templates: templates,
	}

	workflow := protected.Group("/workflow")
	{
		workflow.GET("", handler.State)
		workflow.POST("/resume", handler.Resume)
		workflow.PATCH("/record", handler.UpdateRecord)
		workflow.POST("/blur", handler.FieldBlur)
		workflow.POST("/step", handler.ChangeStep)
		workflow.POST("/generated", handler.AcceptGenerated)
		workflow.POST("/submit", handler.Submit)
	}
	protected.POST("/templates/:id/apply", handler.ApplyTemplate)
}

type workflowState struct {
	Record             domain.Posting       `json:"record"`
	Step               int                  `json:"step"`
	HasUnsavedChanges  bool                 `json:"has_unsaved_changes"`
	DraftID            string               `json:"draft_id,omitempty"`
	PendingResumeOffer *usecase.ResumeOffer `json:"pending_resume,omitempty"`
}

// State returns the live session snapshot, including the resume/discard
// prompt while it is unresolved.
func (h *WorkflowHandler) State(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, "Workflow state", workflowState{
		Record:             s.Records.Snapshot(),
		Step:               s.CurrentStep(),
		HasUnsavedChanges:  s.Records.HasUnsavedChanges(),
		DraftID:            s.Drafts.DraftID(),
		PendingResumeOffer: s.PendingOffer(),
	})
}

type resumeRequest struct {
	Accept bool `json:"accept"`
}

// Resume answers the mount-time resume/discard prompt.
func (h *WorkflowHandler) Resume(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	if s.PendingOffer() == nil {
		c.Error(apperror.New(http.StatusConflict, "No resume prompt is pending", nil))
		return
	}
	state := s.ResolveResume(c.Request.Context(), req.Accept)
	msg := "Draft discarded"
	if state != nil && state.Resumed {
		msg = "Draft resumed"
	}
	response.Success(c, http.StatusOK, msg, workflowState{
		Record:            s.Records.Snapshot(),
		Step:              s.CurrentStep(),
		HasUnsavedChanges: s.Records.HasUnsavedChanges(),
		DraftID:           s.Drafts.DraftID(),
	})
}

// UpdateRecord merges a partial update into the record. Array fields in the
// payload replace the stored lists wholesale.
func (h *WorkflowHandler) UpdateRecord(c *gin.Context) {
	s, ok := h.activeSession(c)
	if !ok {
		return
	}
	var patch domain.PostingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	record := s.Records.Update(patch)
	if s.Drafts.OnRecordUpdated(c.Request.Context(), record, s.CurrentStep()) {
		s.Records.MarkSaved()
	}
	response.Success(c, http.StatusOK, "Record updated", record)
}

type blurRequest struct {
	Field string `json:"field" binding:"required"`
}

// FieldBlur triggers an immediate save when one of the tracked inputs loses
// focus.
func (h *WorkflowHandler) FieldBlur(c *gin.Context) {
	s, ok := h.activeSession(c)
	if !ok {
		return
	}
	var req blurRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	if s.Drafts.OnFieldBlur(c.Request.Context(), req.Field, s.Records.Snapshot(), s.CurrentStep()) {
		s.Records.MarkSaved()
	}
	response.Success(c, http.StatusOK, "Blur handled", gin.H{"draft_id": s.Drafts.DraftID()})
}

type stepRequest struct {
	Step int `json:"step" binding:"required,min=1,max=5"`
}

// ChangeStep validates the current step before moving forward; moving back
// is always allowed. The step pointer is saved with the draft.
func (h *WorkflowHandler) ChangeStep(c *gin.Context) {
	s, ok := h.activeSession(c)
	if !ok {
		return
	}
	var req stepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	current := s.CurrentStep()
	if req.Step > current {
		if fields := h.steps.Validate(current, s.Records.Snapshot()); len(fields) > 0 {
			response.StepValidationFailed(c, "Step has validation errors", current, fields)
			return
		}
	}
	s.SetStep(req.Step)
	s.Drafts.SaveCurrent(c.Request.Context(), s.Records.Snapshot(), req.Step)
	s.Records.MarkSaved()
	response.Success(c, http.StatusOK, "Step changed", gin.H{"step": s.CurrentStep()})
}

// AcceptGenerated merges an accepted generated-content payload into the
// in-progress record (same shallow/replace merge as an update).
func (h *WorkflowHandler) AcceptGenerated(c *gin.Context) {
	s, ok := h.activeSession(c)
	if !ok {
		return
	}
	var gen usecase.GeneratedContent
	if err := c.ShouldBindJSON(&gen); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	record := s.Records.Update(usecase.GeneratedPatch(gen))
	if s.Drafts.OnRecordUpdated(c.Request.Context(), record, s.CurrentStep()) {
		s.Records.MarkSaved()
	}
	response.Success(c, http.StatusOK, "Generated content applied", record)
}

// ApplyTemplate replaces the session record with the template merged onto a
// fresh baseline. Unsaved custom edits do not survive this.
func (h *WorkflowHandler) ApplyTemplate(c *gin.Context) {
	s, ok := h.activeSession(c)
	if !ok {
		return
	}
	authorID := c.GetString(string(domain.KeyUserID))
	tpl, err := h.templates.Get(c.Request.Context(), authorID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	record := usecase.ApplyTemplate(*tpl)
	s.Reset(record)
	s.Drafts.SaveCurrent(c.Request.Context(), record, s.CurrentStep())
	response.Success(c, http.StatusOK, "Template applied", record)
}

// Submit runs the full submission gate against the current snapshot.
func (h *WorkflowHandler) Submit(c *gin.Context) {
	s, ok := h.activeSession(c)
	if !ok {
		return
	}
	authorID := c.GetString(string(domain.KeyUserID))

	finalized, err := h.gate.Submit(c.Request.Context(), authorID, s.Records.Snapshot())
	if err != nil {
		var stepErr *usecase.StepValidationError
		if errors.As(err, &stepErr) {
			// Jump the editor back to the first failing step
			s.SetStep(stepErr.Step)
			response.StepValidationFailed(c, "Validation failed", stepErr.Step, stepErr.Fields)
			return
		}
		var capErr *usecase.CapacityError
		if errors.As(err, &capErr) {
			c.Error(apperror.PaymentRequired("No job posting credit remaining. Purchase credit to publish."))
			return
		}
		c.Error(err)
		return
	}

	// Workflow complete: every draft copy is obsolete
	s.Drafts.Discard(c.Request.Context())
	s.Reset(usecase.DefaultPosting())
	response.Success(c, http.StatusCreated, "Job posting submitted", finalized)
}

func (h *WorkflowHandler) session(c *gin.Context) (*usecase.WorkflowSession, bool) {
	authorID := c.GetString(string(domain.KeyUserID))
	if authorID == "" {
		c.Error(apperror.Unauthorized("User not authenticated"))
		return nil, false
	}
	return h.sessions.Get(c.Request.Context(), authorID), true
}

// activeSession rejects edits while the resume/discard prompt is unresolved:
// reconciliation must complete before the workflow proceeds.
func (h *WorkflowHandler) activeSession(c *gin.Context) (*usecase.WorkflowSession, bool) {
	s, ok := h.session(c)
	if !ok {
		return nil, false
	}
	if !s.Active() {
		c.Error(apperror.New(http.StatusConflict, "Answer the resume prompt before editing", nil))
		return nil, false
	}
	return s, true
}
