package controller

import (
	"errors"
	"prova_backend/internal/service"
	"prova_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	Service *service.AssessmentService
}

func NewAssessmentController(svc *service.AssessmentService) *AssessmentController {
	return &AssessmentController{Service: svc}
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil || id <= 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func (c *AssessmentController) respondDomainError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrAssessmentNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrOptionNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidQuestionType),
		errors.Is(err, util.ErrSingleChoiceCorrect):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary Create an assessment
// @Tags authoring
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.AssessmentRequest true "Assessment metadata"
// @Success 201 {object} util.Response
// @Router /teacher/assessments [post]
func (c *AssessmentController) CreateAssessment(ctx *gin.Context) {
	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.Service.CreateAssessment(req)
	if err != nil {
		c.respondDomainError(ctx, err)
		return
	}

	util.Created(ctx, a)
}

// @Summary List assessments
// @Tags authoring
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response
// @Router /teacher/assessments [get]
func (c *AssessmentController) ListAssessments(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	as, total, err := c.Service.ListAssessments(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"list": as, "total": total, "page": page, "limit": limit})
}

// @Summary Get an assessment with its questions and options
// @Tags authoring
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response
// @Router /teacher/assessments/{id} [get]
func (c *AssessmentController) GetAssessment(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	a, err := c.Service.GetAssessment(id)
	if err != nil {
		c.respondDomainError(ctx, err)
		return
	}

	util.Success(ctx, a)
}

// @Summary Update assessment metadata
// @Tags authoring
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Assessment ID"
// @Param body body service.AssessmentRequest true "Assessment metadata"
// @Success 200 {object} util.Response
// @Router /teacher/assessments/{id} [put]
func (c *AssessmentController) UpdateAssessment(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.Service.UpdateAssessment(id, req)
	if err != nil {
		c.respondDomainError(ctx, err)
		return
	}

	util.Success(ctx, a)
}

// @Summary Delete an assessment
// @Tags authoring
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response
// @Router /teacher/assessments/{id} [delete]
func (c *AssessmentController) DeleteAssessment(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Service.DeleteAssessment(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary Add a question to an assessment
// @Tags authoring
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Assessment ID"
// @Param body body service.QuestionRequest true "Question with options"
// @Success 201 {object} util.Response
// @Router /teacher/assessments/{id}/questions [post]
func (c *AssessmentController) CreateQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.CreateQuestion(id, req)
	if err != nil {
		c.respondDomainError(ctx, err)
		return
	}

	util.Created(ctx, q)
}

// @Summary Get a question
// @Tags authoring
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Question ID"
// @Success 200 {object} util.Response
// @Router /teacher/questions/{id} [get]
func (c *AssessmentController) GetQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	q, err := c.Service.GetQuestion(id)
	if err != nil {
		c.respondDomainError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// @Summary Update a question
// @Tags authoring
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Question ID"
// @Param body body service.QuestionRequest true "Question fields"
// @Success 200 {object} util.Response
// @Router /teacher/questions/{id} [put]
func (c *AssessmentController) UpdateQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.UpdateQuestion(id, req)
	if err != nil {
		c.respondDomainError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// @Summary Delete a question
// @Tags authoring
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Question ID"
// @Success 200 {object} util.Response
// @Router /teacher/questions/{id} [delete]
func (c *AssessmentController) DeleteQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Service.DeleteQuestion(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary Add an option to a question
// @Tags authoring
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Question ID"
// @Param body body service.OptionRequest true "Option"
// @Success 201 {object} util.Response
// @Router /teacher/questions/{id}/options [post]
func (c *AssessmentController) AddOption(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.OptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	o, err := c.Service.AddOption(id, req)
	if err != nil {
		c.respondDomainError(ctx, err)
		return
	}

	util.Created(ctx, o)
}

// @Summary Update an option
// @Tags authoring
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Option ID"
// @Param body body service.OptionRequest true "Option"
// @Success 200 {object} util.Response
// @Router /teacher/options/{id} [put]
func (c *AssessmentController) UpdateOption(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.OptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	o, err := c.Service.UpdateOption(id, req)
	if err != nil {
		c.respondDomainError(ctx, err)
		return
	}

	util.Success(ctx, o)
}

// @Summary Delete an option
// @Tags authoring
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Option ID"
// @Success 200 {object} util.Response
// @Router /teacher/options/{id} [delete]
func (c *AssessmentController) DeleteOption(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Service.DeleteOption(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary Publish an assessment
// @Tags authoring
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.PublicationRequest true "Publication window and exam value"
// @Success 201 {object} util.Response
// @Router /teacher/publications [post]
func (c *AssessmentController) Publish(ctx *gin.Context) {
	var req service.PublicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	p, err := c.Service.Publish(req)
	if err != nil {
		c.respondDomainError(ctx, err)
		return
	}

	util.Created(ctx, p)
}

// @Summary List publications of an assessment
// @Tags authoring
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response
// @Router /teacher/assessments/{id}/publications [get]
func (c *AssessmentController) ListPublications(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	ps, err := c.Service.ListPublications(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, ps)
}

// @Summary Delete a publication
// @Tags authoring
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Publication ID"
// @Success 200 {object} util.Response
// @Router /teacher/publications/{id} [delete]
func (c *AssessmentController) DeletePublication(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Service.DeletePublication(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
