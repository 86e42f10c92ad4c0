package controller

import (
	"errors"
	"net/http"
	"prova_backend/internal/service"
	"prova_backend/internal/util"
	"prova_backend/pkg/logger"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ExamController struct {
	Service *service.ExamService
}

func NewExamController(svc *service.ExamService) *ExamController {
	return &ExamController{Service: svc}
}

// @Summary List published assessments
// @Description Every publication visible to the student, with the computed grade when an exam was submitted
// @Tags exams
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /exams [get]
func (c *ExamController) ListPublished(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	listing, err := c.Service.ListPublished(ctx.Request.Context(), claims.Email)
	if err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, listing)
}

// @Summary Get exam for taking or reviewing
// @Description Questions and options for a publication, without correctness flags, annotated with previous answers
// @Tags exams
// @Produce json
// @Security ApiKeyAuth
// @Param publicationId path int true "Publication ID"
// @Success 200 {object} util.Response
// @Router /exams/{publicationId} [get]
func (c *ExamController) GetExam(ctx *gin.Context) {
	publicationID, err := strconv.Atoi(ctx.Param("publicationId"))
	if err != nil {
		util.BadRequest(ctx, "invalid publication id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.Service.GetExam(ctx.Request.Context(), uint(publicationID), claims.Email)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrStudentNotFound),
			errors.Is(err, util.ErrPublicationNotFound),
			errors.Is(err, util.ErrAssessmentNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, view)
}

// SubmitResponse mirrors the contract the exam-taking client expects: a flag
// plus an error string, always on a 200, so validation failures stay ordinary
// responses instead of transport faults.
type SubmitResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// @Summary Submit an exam
// @Description Persists the student's answers with server-computed scores
// @Tags exams
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ExamSubmission true "Answers per question"
// @Success 200 {object} SubmitResponse
// @Router /exams [post]
func (c *ExamController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var submission service.ExamSubmission
	if err := ctx.ShouldBindJSON(&submission); err != nil || submission.AssessmentID == 0 {
		ctx.JSON(http.StatusOK, SubmitResponse{Success: false, Error: "the submitted exam payload is invalid"})
		return
	}

	if _, err := c.Service.Submit(ctx.Request.Context(), claims.Email, submission); err != nil {
		switch {
		case errors.Is(err, util.ErrStudentNotFound),
			errors.Is(err, util.ErrAssessmentNotFound),
			errors.Is(err, util.ErrExamAlreadySubmitted):
			ctx.JSON(http.StatusOK, SubmitResponse{Success: false, Error: err.Error()})
		default:
			logger.Log.Error("failed to save exam", zap.Error(err))
			ctx.JSON(http.StatusOK, SubmitResponse{Success: false, Error: "could not save the exam"})
		}
		return
	}

	ctx.JSON(http.StatusOK, SubmitResponse{Success: true})
}
