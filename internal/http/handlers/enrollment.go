package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	domainagg "github.com/yungbote/learnosphere-backend/internal/domain/aggregates"
	"github.com/yungbote/learnosphere-backend/internal/http/response"
	"github.com/yungbote/learnosphere-backend/internal/platform/ctxutil"
	"github.com/yungbote/learnosphere-backend/internal/services"
)

type EnrollmentHandler struct {
	enrollments services.EnrollmentService
}

func NewEnrollmentHandler(enrollments services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

type setEnrollmentRequest struct {
	UID      string `json:"uid" binding:"required"`
	CourseID string `json:"courseId" binding:"required"`
	Enroll   *bool  `json:"enroll" binding:"required"`
}

// POST /api/enrollment
// body: { "uid": "...", "courseId": "...", "enroll": true|false }
func (h *EnrollmentHandler) SetEnrollment(c *gin.Context) {
	var req setEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, bindError("Enrollment.SetEnrollment", err))
		return
	}

	res, err := h.enrollments.SetEnrollment(c.Request.Context(), services.SetEnrollmentInput{
		UID:      req.UID,
		CourseID: req.CourseID,
		Enroll:   req.Enroll,
	})
	if err != nil {
		response.RespondError(c, err)
		return
	}

	body := gin.H{"message": res.Message}
	if res.EnrollmentID != nil {
		body["enrollmentId"] = res.EnrollmentID.String()
	}
	response.RespondOK(c, body)
}

// GET /api/enrollments/:uid
func (h *EnrollmentHandler) ListEnrollments(c *gin.Context) {
	views, err := h.enrollments.ListEnrollments(c.Request.Context(), credentialFrom(c), c.Param("uid"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"enrollments": views})
}

// GET /api/learners/:uid
func (h *EnrollmentHandler) GetLearner(c *gin.Context) {
	learner, err := h.enrollments.GetLearner(c.Request.Context(), credentialFrom(c), c.Param("uid"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"learner": learner})
}

func credentialFrom(c *gin.Context) string {
	if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
		return rd.Credential
	}
	return ""
}

// bindError turns a JSON binding failure into invalid_input naming the bad fields.
func bindError(op string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, jsonFieldName(fe.Field()))
		}
		return domainagg.NewError(domainagg.CodeInvalidInput, op,
			fmt.Sprintf("missing required fields: %s", strings.Join(fields, ", ")), err)
	}
	return domainagg.NewError(domainagg.CodeInvalidInput, op, "request body must be a JSON object", err)
}

func jsonFieldName(field string) string {
	switch field {
	case "UID":
		return "uid"
	case "CourseID":
		return "courseId"
	case "Enroll":
		return "enroll"
	default:
		return strings.ToLower(field)
	}
}
