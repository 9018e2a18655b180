package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/learnosphere-backend/internal/data/aggregates"
	"github.com/yungbote/learnosphere-backend/internal/data/repos"
	"github.com/yungbote/learnosphere-backend/internal/data/repos/testutil"
	httpH "github.com/yungbote/learnosphere-backend/internal/http/handlers"
	"github.com/yungbote/learnosphere-backend/internal/http/response"
	"github.com/yungbote/learnosphere-backend/internal/observability"
	"github.com/yungbote/learnosphere-backend/internal/services"
)

const testSecret = "router-test-secret"

type routerFixture struct {
	db     *gorm.DB
	engine *gin.Engine
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.DB(t)
	log := testutil.Logger(t)
	courses := repos.NewCourseRepo(db, log)
	learners := repos.NewLearnerRepo(db, log)
	enrollments := repos.NewEnrollmentRepo(db, log)

	agg := aggregates.NewEnrollmentAggregate(aggregates.EnrollmentAggregateDeps{
		Base:        aggregates.BaseDeps{DB: db, Log: log},
		Courses:     courses,
		Learners:    learners,
		Enrollments: enrollments,
	})
	verifier, err := services.NewJWTIdentityVerifier(testSecret)
	require.NoError(t, err)
	svc := services.NewEnrollmentService(log, agg, verifier, learners, enrollments)

	engine := NewRouter(RouterConfig{
		Log:               log,
		Metrics:           observability.NewMetrics(observability.Config{MetricsEnabled: true}),
		EnrollmentHandler: httpH.NewEnrollmentHandler(svc),
		HealthHandler:     httpH.NewHealthHandler(nil),
	})
	return &routerFixture{db: db, engine: engine}
}

func (f *routerFixture) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.APIError {
	t.Helper()
	var env response.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env.Error
}

func TestRouter_EnrollListUnenroll(t *testing.T) {
	f := newRouterFixture(t)
	ctx := t.Context()

	uid := testutil.UID("http")
	testutil.SeedLearner(t, ctx, f.db, uid)
	course := testutil.SeedCourse(t, ctx, f.db, 1)

	rec := f.do(t, http.MethodPost, "/api/enrollment", map[string]any{
		"uid": uid, "courseId": course.ID.String(), "enroll": true,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var enrolled struct {
		Message      string `json:"message"`
		EnrollmentID string `json:"enrollmentId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &enrolled))
	require.Equal(t, "Enrollment successful!", enrolled.Message)
	_, err := uuid.Parse(enrolled.EnrollmentID)
	require.NoError(t, err)

	token, err := services.IssueIdentityToken(testSecret, uid, time.Hour)
	require.NoError(t, err)
	rec = f.do(t, http.MethodGet, "/api/enrollments/"+uid, nil, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var listed struct {
		Enrollments []struct {
			ID          string `json:"_id"`
			CourseID    string `json:"courseId"`
			CourseTitle string `json:"courseTitle"`
		} `json:"enrollments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Enrollments, 1)
	require.Equal(t, enrolled.EnrollmentID, listed.Enrollments[0].ID)
	require.Equal(t, course.ID.String(), listed.Enrollments[0].CourseID)

	rec = f.do(t, http.MethodGet, "/api/learners/"+uid, nil, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Contains(t, rec.Body.String(), course.ID.String())

	rec = f.do(t, http.MethodPost, "/api/enrollment", map[string]any{
		"uid": uid, "courseId": course.ID.String(), "enroll": false,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.JSONEq(t, `{"message":"Unenrollment successful!"}`, rec.Body.String())
}

func TestRouter_ErrorStatuses(t *testing.T) {
	f := newRouterFixture(t)
	ctx := t.Context()

	uid := testutil.UID("status")
	other := testutil.UID("other")
	testutil.SeedLearner(t, ctx, f.db, uid)
	testutil.SeedLearner(t, ctx, f.db, other)
	full := testutil.SeedCourse(t, ctx, f.db, 0)
	open := testutil.SeedCourse(t, ctx, f.db, 5)

	cases := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"missing enroll", map[string]any{"uid": uid, "courseId": open.ID.String()}, http.StatusBadRequest, "invalid_input"},
		{"malformed body", "{not json", http.StatusBadRequest, "invalid_input"},
		{"malformed course id", map[string]any{"uid": uid, "courseId": "abc", "enroll": true}, http.StatusBadRequest, "invalid_input"},
		{"unknown course", map[string]any{"uid": uid, "courseId": uuid.NewString(), "enroll": true}, http.StatusNotFound, "course_not_found"},
		{"unknown learner", map[string]any{"uid": testutil.UID("ghost"), "courseId": open.ID.String(), "enroll": true}, http.StatusNotFound, "learner_not_found"},
		{"full course", map[string]any{"uid": uid, "courseId": full.ID.String(), "enroll": true}, http.StatusConflict, "capacity_exhausted"},
		{"not enrolled", map[string]any{"uid": uid, "courseId": open.ID.String(), "enroll": false}, http.StatusConflict, "not_enrolled"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/api/enrollment", tc.body, "")
			require.Equal(t, tc.status, rec.Code, rec.Body.String())
			apiErr := decodeError(t, rec)
			require.Equal(t, tc.code, apiErr.Code)
			require.NotEmpty(t, apiErr.Message)
		})
	}

	rec := f.do(t, http.MethodPost, "/api/enrollment", map[string]any{"uid": uid, "courseId": open.ID.String(), "enroll": true}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(t, http.MethodPost, "/api/enrollment", map[string]any{"uid": uid, "courseId": open.ID.String(), "enroll": true}, "")
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "already_enrolled", decodeError(t, rec).Code)

	rec = f.do(t, http.MethodGet, "/api/enrollments/"+uid, nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "unauthorized", decodeError(t, rec).Code)

	otherToken, err := services.IssueIdentityToken(testSecret, other, time.Hour)
	require.NoError(t, err)
	rec = f.do(t, http.MethodGet, "/api/enrollments/"+uid, nil, otherToken)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "forbidden", decodeError(t, rec).Code)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/healthcheck", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())

	rec = f.do(t, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "ls_api_requests_total"), rec.Body.String())
}
