package attendance_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"go-ems/internal/attendance"
	attendanceerrors "go-ems/internal/attendance/errors"
	"go-ems/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	os.Exit(m.Run())
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(body, &env))
	return env
}

type fakeService struct {
	checkInFn         func(ctx context.Context, companyID, employeeID string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error)
	checkOutFn        func(ctx context.Context, companyID, employeeID string, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error)
	createFn          func(ctx context.Context, companyID string, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error)
	approveFn         func(ctx context.Context, companyID, approverID, id string) (attendance.AttendanceResponse, error)
	getAllFn          func(ctx context.Context, companyID string, filter attendance.GetAttendanceFilterRequest) ([]attendance.AttendanceResponse, error)
	getByIDFn         func(ctx context.Context, companyID, id string) (attendance.AttendanceResponse, error)
	summaryFn         func(ctx context.Context, companyID, employeeID string, from, to time.Time) (attendance.Summary, error)
	markLeaveDaysFn   func(ctx context.Context, companyID, employeeID string, from, to time.Time, remarks string) (int, error)
	unmarkLeaveDaysFn func(ctx context.Context, companyID, employeeID string, from, to time.Time) (int, error)
}

func (f *fakeService) CheckIn(ctx context.Context, companyID, employeeID string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	return f.checkInFn(ctx, companyID, employeeID, req)
}
func (f *fakeService) CheckOut(ctx context.Context, companyID, employeeID string, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	return f.checkOutFn(ctx, companyID, employeeID, req)
}
func (f *fakeService) Create(ctx context.Context, companyID string, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	return f.createFn(ctx, companyID, req)
}
func (f *fakeService) Approve(ctx context.Context, companyID, approverID, id string) (attendance.AttendanceResponse, error) {
	return f.approveFn(ctx, companyID, approverID, id)
}
func (f *fakeService) GetAll(ctx context.Context, companyID string, filter attendance.GetAttendanceFilterRequest) ([]attendance.AttendanceResponse, error) {
	return f.getAllFn(ctx, companyID, filter)
}
func (f *fakeService) GetByID(ctx context.Context, companyID, id string) (attendance.AttendanceResponse, error) {
	return f.getByIDFn(ctx, companyID, id)
}
func (f *fakeService) Summary(ctx context.Context, companyID, employeeID string, from, to time.Time) (attendance.Summary, error) {
	return f.summaryFn(ctx, companyID, employeeID, from, to)
}
func (f *fakeService) MarkLeaveDays(ctx context.Context, companyID, employeeID string, from, to time.Time, remarks string) (int, error) {
	return f.markLeaveDaysFn(ctx, companyID, employeeID, from, to, remarks)
}
func (f *fakeService) UnmarkLeaveDays(ctx context.Context, companyID, employeeID string, from, to time.Time) (int, error) {
	return f.unmarkLeaveDaysFn(ctx, companyID, employeeID, from, to)
}

func TestHandler_CheckIn(t *testing.T) {
	gin.SetMode(gin.TestMode)
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeService{
			checkInFn: func(ctx context.Context, cid, eid string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, employeeID, eid)
				assert.Equal(t, "HQ", *req.Location)
				return attendance.AttendanceResponse{ID: uuid.New().String(), EmployeeID: eid, Status: attendance.StatusPresent}, nil
			},
		}

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("company_id", companyID)
		c.Set("employee_id", employeeID)
		c.Request = httptest.NewRequest(http.MethodPost, "/attendances/check-in", strings.NewReader(`{"location":"HQ"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		attendance.NewHandler(svc).CheckIn(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, mustDecodeEnvelope(t, w.Body.Bytes()).Ok)
	})

	t.Run("negative double check-in", func(t *testing.T) {
		svc := &fakeService{
			checkInFn: func(ctx context.Context, cid, eid string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
				return attendance.AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
			},
		}

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("company_id", companyID)
		c.Set("employee_id", employeeID)
		c.Request = httptest.NewRequest(http.MethodPost, "/attendances/check-in", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		attendance.NewHandler(svc).CheckIn(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_STATE", mustDecodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})
}

func TestHandler_CheckOut_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeService{
		checkOutFn: func(ctx context.Context, cid, eid string, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{}, attendanceerrors.ErrCheckInNotFound
		},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", uuid.New().String())
	c.Set("employee_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/attendances/check-out", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	attendance.NewHandler(svc).CheckOut(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_Create_Duplicate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeService{
		createFn: func(ctx context.Context, cid string, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{}, attendanceerrors.ErrAttendanceAlreadyExists
		},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", uuid.New().String())
	body := `{"employee_id":"` + uuid.New().String() + `","attendance_date":"2026-03-02"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/attendances", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	attendance.NewHandler(svc).Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_RESOURCE", mustDecodeEnvelope(t, w.Body.Bytes()).Error.Code)
}

func TestHandler_Create_BindError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendances", strings.NewReader(`{"attendance_date":"2026-03-02"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	attendance.NewHandler(&fakeService{}).Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", mustDecodeEnvelope(t, w.Body.Bytes()).Error.Code)
}

func TestHandler_GetAll_ScopesEmployeeRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	svc := &fakeService{
		getAllFn: func(ctx context.Context, cid string, filter attendance.GetAttendanceFilterRequest) ([]attendance.AttendanceResponse, error) {
			assert.Equal(t, employeeID, filter.EmployeeID)
			assert.Equal(t, "2026-03-01", filter.From)
			return []attendance.AttendanceResponse{{ID: uuid.New().String()}, {ID: uuid.New().String()}}, nil
		},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", uuid.New().String())
	c.Set("employee_id", employeeID)
	c.Set("role", "EMPLOYEE")
	c.Request = httptest.NewRequest(http.MethodGet, "/attendances?employee_id=someone-else&from=2026-03-01&page=1&page_size=1", nil)

	attendance.NewHandler(svc).GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"meta"`)
}

func TestHandler_GetByID_HidesOtherEmployees(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeService{
		getByIDFn: func(ctx context.Context, cid, id string) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{ID: id, EmployeeID: uuid.New().String()}, nil
		},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", uuid.New().String())
	c.Set("employee_id", uuid.New().String())
	c.Set("role", "EMPLOYEE")
	c.Params = []gin.Param{{Key: "id", Value: uuid.New().String()}}
	c.Request = httptest.NewRequest(http.MethodGet, "/attendances/x", nil)

	attendance.NewHandler(svc).GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_Summary(t *testing.T) {
	gin.SetMode(gin.TestMode)
	target := uuid.New().String()

	svc := &fakeService{
		summaryFn: func(ctx context.Context, cid, eid string, from, to time.Time) (attendance.Summary, error) {
			assert.Equal(t, target, eid)
			assert.Equal(t, "2026-02-01", from.Format("2006-01-02"))
			assert.Equal(t, "2026-02-28", to.Format("2006-01-02"))
			return attendance.Summary{WorkingDays: 20, OvertimeHours: decimal.RequireFromString("3.5")}, nil
		},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", uuid.New().String())
	c.Set("employee_id", uuid.New().String())
	c.Set("role", "HR")
	c.Request = httptest.NewRequest(http.MethodGet, "/attendances/summary?employee_id="+target+"&from=2026-02-01&to=2026-02-28", nil)

	attendance.NewHandler(svc).Summary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	var got attendance.SummaryResponse
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 20, got.WorkingDays)
	assert.Equal(t, "3.50", got.OvertimeHours)
}

func TestHandler_Approve(t *testing.T) {
	gin.SetMode(gin.TestMode)
	approverID := uuid.New().String()
	id := uuid.New().String()

	svc := &fakeService{
		approveFn: func(ctx context.Context, cid, aid, attendanceID string) (attendance.AttendanceResponse, error) {
			assert.Equal(t, approverID, aid)
			assert.Equal(t, id, attendanceID)
			return attendance.AttendanceResponse{ID: id, IsApproved: true}, nil
		},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", uuid.New().String())
	c.Set("employee_id", approverID)
	c.Params = []gin.Param{{Key: "id", Value: id}}
	c.Request = httptest.NewRequest(http.MethodPost, "/attendances/"+id+"/approve", nil)

	attendance.NewHandler(svc).Approve(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
