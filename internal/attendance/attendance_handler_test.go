package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Sultann121/hazori/internal/attendance"
	attendanceerrors "github.com/Sultann121/hazori/internal/attendance/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	checkInFn func(ctx context.Context, req attendance.CheckInRequest) (attendance.CheckInResponse, error)
}

func (f *fakeService) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
	return f.checkInFn(ctx, req)
}

func postCheckIn(h *attendance.Handler, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.CheckIn(c)
	return w
}

func TestHandler_CheckIn_Success(t *testing.T) {
	svc := &fakeService{
		checkInFn: func(ctx context.Context, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
			assert.Equal(t, "123", req.NationalID)
			assert.Equal(t, "dev-1", req.DeviceID)
			return attendance.CheckInResponse{AttendanceID: "a1", NationalID: req.NationalID, DistanceM: 12}, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := postCheckIn(h, `{"national_id":"123","lat":"25.8969550","lng":"43.5497960","device_id":"dev-1"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
	assert.Contains(t, w.Body.String(), `"attendance_id":"a1"`)
}

func TestHandler_CheckIn_MissingNationalID(t *testing.T) {
	svc := &fakeService{
		checkInFn: func(ctx context.Context, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
			t.Fatal("service must not be called on binding failure")
			return attendance.CheckInResponse{}, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := postCheckIn(h, `{"lat":"25.0","lng":"43.0"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")
}

func TestHandler_CheckIn_DomainRejection(t *testing.T) {
	svc := &fakeService{
		checkInFn: func(ctx context.Context, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
			return attendance.CheckInResponse{}, attendanceerrors.ErrAlreadyMarkedToday
		},
	}
	h := attendance.NewHandler(svc)

	w := postCheckIn(h, `{"national_id":"123","lat":"25.8969550","lng":"43.5497960"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Already marked today")
}

func TestHandler_CheckIn_OutOfAreaCarriesDistance(t *testing.T) {
	svc := &fakeService{
		checkInFn: func(ctx context.Context, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
			return attendance.CheckInResponse{}, attendanceerrors.ErrOutOfArea.WithDetails(map[string]any{"distance_m": 5003.0})
		},
	}
	h := attendance.NewHandler(svc)

	w := postCheckIn(h, `{"national_id":"123","lat":"25.94","lng":"43.55"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "distance_m")
	assert.Contains(t, w.Body.String(), "5003")
}
