package routes_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Parcelo/internal/domain/installment"
	"Parcelo/internal/pkg"
	"Parcelo/internal/routes"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

type stubInstallmentRepo struct {
	getPlanByIDFn       func(ctx context.Context, planID, userID ulid.ULID) (*installment.Plan, error)
	getScheduleByPlanFn func(ctx context.Context, planID, userID ulid.ULID) ([]*installment.ScheduleRow, error)
}

func (s *stubInstallmentRepo) CreatePlanWithSchedule(ctx context.Context, plan *installment.Plan, rows []*installment.ScheduleRow) error {
	return errors.New("not implemented")
}

func (s *stubInstallmentRepo) GetPlanById(ctx context.Context, planID, userID ulid.ULID) (*installment.Plan, error) {
	return s.getPlanByIDFn(ctx, planID, userID)
}

func (s *stubInstallmentRepo) GetPlanForUpdate(ctx context.Context, planID, userID ulid.ULID) (*installment.Plan, error) {
	return s.getPlanByIDFn(ctx, planID, userID)
}

func (s *stubInstallmentRepo) GetPlansByLedgerId(ctx context.Context, ledgerID, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*installment.Plan, int64, error) {
	return nil, 0, errors.New("not implemented")
}

func (s *stubInstallmentRepo) UpdatePlan(ctx context.Context, plan *installment.Plan) error {
	return errors.New("not implemented")
}

func (s *stubInstallmentRepo) DeletePlan(ctx context.Context, planID, userID ulid.ULID) error {
	return errors.New("not implemented")
}

func (s *stubInstallmentRepo) CountProcessed(ctx context.Context, planID ulid.ULID) (int64, error) {
	return 0, errors.New("not implemented")
}

func (s *stubInstallmentRepo) GetScheduleById(ctx context.Context, scheduleID, userID ulid.ULID) (*installment.ScheduleRow, error) {
	return nil, errors.New("not implemented")
}

func (s *stubInstallmentRepo) GetScheduleByPlanId(ctx context.Context, planID, userID ulid.ULID) ([]*installment.ScheduleRow, error) {
	return s.getScheduleByPlanFn(ctx, planID, userID)
}

func (s *stubInstallmentRepo) ListSchedules(ctx context.Context, userID ulid.ULID, filter *installment.ScheduleFilter, pagination *pkg.PaginationParams) ([]*installment.ScheduleRow, int64, error) {
	return nil, 0, errors.New("not implemented")
}

func (s *stubInstallmentRepo) MarkProcessed(ctx context.Context, scheduleID ulid.ULID, processedDate time.Time, actualAmount int64, transactionID ulid.ULID, notes string, updatedAt time.Time) (bool, error) {
	return false, errors.New("not implemented")
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newPlanRouter(h *routes.Handler, userID ulid.ULID) *gin.Engine {
	router := gin.New()
	router.GET("/installment-plans/:id", func(c *gin.Context) {
		c.Set("user_id", userID.String())
		h.GetInstallmentPlan(c)
	})
	return router
}

func TestGetInstallmentPlanErrors(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	planID := ulid.Make()

	t.Run("malformed id returns a validation payload", func(t *testing.T) {
		t.Parallel()

		h := &routes.Handler{}
		router := newPlanRouter(h, userID)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/installment-plans/not-a-ulid", nil)
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}

		var body map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("unexpected body: %v", err)
		}
		if body["error"] != "VALIDATION_ERROR" {
			t.Errorf("expected error VALIDATION_ERROR, got %v", body["error"])
		}
		if body["message"] == "" {
			t.Errorf("expected a message in the payload")
		}
	})

	t.Run("repository failure returns an internal error payload", func(t *testing.T) {
		t.Parallel()

		repo := &stubInstallmentRepo{
			getPlanByIDFn: func(ctx context.Context, id, uid ulid.ULID) (*installment.Plan, error) {
				return &installment.Plan{Id: id, UserId: uid, Status: installment.PlanActive}, nil
			},
			getScheduleByPlanFn: func(ctx context.Context, id, uid ulid.ULID) ([]*installment.ScheduleRow, error) {
				return nil, errors.New("connection reset")
			},
		}
		h := &routes.Handler{
			InstallmentService: &installment.Service{Repository: repo},
		}
		router := newPlanRouter(h, userID)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/installment-plans/"+planID.String(), nil)
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected status 500, got %d", rec.Code)
		}

		var body map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("unexpected body: %v", err)
		}
		if body["error"] != "DATABASE_ERROR" {
			t.Errorf("expected error DATABASE_ERROR, got %v", body["error"])
		}
	})
}
