package controller

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"msns_backend/internals/databases/dbtest"
	"msns_backend/internals/features/finance/fees/dto"
	"msns_backend/internals/features/finance/fees/model"
	"msns_backend/internals/features/finance/fees/service"
)

type stubGateway struct {
	settled bool
	err     error
	checked []string
}

func (g *stubGateway) CreateTransaction(orderID string, amount int64, name, email string) (string, string, error) {
	return "tok", "https://pay.example.com/" + orderID, nil
}

func (g *stubGateway) IsSettled(orderID string) (bool, error) {
	g.checked = append(g.checked, orderID)
	return g.settled, g.err
}

// pendingOrder assigns one month and opens a payment link for it.
func pendingOrder(t *testing.T, db *gorm.DB, fees *service.Service) string {
	t.Helper()
	ctx := context.Background()
	fee, err := fees.Create(ctx, dto.CreateFeeInput{Level: "Middle", Type: "MONTHLY", TuitionFee: 2800})
	require.NoError(t, err)
	st := dbtest.Student(t, db, 1, "Ali Khan")
	sess := dbtest.Session(t, db, "2025-2026", true)
	_, err = fees.Assign(ctx, dto.AssignFeeInput{
		StudentID: st.StudentID.String(),
		FeeID:     fee.FeeID.String(),
		SessionID: sess.SessionID.String(),
		Months:    []int{7},
	})
	require.NoError(t, err)

	var row model.FeeAssignmentModel
	require.NoError(t, db.Take(&row).Error)
	_, err = fees.CreatePaymentLink(ctx, dto.PaymentLinkInput{FeeAssignmentID: row.FeeAssignmentID.String()})
	require.NoError(t, err)
	require.NoError(t, db.Take(&row).Error)
	require.NotNil(t, row.PaymentOrderID)
	return *row.PaymentOrderID
}

func post(t *testing.T, app *fiber.App, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/notify", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b)
}

func newApp(db *gorm.DB, gw service.Gateway) *fiber.App {
	app := fiber.New()
	app.Post("/notify", NewPaymentNotificationController(service.New(db, gw), gw).Handle)
	return app
}

func status(t *testing.T, db *gorm.DB) model.PaymentStatus {
	t.Helper()
	var row model.FeeAssignmentModel
	require.NoError(t, db.Take(&row).Error)
	return row.Status
}

func TestNotificationMarksSettledOrderPaid(t *testing.T) {
	db := dbtest.Open(t)
	gw := &stubGateway{settled: true}
	order := pendingOrder(t, db, service.New(db, gw))
	app := newApp(db, gw)

	code, body := post(t, app, `{"order_id":"`+order+`","transaction_status":"settlement"}`)
	assert.Equal(t, fiber.StatusOK, code)
	assert.JSONEq(t, `{"success":true}`, body)
	assert.Equal(t, []string{order}, gw.checked)
	assert.Equal(t, model.StatusPaid, status(t, db))
}

func TestNotificationTrustsGatewayNotBody(t *testing.T) {
	db := dbtest.Open(t)
	gw := &stubGateway{settled: false}
	order := pendingOrder(t, db, service.New(db, gw))
	app := newApp(db, gw)

	code, _ := post(t, app, `{"order_id":"`+order+`","transaction_status":"settlement"}`)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, model.StatusPending, status(t, db))

	gw.err = errors.New("timeout")
	code, _ = post(t, app, `{"order_id":"`+order+`"}`)
	assert.Equal(t, fiber.StatusBadGateway, code)
}

func TestNotificationEdgeCases(t *testing.T) {
	db := dbtest.Open(t)
	gw := &stubGateway{settled: true}
	app := newApp(db, gw)

	code, _ := post(t, app, `not json`)
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, _ = post(t, app, `{"order_id":"DON-123"}`)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Empty(t, gw.checked)

	code, _ = post(t, app, `{"order_id":"FEE-unknown-1"}`)
	assert.Equal(t, fiber.StatusNotFound, code)

	code, _ = post(t, newApp(db, nil), `{"order_id":"FEE-x-1"}`)
	assert.Equal(t, fiber.StatusInternalServerError, code)
}
