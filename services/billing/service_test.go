package billing

import (
	"context"
	"testing"
	"time"

	billingRepo "dentra/database/repository/billing"
	"dentra/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInvoiceRepo is an in-memory InvoiceRepository mirroring the guarded
// append semantics of the Mongo implementation.
type fakeInvoiceRepo struct {
	invoices    map[string]*models.Invoice
	appendCalls int
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[string]*models.Invoice)}
}

func (r *fakeInvoiceRepo) Create(inv *models.Invoice) error {
	now := time.Now()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) Update(inv *models.Invoice) error {
	if _, ok := r.invoices[inv.ID]; !ok {
		return billingRepo.ErrNotFound
	}
	inv.UpdatedAt = time.Now()
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) Delete(id string) error {
	if _, ok := r.invoices[id]; !ok {
		return billingRepo.ErrNotFound
	}
	delete(r.invoices, id)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*models.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, billingRepo.ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) List(filter billingRepo.InvoiceFilter, p models.ListParams) ([]models.Invoice, int64, error) {
	var out []models.Invoice
	for _, inv := range r.invoices {
		if filter.PatientID != "" && inv.PatientID != filter.PatientID {
			continue
		}
		if filter.Status != "" && inv.PaymentStatus != filter.Status {
			continue
		}
		out = append(out, *inv)
	}
	return out, int64(len(out)), nil
}

func (r *fakeInvoiceRepo) AppendPayment(invoiceID string, payment models.Payment, update billingRepo.PaymentUpdate) error {
	r.appendCalls++
	inv, ok := r.invoices[invoiceID]
	if !ok {
		return billingRepo.ErrNotFound
	}
	if inv.PaymentStatus == models.PaymentStatusPaid || inv.BalanceAmount < payment.Amount {
		return billingRepo.ErrStaleBalance
	}
	inv.PaymentHistory = append(inv.PaymentHistory, payment)
	inv.PaidAmount = update.PaidAmount
	inv.BalanceAmount = update.BalanceAmount
	inv.PaymentStatus = update.Status
	if update.PaidDate != nil {
		inv.PaidDate = update.PaidDate
	}
	inv.UpdatedAt = time.Now()
	return nil
}

// fakeGateway records what crossed the gateway boundary.
type fakeGateway struct {
	tokenizedPAN  string
	chargedToken  string
	tokenizeCalls int
	chargeCalls   int
	failTokenize  bool
	failCharge    bool
	token         string
	transactionID string
}

func (g *fakeGateway) TokenizeCard(ctx context.Context, card models.CardDetails) (models.TokenizationResult, error) {
	g.tokenizeCalls++
	g.tokenizedPAN = card.CardNumber
	if g.failTokenize {
		return models.TokenizationResult{Success: false, Message: "card declined"},
			&GatewayError{Stage: "tokenize", Message: "card declined"}
	}
	token := g.token
	if token == "" {
		token = "tok_test"
	}
	return models.TokenizationResult{Success: true, Token: token, Last4: "1111", Brand: "visa"}, nil
}

func (g *fakeGateway) ProcessPayment(ctx context.Context, req ChargeRequest) (models.ChargeResult, error) {
	g.chargeCalls++
	g.chargedToken = req.Token
	if g.failCharge {
		return models.ChargeResult{Success: false, Message: "insufficient funds"},
			&GatewayError{Stage: "charge", Message: "insufficient funds"}
	}
	return models.ChargeResult{Success: true, TransactionID: g.transactionID}, nil
}

func newTestService() (*DefaultBillingService, *fakeInvoiceRepo, *fakeGateway) {
	repo := newFakeInvoiceRepo()
	gw := &fakeGateway{transactionID: "txn_test"}
	return &DefaultBillingService{Repo: repo, Gateway: gw}, repo, gw
}

func createTestInvoice(t *testing.T, svc *DefaultBillingService, total float64) *models.Invoice {
	t.Helper()
	inv, err := svc.CreateInvoice(CreateInvoiceRequest{
		PatientID: "patient-1",
		Items: []models.InvoiceItem{
			{Description: "Treatment", Quantity: 1, UnitPrice: total},
		},
		DueDate: time.Now().Add(14 * 24 * time.Hour),
	})
	require.NoError(t, err)
	return inv
}

func validCard() *models.CardDetails {
	return &models.CardDetails{
		CardholderName: "Jan Kowalski",
		CardNumber:     "4111 1111 1111 1111",
		ExpiryDate:     "12/30",
		CVV:            "123",
	}
}

func TestCreateInvoiceComputesTotals(t *testing.T) {
	svc, _, _ := newTestService()

	taxRate := 10.0
	inv, err := svc.CreateInvoice(CreateInvoiceRequest{
		PatientID: "patient-1",
		Items: []models.InvoiceItem{
			{Description: "Scaling", Quantity: 1, UnitPrice: 80},
			{Description: "Filling", Quantity: 2, UnitPrice: 45.50},
		},
		TaxRate:        &taxRate,
		DiscountAmount: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, 171.00, inv.Subtotal)
	assert.InDelta(t, 17.10, inv.TaxAmount, 0.001)
	assert.InDelta(t, 183.10, inv.TotalAmount, 0.001)
	assert.Equal(t, inv.TotalAmount, inv.BalanceAmount)
	assert.Equal(t, models.PaymentStatusPending, inv.PaymentStatus)
	assert.Empty(t, inv.PaymentHistory)
}

func TestCreateInvoiceValidation(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateInvoice(CreateInvoiceRequest{PatientID: "p"})
	assert.True(t, IsValidationError(err))

	_, err = svc.CreateInvoice(CreateInvoiceRequest{
		PatientID: "p",
		Items:     []models.InvoiceItem{{Description: "x", Quantity: 0, UnitPrice: 1}},
	})
	assert.True(t, IsValidationError(err))

	_, err = svc.CreateInvoice(CreateInvoiceRequest{
		PatientID: "p",
		Items:     []models.InvoiceItem{{Description: "x", Quantity: 1, UnitPrice: -1}},
	})
	assert.True(t, IsValidationError(err))

	bad := 101.0
	_, err = svc.CreateInvoice(CreateInvoiceRequest{
		PatientID: "p",
		Items:     []models.InvoiceItem{{Description: "x", Quantity: 1, UnitPrice: 1}},
		TaxRate:   &bad,
	})
	assert.True(t, IsValidationError(err))
}

func TestAddPaymentCashSettlesInvoice(t *testing.T) {
	svc, _, gw := newTestService()
	inv := createTestInvoice(t, svc, 100.00)

	updated, err := svc.AddPayment(context.Background(), inv.ID, models.AddPaymentRequest{
		Amount: 100.00,
		Method: models.PaymentMethodCash,
	}, "staff-1")
	require.NoError(t, err)

	assert.Equal(t, 0.00, updated.BalanceAmount)
	assert.Equal(t, models.PaymentStatusPaid, updated.PaymentStatus)
	assert.NotNil(t, updated.PaidDate)
	require.Len(t, updated.PaymentHistory, 1)
	assert.Equal(t, models.PaymentMethodCash, updated.PaymentHistory[0].Method)
	assert.Empty(t, updated.PaymentHistory[0].Reference)
	// Cash never touches the gateway.
	assert.Zero(t, gw.tokenizeCalls)
	assert.Zero(t, gw.chargeCalls)
}

func TestAddPaymentPartialThenPaid(t *testing.T) {
	svc, _, _ := newTestService()
	inv := createTestInvoice(t, svc, 100.00)

	mid, err := svc.AddPayment(context.Background(), inv.ID, models.AddPaymentRequest{
		Amount: 60.00,
		Method: models.PaymentMethodInsurance,
	}, "staff-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPartial, mid.PaymentStatus)
	assert.Equal(t, 40.00, mid.BalanceAmount)
	assert.Nil(t, mid.PaidDate)

	final, err := svc.AddPayment(context.Background(), inv.ID, models.AddPaymentRequest{
		Amount: 40.00,
		Method: models.PaymentMethodCash,
	}, "staff-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, final.PaymentStatus)
	assert.Equal(t, 0.00, final.BalanceAmount)
	assert.Len(t, final.PaymentHistory, 2)
}

func TestAddPaymentRejectsOutOfRangeAmounts(t *testing.T) {
	svc, repo, gw := newTestService()
	inv := createTestInvoice(t, svc, 100.00)

	for _, amount := range []float64{0, -5, 100.01, 500} {
		_, err := svc.AddPayment(context.Background(), inv.ID, models.AddPaymentRequest{
			Amount: amount,
			Method: models.PaymentMethodCash,
		}, "staff-1")
		assert.True(t, IsValidationError(err), "amount %v should be rejected", amount)
		assert.Contains(t, err.Error(), "100.00", "error should name the current balance")
	}

	// Rejections happen before any gateway or persistence work.
	assert.Zero(t, gw.tokenizeCalls)
	assert.Zero(t, gw.chargeCalls)
	assert.Zero(t, repo.appendCalls)
}

func TestAddPaymentUnsupportedMethod(t *testing.T) {
	svc, repo, _ := newTestService()
	inv := createTestInvoice(t, svc, 100.00)

	_, err := svc.AddPayment(context.Background(), inv.ID, models.AddPaymentRequest{
		Amount: 10,
		Method: "barter",
	}, "staff-1")
	assert.True(t, IsValidationError(err))
	assert.Zero(t, repo.appendCalls)
}

func TestAddPaymentOnPaidInvoiceRejected(t *testing.T) {
	svc, _, _ := newTestService()
	inv := createTestInvoice(t, svc, 50.00)

	_, err := svc.AddPayment(context.Background(), inv.ID, models.AddPaymentRequest{
		Amount: 50.00,
		Method: models.PaymentMethodCash,
	}, "staff-1")
	require.NoError(t, err)

	_, err = svc.AddPayment(context.Background(), inv.ID, models.AddPaymentRequest{
		Amount: 10.00,
		Method: models.PaymentMethodCash,
	}, "staff-1")
	assert.ErrorIs(t, err, ErrInvoicePaid)
}

func TestAddPaymentCardFlow(t *testing.T) {
	svc, _, gw := newTestService()
	inv := createTestInvoice(t, svc, 100.00)

	updated, err := svc.AddPayment(context.Background(), inv.ID, models.AddPaymentRequest{
		Amount: 100.00,
		Method: models.PaymentMethodCreditCard,
		Card:   validCard(),
	}, "staff-1")
	require.NoError(t, err)

	// The gateway saw the digits-only PAN exactly once, and the charge ran
	// with the token, never the PAN.
	assert.Equal(t, 1, gw.tokenizeCalls)
	assert.Equal(t, "4111111111111111", gw.tokenizedPAN)
	assert.Equal(t, 1, gw.chargeCalls)
	assert.Equal(t, "tok_test", gw.chargedToken)

	// The stored reference is the transaction ID, not the token.
	require.Len(t, updated.PaymentHistory, 1)
	assert.Equal(t, "txn_test", updated.PaymentHistory[0].Reference)
	assert.Equal(t, models.PaymentStatusPaid, updated.PaymentStatus)
}

func TestAddPaymentReferenceFallsBackToToken(t *testing.T) {
	svc, _, gw := newTestService()
	gw.transactionID = ""
	inv := createTestInvoice(t, svc, 100.00)

	updated, err := svc.AddPayment(context.Background(), inv.ID, models.AddPaymentRequest{
		Amount: 100.00,
		Method: models.PaymentMethodDebitCard,
		Card:   validCard(),
	}, "staff-1")
	require.NoError(t, err)

	require.Len(t, updated.PaymentHistory, 1)
	assert.Equal(t, "tok_test", updated.PaymentHistory[0].Reference)
}

func TestAddPaymentCardValidationBeforeGateway(t *testing.T) {
	svc, repo, gw := newTestService()
	inv := createTestInvoice(t, svc, 100.00)

	card := validCard()
	card.CardNumber = "4111111111111112" // fails Luhn

	_, err := svc.AddPayment(context.Background(), inv.ID, models.AddPaymentRequest{
		Amount: 50.00,
		Method: models.PaymentMethodCreditCard,
		Card:   card,
	}, "staff-1")
	assert.True(t, IsValidationError(err))
	assert.Zero(t, gw.tokenizeCalls)
	assert.Zero(t, repo.appendCalls)
}

func TestAddPaymentTokenizeFailureAborts(t *testing.T) {
	svc, repo, gw := newTestService()
	gw.failTokenize = true
	inv := createTestInvoice(t, svc, 100.00)

	_, err := svc.AddPayment(context.Background(), inv.ID, models.AddPaymentRequest{
		Amount: 50.00,
		Method: models.PaymentMethodCreditCard,
		Card:   validCard(),
	}, "staff-1")
	assert.True(t, IsGatewayError(err))
	assert.Zero(t, gw.chargeCalls)
	assert.Zero(t, repo.appendCalls)

	// Invoice state is untouched.
	after, err := svc.GetInvoice(inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.00, after.BalanceAmount)
	assert.Equal(t, models.PaymentStatusPending, after.PaymentStatus)
}

func TestAddPaymentChargeFailureAborts(t *testing.T) {
	svc, repo, gw := newTestService()
	gw.failCharge = true
	inv := createTestInvoice(t, svc, 100.00)

	_, err := svc.AddPayment(context.Background(), inv.ID, models.AddPaymentRequest{
		Amount: 50.00,
		Method: models.PaymentMethodCreditCard,
		Card:   validCard(),
	}, "staff-1")
	assert.True(t, IsGatewayError(err))
	assert.Equal(t, 1, gw.tokenizeCalls)
	assert.Zero(t, repo.appendCalls)
}

func TestUpdateAndDeletePaidInvoiceRejected(t *testing.T) {
	svc, _, _ := newTestService()
	inv := createTestInvoice(t, svc, 50.00)

	_, err := svc.AddPayment(context.Background(), inv.ID, models.AddPaymentRequest{
		Amount: 50.00,
		Method: models.PaymentMethodCash,
	}, "staff-1")
	require.NoError(t, err)

	_, err = svc.UpdateInvoice(inv.ID, CreateInvoiceRequest{
		PatientID: "patient-1",
		Items:     []models.InvoiceItem{{Description: "x", Quantity: 1, UnitPrice: 10}},
	})
	assert.ErrorIs(t, err, ErrInvoicePaid)

	err = svc.DeleteInvoice(inv.ID)
	assert.ErrorIs(t, err, ErrInvoicePaid)
}

func TestUpdateInvoiceCannotUndercutPaidAmount(t *testing.T) {
	svc, _, _ := newTestService()
	inv := createTestInvoice(t, svc, 100.00)

	_, err := svc.AddPayment(context.Background(), inv.ID, models.AddPaymentRequest{
		Amount: 60.00,
		Method: models.PaymentMethodCash,
	}, "staff-1")
	require.NoError(t, err)

	_, err = svc.UpdateInvoice(inv.ID, CreateInvoiceRequest{
		PatientID: "patient-1",
		Items:     []models.InvoiceItem{{Description: "cheaper", Quantity: 1, UnitPrice: 50}},
	})
	assert.True(t, IsValidationError(err))
}

func TestGetInvoiceNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.GetInvoice("missing")
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestMockGatewayDeterministicByDefault(t *testing.T) {
	gw := NewMockGateway()

	res, err := gw.TokenizeCard(context.Background(), models.CardDetails{CardNumber: "4111111111111111"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "1111", res.Last4)
	assert.Equal(t, "visa", res.Brand)

	charge, err := gw.ProcessPayment(context.Background(), ChargeRequest{Amount: 10, Token: res.Token})
	require.NoError(t, err)
	assert.True(t, charge.Success)
	assert.NotEmpty(t, charge.TransactionID)
}
