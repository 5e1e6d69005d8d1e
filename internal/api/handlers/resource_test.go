package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"coopcycle-service/internal/models"
	"coopcycle-service/internal/repository"
	"coopcycle-service/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService[D any] struct {
	mock.Mock
	name string
	id   func(*D) *models.ID
}

func (m *mockService[D]) Name() string { return m.name }

func (m *mockService[D]) ID(d *D) models.ID {
	if p := m.id(d); p != nil {
		return *p
	}
	return 0
}

func (m *mockService[D]) Create(ctx context.Context, d *D) (*D, error) {
	args := m.Called(ctx, d)
	out, _ := args.Get(0).(*D)
	return out, args.Error(1)
}

func (m *mockService[D]) Update(ctx context.Context, id models.ID, d *D) (*D, error) {
	args := m.Called(ctx, id, d)
	out, _ := args.Get(0).(*D)
	return out, args.Error(1)
}

func (m *mockService[D]) PartialUpdate(ctx context.Context, id models.ID, d *D) (*D, error) {
	args := m.Called(ctx, id, d)
	out, _ := args.Get(0).(*D)
	return out, args.Error(1)
}

func (m *mockService[D]) FindAll(ctx context.Context, page *repository.Pageable, filter repository.Filter) (*service.Page[D], error) {
	args := m.Called(ctx, page, filter)
	out, _ := args.Get(0).(*service.Page[D])
	return out, args.Error(1)
}

func (m *mockService[D]) FindOne(ctx context.Context, id models.ID) (*D, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*D)
	return out, args.Error(1)
}

func (m *mockService[D]) Delete(ctx context.Context, id models.ID) error {
	return m.Called(ctx, id).Error(0)
}

var testAlerts = Alerts{App: "coopcycleApp"}

func setupPayments(t *testing.T) (*mockService[service.PaymentDTO], http.Handler) {
	t.Helper()
	svc := &mockService[service.PaymentDTO]{
		name: "payment",
		id:   func(d *service.PaymentDTO) *models.ID { return d.ID },
	}
	t.Cleanup(func() { svc.AssertExpectations(t) })

	res := NewResource[service.PaymentDTO]("payments", svc, testAlerts, Paging{DefaultSize: 20, MaxSize: 100})
	return svc, NewRouter(RouterConfig{Alerts: testAlerts, CORSOrigins: []string{"*"}}, res)
}

func ptr[T any](v T) *T { return &v }

func do(h http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestResource_Create(t *testing.T) {
	svc, h := setupPayments(t)

	in := &service.PaymentDTO{Amount: ptr(0.0), PaymentType: ptr(models.PaymentTypeCB)}
	out := &service.PaymentDTO{ID: models.ID(3).Ref(), Amount: ptr(0.0), PaymentType: ptr(models.PaymentTypeCB)}
	svc.On("Create", mock.Anything, in).Return(out, nil)

	rec := do(h, http.MethodPost, "/api/payments", "application/json", `{"amount":0,"paymentType":"CB"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/payments/3", rec.Header().Get("Location"))
	assert.Equal(t, "coopcycleApp.payment.created", rec.Header().Get("X-coopcycleApp-alert"))
	assert.Equal(t, "3", rec.Header().Get("X-coopcycleApp-params"))
	assert.JSONEq(t, `{"id":3,"amount":0,"paymentType":"CB"}`, rec.Body.String())
}

func TestResource_CreateWithID(t *testing.T) {
	svc, h := setupPayments(t)

	alert := &service.AlertError{Entity: "payment", Key: service.KeyIDExists, Message: "A new payment cannot already have an ID"}
	svc.On("Create", mock.Anything, mock.Anything).Return(nil, alert)

	rec := do(h, http.MethodPost, "/api/payments", "application/json", `{"id":1,"amount":2,"paymentType":"CB"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error.idexists", rec.Header().Get("X-coopcycleApp-error"))
	assert.Equal(t, "payment", rec.Header().Get("X-coopcycleApp-params"))
}

func TestResource_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "not found", err: repository.ErrNotFound, status: http.StatusNotFound, code: "not_found"},
		{name: "invalid input", err: repository.ErrInvalidInput, status: http.StatusBadRequest, code: "invalid_input"},
		{name: "conversion", err: repository.ErrConversion, status: http.StatusInternalServerError, code: "internal_error"},
		{name: "constraint", err: repository.ErrConstraint, status: http.StatusInternalServerError, code: "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, h := setupPayments(t)
			svc.On("FindOne", mock.Anything, models.ID(7)).Return(nil, tt.err)

			rec := do(h, http.MethodGet, "/api/payments/7", "", "")

			assert.Equal(t, tt.status, rec.Code)
			var body apiError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Error)
		})
	}
}

func TestResource_InvalidPathID(t *testing.T) {
	_, h := setupPayments(t)

	for _, target := range []string{"/api/payments/abc", "/api/payments/0", "/api/payments/-4"} {
		rec := do(h, http.MethodGet, target, "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestResource_UpdateMissing(t *testing.T) {
	svc, h := setupPayments(t)

	svc.On("Update", mock.Anything, models.ID(42), mock.Anything).
		Return(nil, service.NotFound("payment"))

	rec := do(h, http.MethodPut, "/api/payments/42", "application/json", `{"id":42,"amount":1,"paymentType":"VISA"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "error.idnotfound", rec.Header().Get("X-coopcycleApp-error"))
}

func TestResource_PatchContentTypes(t *testing.T) {
	tests := []struct {
		contentType string
		status      int
	}{
		{contentType: "application/merge-patch+json", status: http.StatusOK},
		{contentType: "application/json; charset=utf-8", status: http.StatusOK},
		{contentType: "text/plain", status: http.StatusUnsupportedMediaType},
		{contentType: "", status: http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			svc, h := setupPayments(t)
			if tt.status == http.StatusOK {
				out := &service.PaymentDTO{ID: models.ID(5).Ref(), Amount: ptr(9.0), PaymentType: ptr(models.PaymentTypeIzly)}
				svc.On("PartialUpdate", mock.Anything, models.ID(5), &service.PaymentDTO{ID: models.ID(5).Ref(), Amount: ptr(9.0)}).
					Return(out, nil)
			}

			rec := do(h, http.MethodPatch, "/api/payments/5", tt.contentType, `{"id":5,"amount":9}`)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "coopcycleApp.payment.updated", rec.Header().Get("X-coopcycleApp-alert"))
			}
		})
	}
}

func TestResource_RejectsUnknownFields(t *testing.T) {
	_, h := setupPayments(t)

	rec := do(h, http.MethodPost, "/api/payments", "application/json", `{"amount":1,"currency":"EUR"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResource_List(t *testing.T) {
	svc, h := setupPayments(t)

	page := &repository.Pageable{Page: 1, Size: 2, Sort: []repository.Sort{{Property: "amount", Desc: true}}}
	svc.On("FindAll", mock.Anything, page, repository.Filter{}).Return(&service.Page[service.PaymentDTO]{
		Items: []*service.PaymentDTO{{ID: models.ID(3).Ref(), Amount: ptr(1.0), PaymentType: ptr(models.PaymentTypeCB)}},
		Total: 5,
	}, nil)

	rec := do(h, http.MethodGet, "/api/payments?page=1&size=2&sort=amount,desc", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "5", rec.Header().Get("X-Total-Count"))
	link := rec.Header().Get("Link")
	assert.Contains(t, link, `page=2&size=2&sort=amount%2Cdesc>; rel="next"`)
	assert.Contains(t, link, `page=0&size=2&sort=amount%2Cdesc>; rel="prev"`)
	assert.Contains(t, link, `rel="last"`)
	assert.JSONEq(t, `[{"id":3,"amount":1,"paymentType":"CB"}]`, rec.Body.String())
}

func TestResource_ListEmpty(t *testing.T) {
	svc, h := setupPayments(t)

	svc.On("FindAll", mock.Anything, mock.Anything, repository.Filter{Association: "restaurant", IsNull: true}).
		Return(&service.Page[service.PaymentDTO]{}, nil)

	rec := do(h, http.MethodGet, "/api/payments?filter=restaurant-is-null", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-Total-Count"))
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestResource_Delete(t *testing.T) {
	svc, h := setupPayments(t)
	svc.On("Delete", mock.Anything, models.ID(4)).Return(nil)

	rec := do(h, http.MethodDelete, "/api/payments/4", "", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "coopcycleApp.payment.deleted", rec.Header().Get("X-coopcycleApp-alert"))
	assert.Empty(t, rec.Body.String())
}

func TestHealth(t *testing.T) {
	h := NewRouter(RouterConfig{Alerts: testAlerts, DB: pingFunc(func(context.Context) error { return nil })})
	rec := do(h, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	h = NewRouter(RouterConfig{Alerts: testAlerts, DB: pingFunc(func(context.Context) error { return context.DeadlineExceeded })})
	rec = do(h, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestResource_CreateWithFullAssociation(t *testing.T) {
	svc := &mockService[service.BasketDTO]{
		name: "basket",
		id:   func(d *service.BasketDTO) *models.ID { return d.ID },
	}
	h := NewRouter(RouterConfig{Alerts: testAlerts},
		NewResource[service.BasketDTO]("baskets", svc, testAlerts, Paging{DefaultSize: 20}))

	in := &service.BasketDTO{Price: ptr(3.0), Restaurant: &service.Ref{ID: 1}}
	out := &service.BasketDTO{ID: models.ID(9).Ref(), Price: ptr(3.0), Restaurant: &service.Ref{ID: 1}}
	svc.On("Create", mock.Anything, in).Return(out, nil)

	rec := do(h, http.MethodPost, "/api/baskets", "application/json",
		`{"price":3,"restaurant":{"id":1,"name":"Chez Max","address":"12 rue des Lilas"}}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":9,"description":null,"price":3,"restaurant":{"id":1}}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestResource_ListPageOutOfRange(t *testing.T) {
	_, h := setupPayments(t)

	rec := do(h, http.MethodGet, "/api/payments?page=4611686018427387904&size=20", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
