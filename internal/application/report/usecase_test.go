package report_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientbottle/clientbottle-api/internal/application/apptest"
	"github.com/clientbottle/clientbottle-api/internal/application/report"
	"github.com/clientbottle/clientbottle-api/internal/domain/entity"
	"github.com/clientbottle/clientbottle-api/pkg/jwt"
)

type capturedPDF struct {
	label string
	days  []report.DayCount
}

type fakePDF struct {
	captured *capturedPDF
}

func (p *fakePDF) Generate(monthLabel string, days []report.DayCount) ([]byte, error) {
	p.captured = &capturedPDF{label: monthLabel, days: days}
	return []byte("%PDF-fake"), nil
}

type fakeStorage struct {
	objectName  string
	contentType string
	size        int
}

func (s *fakeStorage) Upload(_ context.Context, objectName string, data []byte, contentType string) (string, error) {
	s.objectName = objectName
	s.contentType = contentType
	s.size = len(data)
	return "https://storage.example.com/reports/" + objectName, nil
}

func tx(day int, active bool, quantities ...int) *entity.Transaction {
	now := time.Now().In(jwt.BrazilTZ())
	items := make([]entity.TransactionItem, 0, len(quantities))
	for i, q := range quantities {
		items = append(items, entity.TransactionItem{BrandID: int64(i + 1), Quantity: q})
	}
	return &entity.Transaction{
		IDClient:        1,
		TransactionData: items,
		TransactionDate: time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, time.UTC),
		Audit:           entity.Audit{FlActive: active, CreationUserID: 1},
	}
}

func seed(t *testing.T, repo *apptest.TransactionRepo, txs ...*entity.Transaction) {
	t.Helper()
	for _, e := range txs {
		created, err := repo.Create(context.Background(), e)
		require.NoError(t, err)
		if !e.FlActive {
			_, err = repo.Deactivate(context.Background(), created.IDTransaction, 1)
			require.NoError(t, err)
		}
	}
}

func TestAggregate(t *testing.T) {
	active := []*entity.Transaction{
		{TransactionData: []entity.TransactionItem{{BrandID: 1, Quantity: 5}, {BrandID: 2, Quantity: 3}}, TransactionDate: time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC)},
		{TransactionData: []entity.TransactionItem{{BrandID: 1, Quantity: 2}}, TransactionDate: time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC)},
	}
	inactive := []*entity.Transaction{
		{TransactionData: []entity.TransactionItem{{BrandID: 1, Quantity: 7}}, TransactionDate: time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC)},
	}

	days := report.Aggregate(2026, time.February, active, inactive)

	require.Len(t, days, 28, "febrero de 2026 tiene 28 días")
	assert.Equal(t, 10, days[2].Loaned, "día 3: 5+3+2 prestadas")
	assert.Equal(t, 0, days[2].Returned)
	assert.Equal(t, 7, days[27].Returned, "día 28: 7 devueltas")

	// Los días sin movimiento igual están presentes.
	assert.Equal(t, 15, days[14].Day)
	assert.Zero(t, days[14].Loaned)
	assert.Zero(t, days[14].Returned)
}

func TestAggregate_MesDe31Dias(t *testing.T) {
	days := report.Aggregate(2026, time.August, nil, nil)
	require.Len(t, days, 31)
	assert.Equal(t, 1, days[0].Day)
	assert.Equal(t, 31, days[30].Day)
}

func TestGenerate(t *testing.T) {
	clients := apptest.NewClientRepo()
	txs := apptest.NewTransactionRepo(clients)
	pdf := &fakePDF{}
	storage := &fakeStorage{}
	uc := report.NewUseCase(txs, pdf, storage)

	seed(t, txs,
		tx(5, true, 4),
		tx(5, true, 6),
		tx(12, false, 9),
	)

	out, err := uc.Generate(context.Background())
	require.NoError(t, err)

	now := time.Now().In(jwt.BrazilTZ())
	wantObject := fmt.Sprintf("transactions_report_%04d-%02d.pdf", now.Year(), int(now.Month()))
	assert.Equal(t, wantObject, storage.objectName)
	assert.Equal(t, "application/pdf", storage.contentType)
	assert.Positive(t, storage.size)
	assert.Equal(t, "https://storage.example.com/reports/"+wantObject, out.URL)
	assert.Equal(t, "Relatório gerado com sucesso.", out.Message)

	require.NotNil(t, pdf.captured)
	assert.Contains(t, pdf.captured.label, fmt.Sprint(now.Year()))
	assert.Equal(t, 10, pdf.captured.days[4].Loaned, "día 5: 4+6 prestadas")
	assert.Equal(t, 9, pdf.captured.days[11].Returned, "día 12: 9 devueltas")
}

func TestGenerate_MesSinMovimiento(t *testing.T) {
	clients := apptest.NewClientRepo()
	txs := apptest.NewTransactionRepo(clients)
	pdf := &fakePDF{}
	storage := &fakeStorage{}
	uc := report.NewUseCase(txs, pdf, storage)

	out, err := uc.Generate(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, out.URL)

	require.NotNil(t, pdf.captured)
	for _, d := range pdf.captured.days {
		assert.Zero(t, d.Loaned)
		assert.Zero(t, d.Returned)
	}
}
