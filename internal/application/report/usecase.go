package report

import (
	"context"
	"fmt"
	"time"

	"github.com/clientbottle/clientbottle-api/internal/application/dto"
	"github.com/clientbottle/clientbottle-api/internal/domain/entity"
	"github.com/clientbottle/clientbottle-api/internal/domain/repository"
	"github.com/clientbottle/clientbottle-api/pkg/jwt"
)

// DayCount botellas por día del mes: prestadas (transacciones activas) y
// devueltas (transacciones desactivadas).
type DayCount struct {
	Day      int
	Loaned   int
	Returned int
}

// PDFGenerator puerto de generación del PDF mensual.
type PDFGenerator interface {
	Generate(monthLabel string, days []DayCount) ([]byte, error)
}

// Storage puerto de subida del reporte a almacenamiento de objetos.
type Storage interface {
	Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
}

// Meses en portugués para el título del reporte.
var monthNames = [...]string{
	"", "Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// UseCase genera el reporte mensual de transacciones en PDF y lo sube.
type UseCase struct {
	txRepo  repository.TransactionRepository
	pdf     PDFGenerator
	storage Storage
	now     func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRepo repository.TransactionRepository, pdf PDFGenerator, storage Storage) *UseCase {
	return &UseCase{txRepo: txRepo, pdf: pdf, storage: storage, now: time.Now}
}

// Generate arma el PDF del mes en curso (hora de Brasil), lo sube y devuelve
// la URL pública.
func (uc *UseCase) Generate(ctx context.Context) (*dto.GenerateReportResponse, error) {
	now := uc.now().In(jwt.BrazilTZ())
	year, month := now.Year(), now.Month()

	active, err := uc.txRepo.ListByMonth(ctx, year, month, true)
	if err != nil {
		return nil, err
	}
	inactive, err := uc.txRepo.ListByMonth(ctx, year, month, false)
	if err != nil {
		return nil, err
	}
	days := Aggregate(year, month, active, inactive)

	label := fmt.Sprintf("%s de %d", monthNames[month], year)
	data, err := uc.pdf.Generate(label, days)
	if err != nil {
		return nil, err
	}

	object := fmt.Sprintf("transactions_report_%04d-%02d.pdf", year, int(month))
	url, err := uc.storage.Upload(ctx, object, data, "application/pdf")
	if err != nil {
		return nil, err
	}
	return &dto.GenerateReportResponse{
		Message: "Relatório gerado com sucesso.",
		URL:     url,
	}, nil
}

// Aggregate suma las botellas por día del mes completo, incluso los días sin
// movimiento, para que las dos series del gráfico cubran el mismo eje.
func Aggregate(year int, month time.Month, active, inactive []*entity.Transaction) []DayCount {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	days := make([]DayCount, lastDay)
	for i := range days {
		days[i].Day = i + 1
	}
	add := func(list []*entity.Transaction, returned bool) {
		for _, tx := range list {
			total := 0
			for _, it := range tx.TransactionData {
				total += it.Quantity
			}
			d := &days[tx.TransactionDate.Day()-1]
			if returned {
				d.Returned += total
			} else {
				d.Loaned += total
			}
		}
	}
	add(active, false)
	add(inactive, true)
	return days
}
