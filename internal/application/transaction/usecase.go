package transaction

import (
	"context"
	"time"

	"github.com/clientbottle/clientbottle-api/internal/application/dto"
	"github.com/clientbottle/clientbottle-api/internal/domain"
	"github.com/clientbottle/clientbottle-api/internal/domain/entity"
	"github.com/clientbottle/clientbottle-api/internal/domain/repository"
)

// UseCase casos de uso de transacciones de botellas.
type UseCase struct {
	txRepo     repository.TransactionRepository
	clientRepo repository.ClientRepository
	brandRepo  repository.BottleBrandRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRepo repository.TransactionRepository, clientRepo repository.ClientRepository, brandRepo repository.BottleBrandRepository) *UseCase {
	return &UseCase{txRepo: txRepo, clientRepo: clientRepo, brandRepo: brandRepo}
}

// List pagina las transacciones activas. Acepta a lo sumo un filtro: término
// de búsqueda o fecha exacta; los dos juntos son entrada inválida.
func (uc *UseCase) List(ctx context.Context, in dto.ListTransactionsRequest) (*dto.TransactionListResponse, error) {
	if in.Term != "" && in.Date != "" {
		return nil, domain.Raise(domain.CodeValidation)
	}
	in.DefaultPage()

	var (
		rows  []*repository.TransactionJoined
		total int64
		err   error
	)
	switch {
	case in.Term != "":
		rows, total, err = uc.txRepo.ListByTerm(ctx, in.Page, in.Size, in.Term)
	case in.Date != "":
		var date time.Time
		date, err = time.Parse("2006-01-02", in.Date)
		if err != nil {
			return nil, domain.RaiseMsg(domain.CodeValidation, "Data inválida. Use o formato AAAA-MM-DD.")
		}
		rows, total, err = uc.txRepo.ListByDate(ctx, in.Page, in.Size, date)
	default:
		rows, total, err = uc.txRepo.ListActive(ctx, in.Page, in.Size)
	}
	if err != nil {
		return nil, err
	}

	names := map[int64]string{}
	out := make([]dto.TransactionResponse, 0, len(rows))
	for _, row := range rows {
		resp, err := uc.toResponse(ctx, row, names)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return &dto.TransactionListResponse{
		Items:        out,
		PageResponse: dto.NewPageResponse(in.Page, in.Size, total),
	}, nil
}

// Create registra una transacción. El cliente puede venir por id o por
// nombre/teléfono: si no existe se crea en el momento (get-or-create), igual
// que las marcas referenciadas por nombre.
func (uc *UseCase) Create(ctx context.Context, userID int64, recordedBy string, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	client, err := uc.resolveClient(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	items, err := uc.resolveItems(ctx, userID, in.Items)
	if err != nil {
		return nil, err
	}

	created, err := uc.txRepo.Create(ctx, &entity.Transaction{
		IDClient:        client.IDClient,
		TransactionData: items,
		RecordedBy:      &recordedBy,
		Audit:           entity.Audit{CreationUserID: userID},
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, created.IDTransaction)
}

// Get devuelve una transacción con cliente y nombres de marca resueltos.
func (uc *UseCase) Get(ctx context.Context, id int64) (*dto.TransactionResponse, error) {
	row, err := uc.txRepo.GetJoined(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.Raise(domain.CodeNotFound)
	}
	return uc.toResponse(ctx, row, map[int64]string{})
}

// Update actualización parcial: campos del cliente y/o la lista de ítems de
// reemplazo. Al menos un campo debe venir.
func (uc *UseCase) Update(ctx context.Context, userID, id int64, in dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	if in.Empty() {
		return nil, domain.Raise(domain.CodeValidation)
	}
	existing, err := uc.txRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.Raise(domain.CodeNotFound)
	}

	if in.ClientName != nil || in.LastName != nil || in.Phone != nil {
		client, err := uc.clientRepo.GetByID(ctx, existing.IDClient)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, domain.Raise(domain.CodeNotFound)
		}
		if in.ClientName != nil {
			client.Name = *in.ClientName
		}
		if in.LastName != nil {
			client.LastName = *in.LastName
		}
		if in.Phone != nil {
			client.Phone = in.Phone
		}
		client.UpdateUserID = &userID
		if err := uc.clientRepo.Update(ctx, client); err != nil {
			return nil, err
		}
	}

	if len(in.Items) > 0 {
		items, err := uc.resolveItems(ctx, userID, in.Items)
		if err != nil {
			return nil, err
		}
		if err := uc.txRepo.UpdateItems(ctx, id, items, userID); err != nil {
			return nil, err
		}
	}
	return uc.Get(ctx, id)
}

// Deactivate marca la transacción como inactiva (las botellas volvieron). La
// fila se conserva para el reporte mensual; repetir la operación es un no-op.
func (uc *UseCase) Deactivate(ctx context.Context, userID, id int64) error {
	found, err := uc.txRepo.Deactivate(ctx, id, userID)
	if err != nil {
		return err
	}
	if !found {
		return domain.Raise(domain.CodeNotFound)
	}
	return nil
}

func (uc *UseCase) resolveClient(ctx context.Context, userID int64, in dto.CreateTransactionRequest) (*entity.Client, error) {
	if in.IDClient != nil {
		client, err := uc.clientRepo.GetByID(ctx, *in.IDClient)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, domain.Raise(domain.CodeNotFound)
		}
		return client, nil
	}
	if in.ClientName == nil || *in.ClientName == "" {
		return nil, domain.Raise(domain.CodeValidation)
	}
	client, err := uc.clientRepo.FindByNameOrPhone(ctx, *in.ClientName, in.Phone)
	if err != nil {
		return nil, err
	}
	if client != nil {
		// El teléfono llega a veces recién en una visita posterior.
		if client.Phone == nil && in.Phone != nil {
			client.Phone = in.Phone
			client.UpdateUserID = &userID
			if err := uc.clientRepo.Update(ctx, client); err != nil {
				return nil, err
			}
		}
		return client, nil
	}
	fresh := &entity.Client{
		Name:  *in.ClientName,
		Phone: in.Phone,
		Audit: entity.Audit{CreationUserID: userID},
	}
	if in.LastName != nil {
		fresh.LastName = *in.LastName
	}
	return uc.clientRepo.Create(ctx, fresh)
}

// resolveItems valida los ítems y resuelve cada marca: por id (debe existir)
// o por nombre (get-or-create), exactamente uno de los dos por ítem.
func (uc *UseCase) resolveItems(ctx context.Context, userID int64, items []dto.TransactionItemRequest) ([]entity.TransactionItem, error) {
	if len(items) == 0 {
		return nil, domain.Raise(domain.CodeValidation)
	}
	out := make([]entity.TransactionItem, 0, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, domain.Raise(domain.CodeValidation)
		}
		if (it.BrandID == nil) == (it.BrandName == nil) {
			return nil, domain.Raise(domain.CodeValidation)
		}
		var brandID int64
		if it.BrandID != nil {
			b, err := uc.brandRepo.GetByID(ctx, *it.BrandID)
			if err != nil {
				return nil, err
			}
			if b == nil {
				return nil, domain.Raise(domain.CodeNotFound)
			}
			brandID = b.IDBottleBrand
		} else {
			if *it.BrandName == "" {
				return nil, domain.Raise(domain.CodeValidation)
			}
			b, err := uc.brandRepo.GetByExactName(ctx, *it.BrandName)
			if err != nil {
				return nil, err
			}
			if b == nil {
				b, err = uc.brandRepo.Create(ctx, userID, *it.BrandName)
				if err != nil {
					return nil, err
				}
			}
			brandID = b.IDBottleBrand
		}
		out = append(out, entity.TransactionItem{BrandID: brandID, Quantity: it.Quantity})
	}
	return out, nil
}

func (uc *UseCase) toResponse(ctx context.Context, row *repository.TransactionJoined, names map[int64]string) (*dto.TransactionResponse, error) {
	items := make([]dto.TransactionItemResponse, 0, len(row.TransactionData))
	for _, it := range row.TransactionData {
		name, ok := names[it.BrandID]
		if !ok {
			var err error
			name, err = uc.brandRepo.GetNameByID(ctx, it.BrandID)
			if err != nil {
				return nil, err
			}
			names[it.BrandID] = name
		}
		items = append(items, dto.TransactionItemResponse{
			BrandID:   it.BrandID,
			BrandName: name,
			Quantity:  it.Quantity,
		})
	}
	recordedBy := ""
	if row.RecordedBy != nil {
		recordedBy = *row.RecordedBy
	}
	return &dto.TransactionResponse{
		IDTransaction:   row.IDTransaction,
		ClientName:      row.ClientName,
		ClientLastName:  row.ClientLastName,
		ClientPhone:     row.ClientPhone,
		Items:           items,
		TransactionDate: row.TransactionDate.Format("2006-01-02"),
		RecordedBy:      recordedBy,
	}, nil
}
