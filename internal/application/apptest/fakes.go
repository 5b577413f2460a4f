// Package apptest implementaciones en memoria de los puertos de dominio,
// compartidas por los tests de los casos de uso.
package apptest

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/clientbottle/clientbottle-api/internal/domain"
	"github.com/clientbottle/clientbottle-api/internal/domain/entity"
	"github.com/clientbottle/clientbottle-api/internal/domain/repository"
	"github.com/clientbottle/clientbottle-api/pkg/strutil"
)

// ── Usuarios ──────────────────────────────────────────────────────────────────

type UserRepo struct {
	Users  map[int64]*entity.User
	NextID int64
}

func NewUserRepo() *UserRepo {
	return &UserRepo{Users: map[int64]*entity.User{}, NextID: 1}
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) (*entity.User, error) {
	for _, e := range r.Users {
		if e.Email == u.Email {
			return nil, domain.Raise(domain.CodeEmailRegistered)
		}
	}
	cp := *u
	cp.IDUser = r.NextID
	cp.FlActive = true
	cp.CreatedAt = time.Now()
	r.NextID++
	r.Users[cp.IDUser] = &cp
	out := cp
	return &out, nil
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	if u, ok := r.Users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.Users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.Users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByEmailOrUsername(_ context.Context, login string) (*entity.User, error) {
	for _, u := range r.Users {
		if u.Email == login || u.Username == login {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.Users))
	for _, u := range r.Users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IDUser < out[j].IDUser })
	return out, nil
}

func (r *UserRepo) SetActive(_ context.Context, id int64, active bool, updateUserID int64) error {
	u, ok := r.Users[id]
	if !ok {
		return nil
	}
	now := time.Now()
	u.FlActive = active
	u.UpdateUserID = &updateUserID
	u.UpdatedAt = &now
	return nil
}

func (r *UserRepo) UpdatePassword(_ context.Context, id int64, hash string, updateUserID int64) error {
	if u, ok := r.Users[id]; ok {
		u.Password = hash
		u.UpdateUserID = &updateUserID
	}
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id int64) error {
	delete(r.Users, id)
	return nil
}

// ── Tokens de sesión ──────────────────────────────────────────────────────────

type TokenRepo struct {
	Tokens []*entity.UserToken
}

func (r *TokenRepo) Create(_ context.Context, t *entity.UserToken) error {
	r.Tokens = append(r.Tokens, t)
	return nil
}

func (r *TokenRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	kept := r.Tokens[:0]
	var removed int64
	for _, t := range r.Tokens {
		if t.ExpiresAt.After(now) {
			kept = append(kept, t)
		} else {
			removed++
		}
	}
	r.Tokens = kept
	return removed, nil
}

func (r *TokenRepo) DeleteByUser(_ context.Context, idUser int64) error {
	kept := r.Tokens[:0]
	for _, t := range r.Tokens {
		if t.IDUser != idUser {
			kept = append(kept, t)
		}
	}
	r.Tokens = kept
	return nil
}

// ── Convites ──────────────────────────────────────────────────────────────────

type InviteRepo struct {
	Invites map[int64]*entity.Invite
	NextID  int64
}

func NewInviteRepo() *InviteRepo {
	return &InviteRepo{Invites: map[int64]*entity.Invite{}, NextID: 1}
}

func (r *InviteRepo) Create(_ context.Context, inv *entity.Invite) (*entity.Invite, error) {
	for _, e := range r.Invites {
		if e.Email == inv.Email {
			return nil, domain.Raise(domain.CodeInviteAlreadySent)
		}
	}
	cp := *inv
	cp.IDInvite = r.NextID
	cp.FlActive = true
	cp.CreatedAt = time.Now()
	r.NextID++
	r.Invites[cp.IDInvite] = &cp
	out := cp
	return &out, nil
}

func (r *InviteRepo) GetByToken(_ context.Context, token string) (*entity.Invite, error) {
	for _, inv := range r.Invites {
		if inv.Token == token {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *InviteRepo) GetByID(_ context.Context, id int64) (*entity.Invite, error) {
	if inv, ok := r.Invites[id]; ok {
		cp := *inv
		return &cp, nil
	}
	return nil, nil
}

func (r *InviteRepo) GetByEmail(_ context.Context, email string) (*entity.Invite, error) {
	for _, inv := range r.Invites {
		if inv.Email == email {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *InviteRepo) ListBySender(_ context.Context, senderID int64) ([]*entity.Invite, error) {
	var out []*entity.Invite
	for _, inv := range r.Invites {
		if inv.SenderID == senderID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IDInvite < out[j].IDInvite })
	return out, nil
}

func (r *InviteRepo) Delete(_ context.Context, id int64) error {
	delete(r.Invites, id)
	return nil
}

// ── Recuperación de contraseña ────────────────────────────────────────────────

type RecoverRepo struct {
	Recs   map[int64]*entity.RecoverPassword
	NextID int64
}

func NewRecoverRepo() *RecoverRepo {
	return &RecoverRepo{Recs: map[int64]*entity.RecoverPassword{}, NextID: 1}
}

func (r *RecoverRepo) Create(_ context.Context, rec *entity.RecoverPassword) (*entity.RecoverPassword, error) {
	cp := *rec
	cp.IDRecoverPassword = r.NextID
	cp.FlActive = true
	cp.CreatedAt = time.Now()
	r.NextID++
	r.Recs[cp.IDRecoverPassword] = &cp
	out := cp
	return &out, nil
}

func (r *RecoverRepo) GetByToken(_ context.Context, token string) (*entity.RecoverPassword, error) {
	for _, rec := range r.Recs {
		if rec.Token == token {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *RecoverRepo) DeleteByEmail(_ context.Context, email string) error {
	for id, rec := range r.Recs {
		if rec.Email == email {
			delete(r.Recs, id)
		}
	}
	return nil
}

func (r *RecoverRepo) Delete(_ context.Context, id int64) error {
	delete(r.Recs, id)
	return nil
}

// ── Marcas ────────────────────────────────────────────────────────────────────

type BrandRepo struct {
	Brands map[int64]*entity.BottleBrand
	NextID int64
}

func NewBrandRepo() *BrandRepo {
	return &BrandRepo{Brands: map[int64]*entity.BottleBrand{}, NextID: 1}
}

func (r *BrandRepo) Create(_ context.Context, creationUserID int64, name string) (*entity.BottleBrand, error) {
	for _, b := range r.Brands {
		if strutil.Normalize(b.Name) == strutil.Normalize(name) {
			return nil, domain.Raise(domain.CodeBrandAlreadyExists)
		}
	}
	b := &entity.BottleBrand{
		IDBottleBrand: r.NextID,
		Name:          name,
		Audit:         entity.Audit{FlActive: true, CreatedAt: time.Now(), CreationUserID: creationUserID},
	}
	r.NextID++
	r.Brands[b.IDBottleBrand] = b
	cp := *b
	return &cp, nil
}

func (r *BrandRepo) List(_ context.Context) ([]*entity.BottleBrand, error) {
	out := make([]*entity.BottleBrand, 0, len(r.Brands))
	for _, b := range r.Brands {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IDBottleBrand < out[j].IDBottleBrand })
	return out, nil
}

func (r *BrandRepo) GetByID(_ context.Context, id int64) (*entity.BottleBrand, error) {
	if b, ok := r.Brands[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (r *BrandRepo) GetByName(_ context.Context, name string) (*entity.BottleBrand, error) {
	needle := strutil.Normalize(name)
	for _, b := range r.Brands {
		if strings.Contains(strutil.Normalize(b.Name), needle) {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *BrandRepo) GetByExactName(_ context.Context, name string) (*entity.BottleBrand, error) {
	for _, b := range r.Brands {
		if strutil.Normalize(b.Name) == strutil.Normalize(name) {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *BrandRepo) GetNameByID(_ context.Context, id int64) (string, error) {
	if b, ok := r.Brands[id]; ok {
		return b.Name, nil
	}
	return "", nil
}

func (r *BrandRepo) Rename(_ context.Context, id int64, newName string, updateUserID int64) (*entity.BottleBrand, error) {
	b, ok := r.Brands[id]
	if !ok {
		return nil, nil
	}
	b.Name = newName
	b.UpdateUserID = &updateUserID
	cp := *b
	return &cp, nil
}

func (r *BrandRepo) Delete(_ context.Context, id int64) error {
	delete(r.Brands, id)
	return nil
}

// ── Clientes ──────────────────────────────────────────────────────────────────

type ClientRepo struct {
	Clients map[int64]*entity.Client
	NextID  int64
}

func NewClientRepo() *ClientRepo {
	return &ClientRepo{Clients: map[int64]*entity.Client{}, NextID: 1}
}

func (r *ClientRepo) Create(_ context.Context, c *entity.Client) (*entity.Client, error) {
	cp := *c
	cp.IDClient = r.NextID
	cp.FlActive = true
	cp.CreatedAt = time.Now()
	r.NextID++
	r.Clients[cp.IDClient] = &cp
	out := cp
	return &out, nil
}

func (r *ClientRepo) GetByID(_ context.Context, id int64) (*entity.Client, error) {
	if c, ok := r.Clients[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *ClientRepo) FindByNameOrPhone(_ context.Context, name string, phone *string) (*entity.Client, error) {
	needle := strutil.Normalize(name)
	for _, c := range r.Clients {
		if strings.Contains(strutil.Normalize(c.Name), needle) {
			cp := *c
			return &cp, nil
		}
		if phone != nil && c.Phone != nil && *c.Phone == *phone {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ClientRepo) Update(_ context.Context, c *entity.Client) error {
	if _, ok := r.Clients[c.IDClient]; ok {
		cp := *c
		r.Clients[c.IDClient] = &cp
	}
	return nil
}

// ── Transacciones ─────────────────────────────────────────────────────────────

type TransactionRepo struct {
	Transactions map[int64]*entity.Transaction
	NextID       int64
	Clients      *ClientRepo
}

func NewTransactionRepo(clients *ClientRepo) *TransactionRepo {
	return &TransactionRepo{Transactions: map[int64]*entity.Transaction{}, NextID: 1, Clients: clients}
}

func (r *TransactionRepo) Create(_ context.Context, tx *entity.Transaction) (*entity.Transaction, error) {
	cp := *tx
	cp.IDTransaction = r.NextID
	cp.FlActive = true
	cp.CreatedAt = time.Now()
	if cp.TransactionDate.IsZero() {
		cp.TransactionDate = time.Now().Truncate(24 * time.Hour)
	}
	r.NextID++
	r.Transactions[cp.IDTransaction] = &cp
	out := cp
	return &out, nil
}

func (r *TransactionRepo) join(tx *entity.Transaction) *repository.TransactionJoined {
	j := &repository.TransactionJoined{
		IDTransaction:   tx.IDTransaction,
		TransactionData: tx.TransactionData,
		TransactionDate: tx.TransactionDate,
		RecordedBy:      tx.RecordedBy,
	}
	if c, ok := r.Clients.Clients[tx.IDClient]; ok {
		j.ClientName = c.Name
		j.ClientLastName = c.LastName
		j.ClientPhone = c.Phone
	}
	return j
}

func (r *TransactionRepo) activeSorted() []*entity.Transaction {
	var out []*entity.Transaction
	for _, tx := range r.Transactions {
		if tx.FlActive {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TransactionDate.Equal(out[j].TransactionDate) {
			return out[i].TransactionDate.After(out[j].TransactionDate)
		}
		return out[i].IDTransaction > out[j].IDTransaction
	})
	return out
}

func (r *TransactionRepo) page(list []*entity.Transaction, page, size int) ([]*repository.TransactionJoined, int64) {
	total := int64(len(list))
	start := (page - 1) * size
	if start >= len(list) {
		return nil, total
	}
	end := start + size
	if end > len(list) {
		end = len(list)
	}
	out := make([]*repository.TransactionJoined, 0, end-start)
	for _, tx := range list[start:end] {
		out = append(out, r.join(tx))
	}
	return out, total
}

func (r *TransactionRepo) ListActive(_ context.Context, page, size int) ([]*repository.TransactionJoined, int64, error) {
	out, total := r.page(r.activeSorted(), page, size)
	return out, total, nil
}

func (r *TransactionRepo) ListByTerm(_ context.Context, page, size int, term string) ([]*repository.TransactionJoined, int64, error) {
	needle := strutil.Normalize(term)
	var filtered []*entity.Transaction
	for _, tx := range r.activeSorted() {
		j := r.join(tx)
		raw, _ := json.Marshal(tx.TransactionData)
		hay := strutil.Normalize(j.ClientName + " " + j.ClientLastName + " " + string(raw))
		if j.ClientPhone != nil {
			hay += " " + *j.ClientPhone
		}
		if j.RecordedBy != nil {
			hay += " " + strutil.Normalize(*j.RecordedBy)
		}
		if strings.Contains(hay, needle) {
			filtered = append(filtered, tx)
		}
	}
	out, total := r.page(filtered, page, size)
	return out, total, nil
}

func (r *TransactionRepo) ListByDate(_ context.Context, page, size int, date time.Time) ([]*repository.TransactionJoined, int64, error) {
	var filtered []*entity.Transaction
	for _, tx := range r.activeSorted() {
		if tx.TransactionDate.Year() == date.Year() && tx.TransactionDate.YearDay() == date.YearDay() {
			filtered = append(filtered, tx)
		}
	}
	out, total := r.page(filtered, page, size)
	return out, total, nil
}

func (r *TransactionRepo) GetJoined(_ context.Context, id int64) (*repository.TransactionJoined, error) {
	if tx, ok := r.Transactions[id]; ok {
		return r.join(tx), nil
	}
	return nil, nil
}

func (r *TransactionRepo) Get(_ context.Context, id int64) (*entity.Transaction, error) {
	if tx, ok := r.Transactions[id]; ok {
		cp := *tx
		return &cp, nil
	}
	return nil, nil
}

func (r *TransactionRepo) UpdateItems(_ context.Context, id int64, items []entity.TransactionItem, updateUserID int64) error {
	if tx, ok := r.Transactions[id]; ok {
		tx.TransactionData = items
		tx.UpdateUserID = &updateUserID
	}
	return nil
}

func (r *TransactionRepo) Deactivate(_ context.Context, id int64, updateUserID int64) (bool, error) {
	tx, ok := r.Transactions[id]
	if !ok {
		return false, nil
	}
	tx.FlActive = false
	tx.UpdateUserID = &updateUserID
	return true, nil
}

func (r *TransactionRepo) ListByMonth(_ context.Context, year int, month time.Month, active bool) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, tx := range r.Transactions {
		if tx.FlActive == active && tx.TransactionDate.Year() == year && tx.TransactionDate.Month() == month {
			cp := *tx
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IDTransaction < out[j].IDTransaction })
	return out, nil
}

// ── TxRunner y Mailer ─────────────────────────────────────────────────────────

// TxRunner pasa los mismos repos en memoria: no hay transacción real, pero el
// orden de las operaciones dentro del callback sí se ejercita.
type TxRunner struct {
	Users   *UserRepo
	Invites *InviteRepo
}

func (r *TxRunner) RunConfirmUser(_ context.Context, fn func(
	userRepo repository.UserRepository,
	inviteRepo repository.InviteRepository,
) error) error {
	return fn(r.Users, r.Invites)
}

// SentMail registro de un correo disparado.
type SentMail struct {
	Email string
	Token string
}

// Mailer registra los correos en lugar de enviarlos.
type Mailer struct {
	Invites    []SentMail
	Recoveries []SentMail
}

func (m *Mailer) SendInvite(email, token string) {
	m.Invites = append(m.Invites, SentMail{Email: email, Token: token})
}

func (m *Mailer) SendRecovery(email, token string) {
	m.Recoveries = append(m.Recoveries, SentMail{Email: email, Token: token})
}
