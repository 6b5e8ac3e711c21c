// Package memstore implementa los puertos de persistencia en memoria para tests.
// Replica las reglas de la base: unicidad de username y nombre de medicamento,
// borrado en cascada de facturas y transacción de facturación con rollback.
package memstore

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/farmacia-api/internal/application/billing"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// ErrInjected error devuelto por las fallas configuradas en el Store.
var ErrInjected = errors.New("memstore: falla inyectada")

// Store estado compartido por todos los repos en memoria.
type Store struct {
	txMu sync.Mutex // serializa RunBilling
	mu   sync.RWMutex

	users     map[string]entity.User
	medicines map[string]entity.Medicine
	bills     map[string]entity.Bill

	// FailBillCreate hace que BillRepository.Create falle (para probar el rollback).
	FailBillCreate bool
}

// New crea un Store vacío.
func New() *Store {
	return &Store{
		users:     map[string]entity.User{},
		medicines: map[string]entity.Medicine{},
		bills:     map[string]entity.Bill{},
	}
}

// Users repo de usuarios.
func (s *Store) Users() repository.UserRepository { return &userRepo{s: s} }

// Medicines repo de medicamentos.
func (s *Store) Medicines() repository.MedicineRepository { return &medicineRepo{s: s} }

// Bills repo de facturas.
func (s *Store) Bills() repository.BillRepository { return &billRepo{s: s} }

// Reports repo de reportes.
func (s *Store) Reports() repository.ReportRepository { return &reportRepo{s: s} }

// BillCount número de facturas guardadas.
func (s *Store) BillCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bills)
}

// PutBill inserta una factura tal cual (fixtures con created_at controlado).
func (s *Store) PutBill(b entity.Bill) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bills[b.ID] = b
}

var _ billing.BillingTxRunner = (*Store)(nil)

// RunBilling ejecuta fn de forma exclusiva; si retorna error restaura el estado previo.
func (s *Store) RunBilling(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	medicineRepo repository.MedicineRepository,
	billRepo repository.BillRepository,
) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snapshot := s.snapshot()
	if err := fn(s.Users(), s.Medicines(), s.Bills()); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

type state struct {
	users     map[string]entity.User
	medicines map[string]entity.Medicine
	bills     map[string]entity.Bill
}

func (s *Store) snapshot() state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := state{
		users:     make(map[string]entity.User, len(s.users)),
		medicines: make(map[string]entity.Medicine, len(s.medicines)),
		bills:     make(map[string]entity.Bill, len(s.bills)),
	}
	for k, v := range s.users {
		st.users[k] = v
	}
	for k, v := range s.medicines {
		st.medicines[k] = v
	}
	for k, v := range s.bills {
		st.bills[k] = v
	}
	return st
}

func (s *Store) restore(st state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users, s.medicines, s.bills = st.users, st.medicines, st.bills
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// ── users ────────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.users {
		if other.Username == u.Username {
			return domain.Duplicate("username", "ya existe un usuario con ese username")
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *userRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.NotFound("usuario", u.ID)
	}
	for id, other := range r.s.users {
		if id != u.ID && other.Username == u.Username {
			return domain.Duplicate("username", "ya existe un usuario con ese username")
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) List(_ context.Context, f repository.UserFilter) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.User
	for _, u := range r.s.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		u := u
		list = append(list, &u)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return page(list, f.Limit, f.Offset), nil
}

func (r *userRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return domain.NotFound("usuario", id)
	}
	delete(r.s.users, id)
	for bid, b := range r.s.bills {
		if b.StaffID == id {
			delete(r.s.bills, bid)
		}
	}
	return nil
}

// ── medicines ────────────────────────────────────────────────────────────────

type medicineRepo struct{ s *Store }

func (r *medicineRepo) Create(_ context.Context, m *entity.Medicine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.medicines {
		if other.Name == m.Name {
			return domain.Duplicate("name", "ya existe un medicamento con ese nombre")
		}
	}
	r.s.medicines[m.ID] = *m
	return nil
}

func (r *medicineRepo) GetByID(_ context.Context, id string) (*entity.Medicine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.medicines[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

// GetByIDForShare en memoria el bloqueo lo da RunBilling.
func (r *medicineRepo) GetByIDForShare(ctx context.Context, id string) (*entity.Medicine, error) {
	return r.GetByID(ctx, id)
}

func (r *medicineRepo) GetByName(_ context.Context, name string) (*entity.Medicine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.medicines {
		if m.Name == name {
			m := m
			return &m, nil
		}
	}
	return nil, nil
}

func (r *medicineRepo) Update(_ context.Context, m *entity.Medicine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.medicines[m.ID]; !ok {
		return domain.NotFound("medicamento", m.ID)
	}
	for id, other := range r.s.medicines {
		if id != m.ID && other.Name == m.Name {
			return domain.Duplicate("name", "ya existe un medicamento con ese nombre")
		}
	}
	r.s.medicines[m.ID] = *m
	return nil
}

func (r *medicineRepo) List(_ context.Context, f repository.MedicineFilter) ([]*entity.Medicine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	search := strings.ToLower(f.Search)
	var list []*entity.Medicine
	for _, m := range r.s.medicines {
		if f.Category != "" && m.Category != f.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(m.Name), search) {
			continue
		}
		m := m
		list = append(list, &m)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return page(list, f.Limit, f.Offset), nil
}

func (r *medicineRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.medicines[id]; !ok {
		return domain.NotFound("medicamento", id)
	}
	delete(r.s.medicines, id)
	for bid, b := range r.s.bills {
		if b.MedicineID == id {
			delete(r.s.bills, bid)
		}
	}
	return nil
}

// ── bills ────────────────────────────────────────────────────────────────────

type billRepo struct{ s *Store }

func (r *billRepo) Create(_ context.Context, b *entity.Bill) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailBillCreate {
		return ErrInjected
	}
	// Integridad referencial como en las FK de la base.
	if _, ok := r.s.users[b.StaffID]; !ok {
		return errors.New("memstore: staff_id inexistente")
	}
	if _, ok := r.s.medicines[b.MedicineID]; !ok {
		return errors.New("memstore: medicine_id inexistente")
	}
	r.s.bills[b.ID] = *b
	return nil
}

func (r *billRepo) GetByID(_ context.Context, id string) (*entity.Bill, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.bills[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

// ── reports ──────────────────────────────────────────────────────────────────

type reportRepo struct{ s *Store }

func (r *reportRepo) StockLevels(_ context.Context) ([]entity.StockRow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := make([]entity.StockRow, 0, len(r.s.medicines))
	for _, m := range r.s.medicines {
		rows = append(rows, entity.StockRow{ID: m.ID, Name: m.Name, Stock: m.Stock})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].ID < rows[j].ID
	})
	return rows, nil
}

func (r *reportRepo) SalesRows(_ context.Context, f repository.BillFilter) ([]entity.SalesReportRow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var bills []entity.Bill
	for _, b := range r.s.bills {
		b := b
		if f.Matches(&b) {
			bills = append(bills, b)
		}
	}
	sort.Slice(bills, func(i, j int) bool {
		if !bills[i].CreatedAt.Equal(bills[j].CreatedAt) {
			return bills[i].CreatedAt.Before(bills[j].CreatedAt)
		}
		return bills[i].ID < bills[j].ID
	})
	rows := make([]entity.SalesReportRow, 0, len(bills))
	for _, b := range bills {
		rows = append(rows, entity.SalesReportRow{
			ID:            b.ID,
			StaffName:     r.s.users[b.StaffID].Username,
			MedicineName:  r.s.medicines[b.MedicineID].Name,
			Quantity:      b.Quantity,
			PackagingType: b.PackagingType,
			TotalPrice:    b.TotalPrice,
			CreatedAt:     b.CreatedAt,
		})
	}
	return rows, nil
}
