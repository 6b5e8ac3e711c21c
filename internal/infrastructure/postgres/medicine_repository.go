package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

var _ repository.MedicineRepository = (*MedicineRepo)(nil)

const medicineColumns = `id, name, description, category, stock, expiry_date, packaging_type, price, created_at, updated_at`

// MedicineRepo implementación del puerto MedicineRepository sobre PostgreSQL (usable con pool o tx).
type MedicineRepo struct {
	q Querier
}

// NewMedicineRepository construye el adaptador de persistencia para el catálogo. Pasar pool o tx (Querier).
func NewMedicineRepository(q Querier) *MedicineRepo {
	return &MedicineRepo{q: q}
}

// Create persiste un nuevo medicamento.
func (r *MedicineRepo) Create(ctx context.Context, m *entity.Medicine) error {
	query := `
		INSERT INTO medicines (` + medicineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.Description, m.Category, m.Stock, m.ExpiryDate, string(m.PackagingType), m.Price,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("name", "ya existe un medicamento con ese nombre")
		}
		return fmt.Errorf("insert medicine: %w", err)
	}
	return nil
}

// GetByID obtiene un medicamento por ID.
func (r *MedicineRepo) GetByID(ctx context.Context, id string) (*entity.Medicine, error) {
	m, err := scanMedicine(r.q.QueryRow(ctx, `SELECT `+medicineColumns+` FROM medicines WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get medicine: %w", err)
	}
	return m, nil
}

// GetByIDForShare como GetByID pero con FOR SHARE: la fila no puede modificarse ni
// borrarse hasta que termine la transacción. Solo tiene efecto si el Querier es una tx.
func (r *MedicineRepo) GetByIDForShare(ctx context.Context, id string) (*entity.Medicine, error) {
	m, err := scanMedicine(r.q.QueryRow(ctx, `SELECT `+medicineColumns+` FROM medicines WHERE id = $1 FOR SHARE`, id))
	if err != nil {
		return nil, fmt.Errorf("get medicine for share: %w", err)
	}
	return m, nil
}

// GetByName obtiene un medicamento por nombre exacto.
func (r *MedicineRepo) GetByName(ctx context.Context, name string) (*entity.Medicine, error) {
	m, err := scanMedicine(r.q.QueryRow(ctx, `SELECT `+medicineColumns+` FROM medicines WHERE name = $1`, name))
	if err != nil {
		return nil, fmt.Errorf("get medicine by name: %w", err)
	}
	return m, nil
}

// Update actualiza todos los campos editables del medicamento.
func (r *MedicineRepo) Update(ctx context.Context, m *entity.Medicine) error {
	query := `
		UPDATE medicines
		SET name = $2, description = $3, category = $4, stock = $5, expiry_date = $6,
		    packaging_type = $7, price = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.Description, m.Category, m.Stock, m.ExpiryDate, string(m.PackagingType), m.Price, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("name", "ya existe un medicamento con ese nombre")
		}
		return fmt.Errorf("update medicine: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("medicamento", m.ID)
	}
	return nil
}

// List lista el catálogo ordenado por nombre. Category filtra por igualdad y Search por
// contenido en el nombre (ILIKE). Limit 0 no pagina (LIMIT NULL equivale a LIMIT ALL).
func (r *MedicineRepo) List(ctx context.Context, filter repository.MedicineFilter) ([]*entity.Medicine, error) {
	query := `
		SELECT ` + medicineColumns + `
		FROM medicines
		WHERE ($1::text IS NULL OR category = $1)
		  AND ($2::text IS NULL OR name ILIKE '%' || $2 || '%')
		ORDER BY name ASC, id ASC
		LIMIT $3::int OFFSET $4`
	rows, err := r.q.Query(ctx, query, nullIfEmpty(filter.Category), nullIfEmpty(filter.Search), nullIfZero(filter.Limit), filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	defer rows.Close()
	var list []*entity.Medicine
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan medicine: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Delete elimina un medicamento. Sus facturas se eliminan por ON DELETE CASCADE.
func (r *MedicineRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM medicines WHERE id = $1`, id)
	if err != nil {
		if isInvalidText(err) {
			return domain.NotFound("medicamento", id)
		}
		return fmt.Errorf("delete medicine: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("medicamento", id)
	}
	return nil
}

func scanMedicine(row pgx.Row) (*entity.Medicine, error) {
	var m entity.Medicine
	var packaging string
	err := row.Scan(&m.ID, &m.Name, &m.Description, &m.Category, &m.Stock, &m.ExpiryDate, &packaging, &m.Price,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, err
	}
	m.PackagingType = entity.PackagingType(packaging)
	return &m, nil
}
