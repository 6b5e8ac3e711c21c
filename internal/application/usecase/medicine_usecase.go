package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/authz"
	"github.com/jhoicas/farmacia-api/internal/domain/billing"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const (
	maxMedicineNameLen = 255
	maxCategoryLen     = 100
)

// maxPrice límite de NUMERIC(10,2): 8 dígitos enteros.
var maxPrice = decimal.New(1, 8)

// MedicineUseCase casos de uso del catálogo. Lectura para cualquier identidad autenticada;
// alta, modificación y baja solo para inventory_manager.
type MedicineUseCase struct {
	repo repository.MedicineRepository
}

// NewMedicineUseCase construye el caso de uso.
func NewMedicineUseCase(repo repository.MedicineRepository) *MedicineUseCase {
	return &MedicineUseCase{repo: repo}
}

// Create crea un medicamento. El nombre debe ser único en el catálogo.
func (uc *MedicineUseCase) Create(ctx context.Context, caller authz.Caller, in dto.CreateMedicineRequest) (*dto.MedicineResponse, error) {
	if err := authz.Require(caller, "create_medicine", authz.IsInventoryManager); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if err := validateMedicineName(name); err != nil {
		return nil, err
	}
	category := strings.TrimSpace(in.Category)
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	expiry, err := parseExpiryDate(in.ExpiryDate)
	if err != nil {
		return nil, err
	}
	packaging, err := parsePackaging(in.PackagingType)
	if err != nil {
		return nil, err
	}
	if err := validatePrice(in.Price); err != nil {
		return nil, err
	}
	if err := validateStock(in.Stock); err != nil {
		return nil, err
	}

	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Duplicate("name", "ya existe un medicamento con ese nombre")
	}

	now := time.Now().UTC()
	medicine := &entity.Medicine{
		ID:            uuid.New().String(),
		Name:          name,
		Description:   in.Description,
		Category:      category,
		Stock:         in.Stock,
		ExpiryDate:    expiry,
		PackagingType: packaging,
		Price:         in.Price,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, medicine); err != nil {
		return nil, err
	}
	return ToMedicineResponse(medicine), nil
}

// GetByID obtiene un medicamento por ID.
func (uc *MedicineUseCase) GetByID(ctx context.Context, caller authz.Caller, id string) (*dto.MedicineResponse, error) {
	if err := authz.Require(caller, "get_medicine", authz.IsAuthenticated); err != nil {
		return nil, err
	}
	medicine, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToMedicineResponse(medicine), nil
}

// List lista el catálogo con filtros opcionales por categoría y nombre.
// Sin limit devuelve el catálogo completo.
func (uc *MedicineUseCase) List(ctx context.Context, caller authz.Caller, in dto.ListMedicinesRequest) (*dto.MedicineListResponse, error) {
	if err := authz.Require(caller, "list_medicines", authz.IsAuthenticated); err != nil {
		return nil, err
	}
	in.OptionalPage()
	list, err := uc.repo.List(ctx, repository.MedicineFilter{
		Category: strings.TrimSpace(in.Category),
		Search:   strings.TrimSpace(in.Search),
		Limit:    in.Limit,
		Offset:   in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MedicineResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *ToMedicineResponse(m))
	}
	return &dto.MedicineListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Update actualiza parcialmente un medicamento: los campos omitidos conservan su valor.
func (uc *MedicineUseCase) Update(ctx context.Context, caller authz.Caller, id string, in dto.UpdateMedicineRequest) (*dto.MedicineResponse, error) {
	if err := authz.Require(caller, "update_medicine", authz.IsInventoryManager); err != nil {
		return nil, err
	}
	medicine, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if err := validateMedicineName(name); err != nil {
			return nil, err
		}
		if name != medicine.Name {
			other, err := uc.repo.GetByName(ctx, name)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.Duplicate("name", "ya existe un medicamento con ese nombre")
			}
		}
		medicine.Name = name
	}
	if in.Description != nil {
		medicine.Description = *in.Description
	}
	if in.Category != nil {
		category := strings.TrimSpace(*in.Category)
		if err := validateCategory(category); err != nil {
			return nil, err
		}
		medicine.Category = category
	}
	if in.Stock != nil {
		if err := validateStock(*in.Stock); err != nil {
			return nil, err
		}
		medicine.Stock = *in.Stock
	}
	if in.ExpiryDate != nil {
		expiry, err := parseExpiryDate(*in.ExpiryDate)
		if err != nil {
			return nil, err
		}
		medicine.ExpiryDate = expiry
	}
	if in.PackagingType != nil {
		packaging, err := parsePackaging(*in.PackagingType)
		if err != nil {
			return nil, err
		}
		medicine.PackagingType = packaging
	}
	if in.Price != nil {
		if err := validatePrice(*in.Price); err != nil {
			return nil, err
		}
		medicine.Price = *in.Price
	}
	medicine.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, medicine); err != nil {
		return nil, err
	}
	return ToMedicineResponse(medicine), nil
}

// Delete elimina el medicamento (y en cascada sus facturas). Devuelve el registro eliminado
// para que el caller pueda confirmar con el nombre.
func (uc *MedicineUseCase) Delete(ctx context.Context, caller authz.Caller, id string) (*dto.MedicineResponse, error) {
	if err := authz.Require(caller, "delete_medicine", authz.IsInventoryManager); err != nil {
		return nil, err
	}
	medicine, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return ToMedicineResponse(medicine), nil
}

func (uc *MedicineUseCase) load(ctx context.Context, id string) (*entity.Medicine, error) {
	medicine, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, domain.NotFound("medicamento", id)
	}
	return medicine, nil
}

func validateMedicineName(name string) error {
	if name == "" {
		return domain.Invalid("name", "name es requerido")
	}
	if len(name) > maxMedicineNameLen {
		return domain.Invalid("name", "name demasiado largo")
	}
	return nil
}

func validateCategory(category string) error {
	if category == "" {
		return domain.Invalid("category", "category es requerido")
	}
	if len(category) > maxCategoryLen {
		return domain.Invalid("category", "category demasiado largo")
	}
	return nil
}

func parseExpiryDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, domain.Invalid("expiry_date", "expiry_date es requerido")
	}
	t, err := time.Parse(entity.ExpiryDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, domain.Invalid("expiry_date", "formato de fecha inválido, use YYYY-MM-DD")
	}
	return t, nil
}

func parsePackaging(s string) (entity.PackagingType, error) {
	p := entity.PackagingType(s)
	if !p.Valid() {
		return "", domain.Invalid("packaging_type", "packaging_type debe ser single, strip, pack o box")
	}
	return p, nil
}

func validateStock(stock int) error {
	if stock < entity.MinStock || stock > entity.MaxStock {
		return domain.Invalid("stock", "stock fuera de rango")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return domain.Invalid("price", "price no puede ser negativo")
	}
	if !billing.HasMoneyScale(price) {
		return domain.Invalid("price", "price admite máximo 2 decimales")
	}
	if price.GreaterThanOrEqual(maxPrice) {
		return domain.Invalid("price", "price excede el máximo permitido")
	}
	return nil
}

// ToMedicineResponse convierte la entidad en DTO.
func ToMedicineResponse(m *entity.Medicine) *dto.MedicineResponse {
	if m == nil {
		return nil
	}
	return &dto.MedicineResponse{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Category:      m.Category,
		Stock:         m.Stock,
		ExpiryDate:    m.ExpiryDate.Format(entity.ExpiryDateLayout),
		PackagingType: m.PackagingType.String(),
		Price:         dto.NewMoney(m.Price),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
