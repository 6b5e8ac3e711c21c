// seed_catalog carga el catálogo inicial de medicamentos desde un CSV.
//
// Uso: go run ./cmd/seed_catalog -file catalogo.csv [-charset latin1] [-comma ';']
//
// Columnas (cabecera obligatoria): name, description, category, stock, expiry_date (YYYY-MM-DD),
// packaging_type (single|strip|pack|box), price. Los medicamentos que ya existen se omiten.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/usecase"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/authz"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/farmacia-api/pkg/config"
	"github.com/jhoicas/farmacia-api/pkg/logger"
)

// seedCaller identidad con la que se registran las altas (el catálogo es de inventory_manager).
var seedCaller = authz.Caller{UserID: "seed_catalog", Username: "seed_catalog", Role: entity.RoleInventoryManager}

func main() {
	file := flag.String("file", "catalogo.csv", "ruta del CSV")
	charset := flag.String("charset", "utf-8", "codificación del archivo: utf-8 | latin1 | windows-1252")
	comma := flag.String("comma", ",", "separador de columnas")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Child("seed_catalog")

	sep, size := utf8.DecodeRuneInString(*comma)
	if size == 0 || size != len(*comma) {
		log.Fatal().Str("comma", *comma).Msg("el separador debe ser un único carácter")
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	r, err := decodeReader(f, *charset)
	if err != nil {
		log.Fatal().Err(err).Msg("codificación")
	}
	rows, err := readCatalog(r, sep)
	if err != nil {
		log.Fatal().Err(err).Msg("leer catálogo")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
	}

	res := seed(ctx, usecase.NewMedicineUseCase(postgres.NewMedicineRepository(pool)), rows, log)
	log.Info().
		Int("creados", res.created).
		Int("omitidos", res.skipped).
		Int("con_error", res.failed).
		Msg("catálogo cargado")
	if res.failed > 0 {
		os.Exit(1)
	}
}

type seedResult struct {
	created, skipped, failed int
}

// medicineCreator subconjunto de MedicineUseCase que usa la carga.
type medicineCreator interface {
	Create(ctx context.Context, caller authz.Caller, in dto.CreateMedicineRequest) (*dto.MedicineResponse, error)
}

// seed da de alta cada fila con las mismas validaciones que la API.
func seed(ctx context.Context, uc medicineCreator, rows []catalogRow, log *logger.Logger) seedResult {
	var res seedResult
	for _, row := range rows {
		_, err := uc.Create(ctx, seedCaller, row.In)
		switch {
		case err == nil:
			res.created++
		case errors.Is(err, domain.ErrDuplicate):
			res.skipped++
			log.Debug().Int("linea", row.Line).Str("name", row.In.Name).Msg("ya existe, se omite")
		default:
			res.failed++
			log.Error().Err(err).Int("linea", row.Line).Str("name", row.In.Name).Msg("fila rechazada")
		}
	}
	return res
}
