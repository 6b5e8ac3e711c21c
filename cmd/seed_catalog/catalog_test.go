package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/farmacia-api/internal/application/usecase"
	"github.com/jhoicas/farmacia-api/internal/testutil/memstore"
	"github.com/jhoicas/farmacia-api/pkg/logger"
)

const sampleCSV = `name,description,category,stock,expiry_date,packaging_type,price
Ibuprofeno 400,Analgésico,analgésicos,120,2027-05-31,strip,12.50
Amoxicilina 500,,antibióticos,40,2026-12-31,BOX,"18,90"
`

func TestReadCatalog(t *testing.T) {
	rows, err := readCatalog(strings.NewReader(sampleCSV), ',')
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "Ibuprofeno 400", rows[0].In.Name)
	assert.Equal(t, 120, rows[0].In.Stock)
	assert.True(t, rows[0].In.Price.Equal(decimal.RequireFromString("12.50")))

	assert.Equal(t, "box", rows[1].In.PackagingType)
	assert.Empty(t, rows[1].In.Description)
	assert.True(t, rows[1].In.Price.Equal(decimal.RequireFromString("18.90")))
}

func TestReadCatalog_FaltaColumna(t *testing.T) {
	_, err := readCatalog(strings.NewReader("name,stock\nX,1\n"), ',')
	assert.ErrorContains(t, err, "category")
}

func TestReadCatalog_StockInvalido(t *testing.T) {
	csv := "name;category;stock;expiry_date;packaging_type;price\nX;general;muchos;2027-01-01;single;1\n"
	_, err := readCatalog(strings.NewReader(csv), ';')
	assert.ErrorContains(t, err, "línea 2")
}

func TestDecodeReader_Latin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String("name,category,stock,expiry_date,packaging_type,price\nJarabe niños,pediatría,5,2027-01-01,single,3\n")
	require.NoError(t, err)

	r, err := decodeReader(bytes.NewReader([]byte(encoded)), "latin1")
	require.NoError(t, err)
	rows, err := readCatalog(r, ',')
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Jarabe niños", rows[0].In.Name)
	assert.Equal(t, "pediatría", rows[0].In.Category)
}

func TestDecodeReader_CharsetDesconocido(t *testing.T) {
	_, err := decodeReader(strings.NewReader(""), "ebcdic")
	assert.Error(t, err)
}

func TestSeed_OmiteDuplicadosYReportaErrores(t *testing.T) {
	store := memstore.New()
	store.AddMedicine("Ibuprofeno 400", "strip", "12.50")
	rows, err := readCatalog(strings.NewReader(sampleCSV+"Sin empaque,,general,1,2027-01-01,bottle,1\n"), ',')
	require.NoError(t, err)

	res := seed(context.Background(), usecase.NewMedicineUseCase(store.Medicines()), rows, logger.Nop())

	assert.Equal(t, seedResult{created: 1, skipped: 1, failed: 1}, res)
	m, err := store.Medicines().GetByName(context.Background(), "Amoxicilina 500")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 40, m.Stock)
}
