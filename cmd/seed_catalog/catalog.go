package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
)

var requiredColumns = []string{"name", "category", "stock", "expiry_date", "packaging_type", "price"}

// catalogRow fila del CSV ya convertida; Line es la línea del archivo (para reportar errores).
type catalogRow struct {
	Line int
	In   dto.CreateMedicineRequest
}

// decodeReader aplica la codificación de entrada. utf-8 pasa sin cambios.
func decodeReader(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
		return r, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("charset no soportado: %s", charset)
	}
}

// readCatalog lee el CSV con cabecera. Las columnas se ubican por nombre; description es opcional.
// Separador ',' o ';' según comma.
func readCatalog(r io.Reader, comma rune) ([]catalogRow, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("archivo vacío")
		}
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("falta la columna %q", c)
		}
	}
	get := func(rec []string, col string) string {
		i, ok := cols[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []catalogRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer csv: %w", err)
		}
		line, _ := cr.FieldPos(0)

		stock, err := strconv.Atoi(get(rec, "stock"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: stock inválido %q", line, get(rec, "stock"))
		}
		// Se acepta coma decimal ("12,50").
		price, err := decimal.NewFromString(strings.ReplaceAll(get(rec, "price"), ",", "."))
		if err != nil {
			return nil, fmt.Errorf("línea %d: precio inválido %q", line, get(rec, "price"))
		}
		rows = append(rows, catalogRow{
			Line: line,
			In: dto.CreateMedicineRequest{
				Name:          get(rec, "name"),
				Description:   get(rec, "description"),
				Category:      get(rec, "category"),
				Stock:         stock,
				ExpiryDate:    get(rec, "expiry_date"),
				PackagingType: strings.ToLower(get(rec, "packaging_type")),
				Price:         price,
			},
		})
	}
	return rows, nil
}
