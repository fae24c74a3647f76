package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"scentpos/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads a catalog spreadsheet export and inserts/updates
// products by code. Expected headers: code, name, type, cost_price,
// selling_price, stock.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

// Run parses CSV rows and upserts one product per row.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var imported int
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		row := parseRow(record, index)
		if row == nil {
			continue
		}
		if err := i.save(ctx, row); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, p *domain.Product) error {
	if p.Code == "" || p.Name == "" {
		return fmt.Errorf("invalid product row (missing required fields) for code %q", p.Code)
	}
	if p.Type != domain.ProductPerfume && p.Type != domain.ProductBottle {
		return fmt.Errorf("invalid type for code %q: %s", p.Code, p.Type)
	}
	if p.SellingPrice <= 0 {
		return fmt.Errorf("invalid selling price for code %q", p.Code)
	}

	if _, err := i.productRepo.Upsert(ctx, *p); err != nil {
		return fmt.Errorf("upsert product %q: %w", p.Code, err)
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *domain.Product {
	code := pick(record, index, "code")
	name := pick(record, index, "name")
	kind := pick(record, index, "type")
	if code == "" && name == "" {
		return nil
	}

	return &domain.Product{
		Code:         strings.ToUpper(code),
		Name:         name,
		Type:         domain.ProductType(strings.ToUpper(kind)),
		CostPrice:    pickInt64(record, index, "cost_price"),
		SellingPrice: pickInt64(record, index, "selling_price"),
		Stock:        int(pickInt64(record, index, "stock")),
	}
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

func pickInt64(record []string, index map[string]int, key string) int64 {
	raw := pick(record, index, key)
	if raw == "" {
		return 0
	}
	n, _ := strconv.ParseInt(raw, 10, 64)
	return n
}
