package importer

import (
	"context"
	"strings"
	"testing"

	"scentpos/internal/domain"
)

type stubProductRepo struct {
	items []domain.Product
}

func (s *stubProductRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.items = append(s.items, p)
	return &p, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `code,name,type,cost_price,selling_price,stock
prf-001,Amber Noir 30ml,perfume,32000,55000,24
btl-030,Empty Bottle 30ml,bottle,4000,8000,100`

	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 products imported, got %d", count)
	}
	if len(repo.items) != 2 {
		t.Fatalf("expected 2 upserts, got %d", len(repo.items))
	}

	first := repo.items[0]
	if first.Code != "PRF-001" || first.Type != domain.ProductPerfume {
		t.Fatalf("row not normalized: %+v", first)
	}
	if first.SellingPrice != 55000 || first.Stock != 24 {
		t.Fatalf("unexpected numbers: %+v", first)
	}
}

func TestCSVImporter_SkipsBlankRows(t *testing.T) {
	csvData := `code,name,type,cost_price,selling_price,stock
,,,,,
PRF-002,Vanilla Oud 30ml,PERFUME,35000,60000,18`

	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 product imported, got %d", count)
	}
}

func TestCSVImporter_RejectsUnknownType(t *testing.T) {
	csvData := `code,name,type,cost_price,selling_price,stock
CND-001,Scented Candle,CANDLE,10000,20000,5`

	imp := NewCSVImporter(strings.NewReader(csvData), &stubProductRepo{})
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatalf("expected type error")
	}
}

func TestCSVImporter_RejectsMissingPrice(t *testing.T) {
	csvData := `code,name,type,cost_price,selling_price,stock
PRF-009,No Price,PERFUME,10000,,5`

	imp := NewCSVImporter(strings.NewReader(csvData), &stubProductRepo{})
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatalf("expected price error")
	}
}
