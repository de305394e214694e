package unit

import (
	"context"
	"math"
	"testing"

	productinsights "agritrace/contexts/traceability/product-insights-service"
	ledgeradapter "agritrace/contexts/traceability/product-insights-service/adapters/ledger"
	recordledger "agritrace/contexts/traceability/record-ledger-service"
)

func newSeededInsights(t *testing.T) productinsights.Module {
	t.Helper()
	ledger := recordledger.NewInMemoryModule(nil)
	ledger.Store.SeedDemoData()
	return productinsights.NewModule(productinsights.Dependencies{
		Source: ledgeradapter.NewSource(ledger.Records),
	})
}

func TestInsightsCategoryStatsCoverEveryCategory(t *testing.T) {
	ledger := recordledger.NewInMemoryModule(nil)
	insights := productinsights.NewModule(productinsights.Dependencies{
		Source: ledgeradapter.NewSource(ledger.Records),
	})

	req := appleRecordRequest()
	if _, err := ledger.Handler.CreateRecordHandler(context.Background(), "stats-1", req); err != nil {
		t.Fatalf("create record failed: %v", err)
	}

	resp, err := insights.Handler.CategoryStatsHandler(context.Background())
	if err != nil {
		t.Fatalf("category stats failed: %v", err)
	}

	wantCategories := map[string]bool{
		"Fruit": false, "Vegetable": false, "Grain": false, "Herb": false, "Dairy": false,
	}
	for _, stat := range resp.Stats {
		if _, ok := wantCategories[stat.Category]; !ok {
			t.Fatalf("unexpected category %q in stats", stat.Category)
		}
		wantCategories[stat.Category] = true
	}
	for category, seen := range wantCategories {
		if !seen {
			t.Fatalf("category %q missing from stats", category)
		}
	}

	for _, stat := range resp.Stats {
		switch stat.Category {
		case "Fruit":
			if stat.Count != 1 || stat.Percentage != 100 {
				t.Fatalf("expected Fruit count=1 pct=100, got count=%d pct=%v", stat.Count, stat.Percentage)
			}
		default:
			if stat.Count != 0 || stat.Percentage != 0 {
				t.Fatalf("expected %s count=0 pct=0, got count=%d pct=%v", stat.Category, stat.Count, stat.Percentage)
			}
		}
	}
	if resp.TotalRecords != 1 {
		t.Fatalf("expected total 1, got %d", resp.TotalRecords)
	}
}

func TestInsightsCategoryStatsSumMatchesLedger(t *testing.T) {
	insights := newSeededInsights(t)

	resp, err := insights.Handler.CategoryStatsHandler(context.Background())
	if err != nil {
		t.Fatalf("category stats failed: %v", err)
	}

	sum := 0
	pct := 0.0
	for _, stat := range resp.Stats {
		sum += stat.Count
		pct += stat.Percentage
	}
	if sum != resp.TotalRecords {
		t.Fatalf("counts sum %d does not match total %d", sum, resp.TotalRecords)
	}
	if math.Abs(pct-100) > 1e-9 {
		t.Fatalf("expected percentages to sum to 100, got %v", pct)
	}
}

func TestInsightsCategoryStatsEmptyLedger(t *testing.T) {
	ledger := recordledger.NewInMemoryModule(nil)
	insights := productinsights.NewModule(productinsights.Dependencies{
		Source: ledgeradapter.NewSource(ledger.Records),
	})

	resp, err := insights.Handler.CategoryStatsHandler(context.Background())
	if err != nil {
		t.Fatalf("category stats failed: %v", err)
	}
	if len(resp.Stats) != 5 {
		t.Fatalf("expected 5 zero-count categories, got %d", len(resp.Stats))
	}
	for _, stat := range resp.Stats {
		if stat.Count != 0 || stat.Percentage != 0 {
			t.Fatalf("expected zero stats for %s, got count=%d pct=%v", stat.Category, stat.Count, stat.Percentage)
		}
	}
}

func TestInsightsFilterAllPassesEverything(t *testing.T) {
	insights := newSeededInsights(t)

	all, err := insights.Handler.ListProductsHandler(context.Background(), "All", "")
	if err != nil {
		t.Fatalf("filter All failed: %v", err)
	}
	unfiltered, err := insights.Handler.ListProductsHandler(context.Background(), "", "")
	if err != nil {
		t.Fatalf("unfiltered list failed: %v", err)
	}
	if all.Total != unfiltered.Total {
		t.Fatalf("expected All to pass everything: got %d vs %d", all.Total, unfiltered.Total)
	}
	if all.Total == 0 {
		t.Fatalf("expected seeded products")
	}
}

func TestInsightsFilterByCategory(t *testing.T) {
	insights := newSeededInsights(t)

	resp, err := insights.Handler.ListProductsHandler(context.Background(), "Grain", "")
	if err != nil {
		t.Fatalf("category filter failed: %v", err)
	}
	if resp.Total == 0 {
		t.Fatalf("expected at least one Grain product")
	}
	for _, product := range resp.Products {
		if product.Category != "Grain" {
			t.Fatalf("expected only Grain products, got %s", product.Category)
		}
	}
}

func TestInsightsSearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	insights := newSeededInsights(t)

	// Matches the farmer field regardless of case.
	byFarmer, err := insights.Handler.ListProductsHandler(context.Background(), "", "GREEN VALLEY")
	if err != nil {
		t.Fatalf("farmer search failed: %v", err)
	}
	if byFarmer.Total != 1 {
		t.Fatalf("expected one match for farmer search, got %d", byFarmer.Total)
	}
	if byFarmer.Products[0].Farmer != "Green Valley Farm" {
		t.Fatalf("unexpected farmer match: %s", byFarmer.Products[0].Farmer)
	}

	// Matches the location field.
	byLocation, err := insights.Handler.ListProductsHandler(context.Background(), "", "fresno")
	if err != nil {
		t.Fatalf("location search failed: %v", err)
	}
	if byLocation.Total != 1 {
		t.Fatalf("expected one match for location search, got %d", byLocation.Total)
	}

	// Matches the category field as plain text.
	byCategory, err := insights.Handler.ListProductsHandler(context.Background(), "", "dairy")
	if err != nil {
		t.Fatalf("category search failed: %v", err)
	}
	if byCategory.Total != 1 {
		t.Fatalf("expected one match for category search, got %d", byCategory.Total)
	}

	// Search composes with the category filter.
	none, err := insights.Handler.ListProductsHandler(context.Background(), "Fruit", "fresno")
	if err != nil {
		t.Fatalf("combined filter failed: %v", err)
	}
	if none.Total != 0 {
		t.Fatalf("expected no Fruit products in Fresno, got %d", none.Total)
	}
}

func TestInsightsProductStatusReflectsVerification(t *testing.T) {
	insights := newSeededInsights(t)

	resp, err := insights.Handler.ListProductsHandler(context.Background(), "", "")
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}

	pending := 0
	for _, product := range resp.Products {
		switch product.Status {
		case "verified":
		case "pending":
			pending++
			if product.ProductName != "Raw Goat Milk" {
				t.Fatalf("unexpected pending product %s", product.ProductName)
			}
		default:
			t.Fatalf("unexpected product status %q", product.Status)
		}
	}
	if pending != 1 {
		t.Fatalf("expected exactly one pending product, got %d", pending)
	}
}

func TestInsightsReflectLedgerAppendsImmediately(t *testing.T) {
	ledger := recordledger.NewInMemoryModule(nil)
	insights := productinsights.NewModule(productinsights.Dependencies{
		Source: ledgeradapter.NewSource(ledger.Records),
	})

	before, err := insights.Handler.ListProductsHandler(context.Background(), "", "")
	if err != nil {
		t.Fatalf("list before failed: %v", err)
	}
	if before.Total != 0 {
		t.Fatalf("expected empty view, got %d", before.Total)
	}

	req := appleRecordRequest()
	if _, err := ledger.Handler.CreateRecordHandler(context.Background(), "live-1", req); err != nil {
		t.Fatalf("create record failed: %v", err)
	}

	after, err := insights.Handler.ListProductsHandler(context.Background(), "", "")
	if err != nil {
		t.Fatalf("list after failed: %v", err)
	}
	if after.Total != 1 {
		t.Fatalf("expected one product after append, got %d", after.Total)
	}
	if after.Products[0].Status != "verified" {
		t.Fatalf("expected freshly created record to be verified, got %q", after.Products[0].Status)
	}
}
