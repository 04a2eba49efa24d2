package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/evgray/milscope/internal/config"
	"github.com/evgray/milscope/internal/dataset"
	"github.com/evgray/milscope/internal/store"
	"github.com/evgray/milscope/pkg/compare"
	"github.com/evgray/milscope/pkg/export"
	"github.com/evgray/milscope/pkg/power"
	"github.com/evgray/milscope/pkg/server"
)

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

// openDataset opens the store and loads the process-wide snapshot.
// The snapshot is immutable from here on; the store stays open only for
// commands that write.
func openDataset(cfg *config.Config) (*dataset.Dataset, error) {
	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	ds, err := dataset.Load(context.Background(), db)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return ds, nil
}

func buildEngine(ds *dataset.Dataset) *power.Engine {
	return power.NewEngine(ds.Countries, ds.Budgets, ds.Codes)
}

func runRank(jsonOutput bool, limit int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ds, err := openDataset(cfg)
	if err != nil {
		return err
	}

	scores := buildEngine(ds).CurrentRanking()
	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(scores)
	}

	if len(scores) == 0 {
		fmt.Println("no countries with complete data (try importing a snapshot first: milscope import)")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tCOUNTRY\tSTRENGTH\tPWR INDEX")
	for i, s := range scores {
		fmt.Fprintf(w, "%d\t%s\t%.4f\t%.4f\n", i+1, s.Country, s.Score, s.PwrIndex)
	}
	return w.Flush()
}

func runProject(jsonOutput bool, year, limit int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if year == 0 {
		year = cfg.Projection.TargetYear
	}

	ds, err := openDataset(cfg)
	if err != nil {
		return err
	}

	recs, err := buildEngine(ds).Rank(year)
	if err != nil {
		return fmt.Errorf("projection: %w", err)
	}
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}

	if len(recs) == 0 {
		fmt.Println("no countries with complete data (try importing a snapshot first: milscope import)")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "RANK\tCOUNTRY\tPROJECTION (%d)\tSTRENGTH\tGROWTH\n", year)
	for i, p := range recs {
		fmt.Fprintf(w, "%d\t%s\t%.4f\t%.4f\t%.4f\n",
			i+1, p.Country, p.ProjectionScore, p.StrengthScore, p.GrowthNormalized)
	}
	return w.Flush()
}

func runGrowth(jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ds, err := openDataset(cfg)
	if err != nil {
		return err
	}

	recs := buildEngine(ds).Growth()

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COUNTRY\tGROWTH\tNORMALIZED\tYEARS\tSTATUS")
	for _, p := range recs {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%d\t%s\n",
			p.Country, p.GrowthScore, p.GrowthNormalized, p.ValidYears, p.GrowthReason)
	}
	return w.Flush()
}

func runCompare(countries []string, category string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ds, err := openDataset(cfg)
	if err != nil {
		return err
	}

	table, err := compare.Countries(ds, countries, compare.Category(category))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "METRIC")
	for _, c := range table.Countries {
		fmt.Fprintf(w, "\t%s", c)
	}
	fmt.Fprintln(w)
	for _, row := range table.Rows {
		fmt.Fprint(w, row.Metric)
		for _, v := range row.Values {
			if v == nil {
				fmt.Fprint(w, "\tN/A")
			} else {
				fmt.Fprintf(w, "\t%g", *v)
			}
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func runImport(path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	snap, err := readSnapshot(path)
	if err != nil {
		return err
	}

	ctx := context.Background()
	for i := range snap.Countries {
		if err := db.UpsertCountry(ctx, &snap.Countries[i]); err != nil {
			return err
		}
	}
	for i := range snap.BudgetSeries {
		if err := db.UpsertBudgetEntry(ctx, &snap.BudgetSeries[i]); err != nil {
			return err
		}
	}
	for i := range snap.CompanyRevenue {
		if err := db.UpsertRevenueEntry(ctx, &snap.CompanyRevenue[i]); err != nil {
			return err
		}
	}
	for i := range snap.TradeFlows {
		if err := db.UpsertTradeEntry(ctx, &snap.TradeFlows[i]); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stderr, "imported %d countries, %d budget entries, %d revenue entries, %d trade entries\n",
		len(snap.Countries), len(snap.BudgetSeries), len(snap.CompanyRevenue), len(snap.TradeFlows))
	return nil
}

// snapshot is the on-disk JSON layout consumed by the import command.
type snapshot struct {
	Countries      []store.CountryRow   `json:"countries"`
	BudgetSeries   []store.BudgetEntry  `json:"budget_series"`
	CompanyRevenue []store.RevenueEntry `json:"company_revenue"`
	TradeFlows     []store.TradeEntry   `json:"trade_flows"`
}

func readSnapshot(path string) (*snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return &snap, nil
}

func runExport(out string, year int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if out == "" {
		out = cfg.Export.Path
	}
	if year == 0 {
		year = cfg.Projection.TargetYear
	}

	ds, err := openDataset(cfg)
	if err != nil {
		return err
	}

	engine := buildEngine(ds)
	current := engine.CurrentRanking()
	projected, err := engine.Rank(year)
	if err != nil {
		return fmt.Errorf("projection: %w", err)
	}

	if err := export.WriteReport(out, current, projected, year); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "report written to %s\n", out)
	return nil
}

func runServe(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if port == 0 {
		port = cfg.Server.Port
	}

	ds, err := openDataset(cfg)
	if err != nil {
		return err
	}

	srv := server.New(ds, buildEngine(ds), cfg.Projection.TargetYear, cfg.Projection.Limit, port)
	return srv.ListenAndServe()
}
