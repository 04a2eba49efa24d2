// Package compare derives the dashboard's tabular views from the dataset
// snapshot: multi-country metric comparison, budget history, company
// revenue growth and arms-trade balances. All functions are pure reads;
// rendering stays with the caller.
package compare

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/evgray/milscope/internal/dataset"
	"github.com/evgray/milscope/pkg/power"
)

var (
	ErrCountryCount    = errors.New("select between 2 and 5 countries")
	ErrUnknownCountry  = errors.New("unknown country")
	ErrUnknownCompany  = errors.New("unknown company")
	ErrUnknownCategory = errors.New("unknown category")
)

// Metric pairs a display label with its source field name.
type Metric struct {
	Label string `json:"label"`
	Field string `json:"field"`
}

// BasicMetrics is the headline comparison set.
var BasicMetrics = []Metric{
	{"Population", "total_national_populations"},
	{"Active Military", "active_service_military_manpower"},
	{"Reserve Forces", "active_service_reserve_components"},
	{"Defense Budget", "national_annual_defense_budgets"},
	{"Fighter Aircraft", "total_fighter/interceptor_aircraft_strength"},
	{"Attack Aircraft", "total_attack_aircraft_strength"},
	{"Helicopters", "total_helicopter_strength"},
	{"Attack Helicopters", "total_attack_helicopter_strength"},
	{"Tanks", "total_combat_tank_strength"},
	{"Armored Vehicles", "total_armored_fighting_vehicle_strength"},
	{"Artillery (Self-Propelled)", "total_self_propelled_artillery_strength"},
	{"Artillery (Towed)", "total_towed_artillery_strength"},
	{"Navy Ships", "navy_strength"},
	{"Aircraft Carriers", "aircraft_carrier_strength"},
	{"Submarines", "navy_submarine_strength"},
	{"Power Index (lower is better)", "pwr_index"},
}

// Category selects a themed metric group for detailed comparison.
type Category string

const (
	CategoryAir      Category = "air"
	CategoryLand     Category = "land"
	CategoryNaval    Category = "naval"
	CategoryEconomic Category = "economic"
)

// CategoryMetrics maps each category to its source fields.
var CategoryMetrics = map[Category][]Metric{
	CategoryAir: {
		{"Total Aircraft", "total_military_aircraft_strength"},
		{"Fighters/Interceptors", "total_fighter/interceptor_aircraft_strength"},
		{"Attack Aircraft", "total_attack_aircraft_strength"},
		{"Transport Aircraft", "total_military_transport_aircraft_strength"},
		{"Trainer Aircraft", "total_military_trainer_aircraft_strength"},
		{"Special Mission Aircraft", "special_mission_aircraft_fleets"},
		{"Aerial Tankers", "aerial_tanker_aircraft_fleet_strength"},
		{"Helicopters", "total_helicopter_strength"},
		{"Attack Helicopters", "total_attack_helicopter_strength"},
	},
	CategoryLand: {
		{"Active Military", "active_service_military_manpower"},
		{"Reserve Forces", "active_service_reserve_components"},
		{"Paramilitary", "active_paramilitary_force_strength"},
		{"Tanks", "total_combat_tank_strength"},
		{"Armored Vehicles", "total_armored_fighting_vehicle_strength"},
		{"Artillery (Self-Propelled)", "total_self_propelled_artillery_strength"},
		{"Artillery (Towed)", "total_towed_artillery_strength"},
		{"Rocket Launchers", "total_rocket_launcher_vehicle_strength"},
	},
	CategoryNaval: {
		{"Navy Ships", "navy_strength"},
		{"Aircraft Carriers", "aircraft_carrier_strength"},
		{"Helicopter Carriers", "helicopter_carrier_strength"},
		{"Submarines", "navy_submarine_strength"},
		{"Destroyers", "destroyer_warship_strength"},
		{"Frigates", "navy_frigate_warship_strength"},
		{"Corvettes", "navy_corvette_warship_strength"},
		{"Patrol Craft", "navy_patrol_craft_strength"},
		{"Mine Warfare Craft", "navy_mine_warfare_craft_strength"},
	},
	CategoryEconomic: {
		{"Defense Budget", "national_annual_defense_budgets"},
		{"External Debt", "national_external_debts"},
		{"Purchasing Power Parity", "purchasing_power_parities"},
		{"Foreign Exchange & Gold", "national_reserves_of_foreign_exchange_and_gold"},
		{"Labor Force", "total_labor_force_strength"},
		{"Oil Production", "oil_production_figures"},
		{"Oil Consumption", "oil_consumption_figures"},
	},
}

// Row is one comparison metric across the selected countries; a nil value
// means the metric is missing for that country.
type Row struct {
	Metric string     `json:"metric"`
	Values []*float64 `json:"values"`
}

// Table is a metric-by-country comparison.
type Table struct {
	Countries []string `json:"countries"`
	Rows      []Row    `json:"rows"`
}

// Countries builds a comparison table for 2 to 5 countries over the basic
// metric set, or a category's set when one is given.
func Countries(ds *dataset.Dataset, names []string, category Category) (*Table, error) {
	if len(names) < 2 || len(names) > 5 {
		return nil, ErrCountryCount
	}

	metrics := BasicMetrics
	if category != "" {
		m, ok := CategoryMetrics[category]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
		}
		metrics = m
	}

	records := make([]power.RawRecord, len(names))
	for i, name := range names {
		raw, ok := ds.Raw[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCountry, name)
		}
		records[i] = raw
	}

	table := &Table{Countries: names}
	for _, m := range metrics {
		row := Row{Metric: m.Label, Values: make([]*float64, len(names))}
		for i, raw := range records {
			row.Values[i] = parseDisplayValue(raw[m.Field])
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// parseDisplayValue parses a published value for display tables. Unlike
// the scoring normalizer it accepts thousands separators, since the
// comparison view shows every figure the source managed to publish.
func parseDisplayValue(raw string) *float64 {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Point is one year of a country's series.
type Point struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// BudgetHistory melts a country's expenditure series into ordered
// (year, value) points. Null years are omitted.
func BudgetHistory(ds *dataset.Dataset, country string) ([]Point, error) {
	code, ok := ds.Codes[country]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCountry, country)
	}

	series := ds.Budgets[code]
	points := make([]Point, 0, len(series))
	for year, value := range series {
		points = append(points, Point{Year: year, Value: value})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })
	return points, nil
}

// PowerScore inverts the published power index for display, so higher
// means stronger.
func PowerScore(pwrIndex float64) float64 {
	return 1 - pwrIndex
}
