package seed

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

// Locality is a place listings are generated in.
type Locality struct {
	City     string `yaml:"city"`
	Locality string `yaml:"locality"`
}

// Fixtures is the curated demo content the factories draw from.
type Fixtures struct {
	Localities   []Locality                      `yaml:"localities"`
	ListingNames map[models.ListingType][]string `yaml:"listing_names"`
	Subtitles    []string                        `yaml:"subtitles"`
	Descriptions []string                        `yaml:"descriptions"`
	HostBios     []string                        `yaml:"host_bios"`
	Languages    []string                        `yaml:"languages"`
	Reviews      map[int][]string                `yaml:"reviews"`
}

// LoadFixtures parses the embedded fixture file.
func LoadFixtures() (*Fixtures, error) {
	return ParseFixtures(fixturesYAML)
}

// ParseFixtures parses raw YAML and checks every section the factories need is present.
func ParseFixtures(raw []byte) (*Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}

	if len(fx.Localities) == 0 {
		return nil, fmt.Errorf("fixtures: no localities")
	}
	for typ, names := range fx.ListingNames {
		if !typ.Valid() {
			return nil, fmt.Errorf("fixtures: unknown listing type %q", typ)
		}
		if len(names) == 0 {
			return nil, fmt.Errorf("fixtures: no names for %q", typ)
		}
	}
	if len(fx.ListingNames) == 0 {
		return nil, fmt.Errorf("fixtures: no listing names")
	}
	for rating := 1; rating <= 5; rating++ {
		if len(fx.Reviews[rating]) == 0 {
			return nil, fmt.Errorf("fixtures: no review comments for rating %d", rating)
		}
	}
	return &fx, nil
}

// ListingTypes returns the listing types that have names, in a stable order.
func (fx *Fixtures) ListingTypes() []models.ListingType {
	order := []models.ListingType{
		models.TypePensiune, models.TypeCabana, models.TypeHotel,
		models.TypeApartament, models.TypeVila, models.TypeTinyHouse,
	}
	out := make([]models.ListingType, 0, len(order))
	for _, t := range order {
		if len(fx.ListingNames[t]) > 0 {
			out = append(out, t)
		}
	}
	return out
}

// title fills the {place} placeholder of a listing name template.
func title(template, place string) string {
	t := strings.ReplaceAll(template, "{place}", place)
	if r := []rune(t); len(r) > models.MaxTitleLen {
		t = string(r[:models.MaxTitleLen])
	}
	return t
}
