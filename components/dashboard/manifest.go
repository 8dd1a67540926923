package dashboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// LayoutManifest models a YAML document describing regions, their cards and an
// optional saved order.
type LayoutManifest struct {
	Version string           `json:"version" yaml:"version"`
	Name    string           `json:"name,omitempty" yaml:"name,omitempty"`
	Regions []ManifestRegion `json:"regions" yaml:"regions"`
	Source  string           `json:"-" yaml:"-"`
}

// ManifestRegion describes one sortable region.
type ManifestRegion struct {
	Code               string           `json:"code" yaml:"code"`
	Name               string           `json:"name,omitempty" yaml:"name,omitempty"`
	Description        string           `json:"description,omitempty" yaml:"description,omitempty"`
	ActivationDistance float64          `json:"activation_distance,omitempty" yaml:"activation_distance,omitempty"`
	Cards              []CardDefinition `json:"cards" yaml:"cards"`
	Order              []string         `json:"order,omitempty" yaml:"order,omitempty"`
}

// ReadManifest loads a manifest file from disk.
func ReadManifest(path string) (*LayoutManifest, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*LayoutManifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc LayoutManifest
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dashboard: manifest is empty")
		}
		return nil, fmt.Errorf("dashboard: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// EncodeManifest writes the manifest as YAML.
func EncodeManifest(w io.Writer, doc *LayoutManifest) error {
	if doc == nil {
		return fmt.Errorf("dashboard: manifest document is nil")
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("dashboard: encode manifest: %w", err)
	}
	return encoder.Close()
}

// Validate ensures the manifest satisfies required fields.
func (doc *LayoutManifest) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("dashboard: unsupported manifest version %q", doc.Version)
	}
	if len(doc.Regions) == 0 {
		return fmt.Errorf("dashboard: manifest declares no regions")
	}
	regions := make(map[string]struct{}, len(doc.Regions))
	for idx, region := range doc.Regions {
		if region.Code == "" {
			return fmt.Errorf("dashboard: manifest region at index %d is missing code", idx)
		}
		if _, exists := regions[region.Code]; exists {
			return fmt.Errorf("dashboard: manifest duplicates region %s", region.Code)
		}
		regions[region.Code] = struct{}{}
		if region.ActivationDistance < 0 {
			return fmt.Errorf("dashboard: region %s has negative activation_distance", region.Code)
		}
		if len(region.Cards) == 0 {
			return fmt.Errorf("dashboard: region %s declares no cards", region.Code)
		}
		builtin, isBuiltin := BuiltinRegion(region.Code)
		cards := make(map[string]struct{}, len(region.Cards))
		for _, card := range region.Cards {
			if card.ID == "" {
				return fmt.Errorf("dashboard: region %s has a card without id", region.Code)
			}
			if _, known := builtin.Card(card.ID); isBuiltin && !known {
				return fmt.Errorf("dashboard: region %s cannot render card %s (known: %s)",
					region.Code, card.ID, strings.Join(builtin.CardIDs(), ", "))
			}
			if _, exists := cards[card.ID]; exists {
				return fmt.Errorf("dashboard: region %s duplicates card %s", region.Code, card.ID)
			}
			cards[card.ID] = struct{}{}
		}
		for _, id := range region.Order {
			if _, ok := cards[id]; !ok {
				return fmt.Errorf("dashboard: region %s orders unknown card %s", region.Code, id)
			}
		}
	}
	return nil
}

// Definitions converts the manifest into region definitions. A saved order is
// applied on top of the declared card order.
func (doc *LayoutManifest) Definitions() []RegionDefinition {
	defs := make([]RegionDefinition, 0, len(doc.Regions))
	for _, region := range doc.Regions {
		cards := append([]CardDefinition(nil), region.Cards...)
		if len(region.Order) > 0 {
			ids := make([]string, len(cards))
			for i, card := range cards {
				ids[i] = card.ID
			}
			ordered := make([]CardDefinition, 0, len(cards))
			for _, id := range applyOrderOverride(ids, region.Order) {
				for _, card := range cards {
					if card.ID == id {
						ordered = append(ordered, card)
						break
					}
				}
			}
			cards = ordered
		}
		defs = append(defs, RegionDefinition{
			Code:               region.Code,
			Name:               region.Name,
			Description:        region.Description,
			ActivationDistance: region.ActivationDistance,
			Cards:              cards,
		})
	}
	return defs
}

// ManifestFromService captures the service regions and their current order.
func ManifestFromService(name string, service *Service) *LayoutManifest {
	doc := &LayoutManifest{Version: manifestVersionV1, Name: name}
	for _, def := range service.Regions() {
		order, _ := service.RegionOrder(def.Code)
		doc.Regions = append(doc.Regions, ManifestRegion{
			Code:               def.Code,
			Name:               def.Name,
			Description:        def.Description,
			ActivationDistance: def.ActivationDistance,
			Cards:              append([]CardDefinition(nil), def.Cards...),
			Order:              order,
		})
	}
	return doc
}

func (doc *LayoutManifest) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
	for i := range doc.Regions {
		region := &doc.Regions[i]
		region.Code = normalizeManifestID(region.Code)
		if region.ActivationDistance == 0 {
			region.ActivationDistance = DefaultActivationDistance
			if def, ok := BuiltinRegion(region.Code); ok {
				region.ActivationDistance = def.ActivationDistance
			}
		}
		for j := range region.Cards {
			card := &region.Cards[j]
			card.ID = normalizeManifestID(card.ID)
			if card.Title == "" {
				card.Title = card.ID
			}
		}
		for j, id := range region.Order {
			region.Order[j] = normalizeManifestID(id)
		}
	}
}

// normalizeManifestID accepts "KeyMetrics", "key_metrics" or "key metrics" as "key-metrics".
func normalizeManifestID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	return strcase.ToKebab(id)
}
