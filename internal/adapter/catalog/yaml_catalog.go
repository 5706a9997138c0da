// Package catalog loads part templates and the hub registry seed from a
// YAML file. It is the only place fixture data enters the service, and only
// when a file is configured.
package catalog

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"qutlas/internal/domain/entities"
	"qutlas/internal/usecase/interfaces"
	"qutlas/pkg/errs"

	"gopkg.in/yaml.v3"
)

type templateDoc struct {
	ID               string             `yaml:"id"`
	Name             string             `yaml:"name"`
	Process          string             `yaml:"process"`
	BasePrice        float64            `yaml:"basePrice"`
	BaseLeadTimeDays int                `yaml:"baseLeadTimeDays"`
	DefaultMaterial  string             `yaml:"defaultMaterial"`
	Materials        map[string]float64 `yaml:"materials"`
}

type locationDoc struct {
	Lat float64 `yaml:"lat"`
	Lng float64 `yaml:"lng"`
}

type hubDoc struct {
	ID              string       `yaml:"id"`
	Name            string       `yaml:"name"`
	Processes       []string     `yaml:"processes"`
	Materials       []string     `yaml:"materials"`
	CurrentLoad     float64      `yaml:"currentLoad"`
	QualityRating   float64      `yaml:"qualityRating"`
	BasePrice       float64      `yaml:"basePrice"`
	AvgLeadTimeDays int          `yaml:"avgLeadTimeDays"`
	Certified       bool         `yaml:"certified"`
	Location        *locationDoc `yaml:"location"`
}

type document struct {
	Templates []templateDoc `yaml:"templates"`
	Hubs      []hubDoc      `yaml:"hubs"`
}

// Catalog is an immutable, validated set of templates and hubs.
type Catalog struct {
	templates map[string]entities.PartTemplate
	hubs      []entities.Hub
}

var _ interfaces.IPartCatalog = (*Catalog)(nil)

func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Mark(errs.Wrapf(err, "read catalog %s", path), errs.ErrDataUnavailable)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errs.Wrapf(err, "catalog %s", path)
	}
	return c, nil
}

// Parse decodes and validates a catalog document. Unknown keys are
// rejected.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decode catalog"), errs.ErrInvalidInput)
	}
	if problems := validate(doc); len(problems) > 0 {
		return nil, errs.Markf(errs.ErrInvalidInput, "invalid catalog: %s", strings.Join(problems, "; "))
	}

	c := &Catalog{templates: make(map[string]entities.PartTemplate, len(doc.Templates))}
	for _, t := range doc.Templates {
		materials := make(map[string]float64, len(t.Materials))
		for k, v := range t.Materials {
			materials[strings.TrimSpace(k)] = v
		}
		c.templates[t.ID] = entities.PartTemplate{
			ID:               t.ID,
			Name:             t.Name,
			Process:          t.Process,
			BasePrice:        t.BasePrice,
			BaseLeadTimeDays: t.BaseLeadTimeDays,
			DefaultMaterial:  t.DefaultMaterial,
			Materials:        materials,
		}
	}
	for _, h := range doc.Hubs {
		hub := entities.Hub{
			ID:              h.ID,
			Name:            h.Name,
			Processes:       append([]string(nil), h.Processes...),
			Materials:       append([]string(nil), h.Materials...),
			CurrentLoad:     h.CurrentLoad,
			QualityRating:   h.QualityRating,
			BasePrice:       h.BasePrice,
			AvgLeadTimeDays: h.AvgLeadTimeDays,
			Certified:       h.Certified,
		}
		if h.Location != nil {
			hub.Location = &entities.GeoPoint{Lat: h.Location.Lat, Lng: h.Location.Lng}
		}
		c.hubs = append(c.hubs, hub)
	}
	return c, nil
}

func validate(doc document) []string {
	var problems []string
	seen := map[string]bool{}
	for i, t := range doc.Templates {
		where := fmt.Sprintf("templates[%d]", i)
		if strings.TrimSpace(t.ID) == "" {
			problems = append(problems, where+": id is required")
			continue
		}
		where = fmt.Sprintf("template %s", t.ID)
		if seen[t.ID] {
			problems = append(problems, where+": duplicate id")
		}
		seen[t.ID] = true
		if t.BasePrice <= 0 {
			problems = append(problems, where+": basePrice must be > 0")
		}
		if t.BaseLeadTimeDays < 0 {
			problems = append(problems, where+": baseLeadTimeDays must be >= 0")
		}
		if strings.TrimSpace(t.Process) == "" {
			problems = append(problems, where+": process is required")
		}
		if len(t.Materials) == 0 {
			problems = append(problems, where+": at least one material is required")
		}
		for m, mult := range t.Materials {
			if mult <= 0 {
				problems = append(problems, fmt.Sprintf("%s: material %q multiplier must be > 0", where, m))
			}
		}
		if _, _, ok := (entities.PartTemplate{Materials: t.Materials}).MaterialMultiplier(t.DefaultMaterial); !ok {
			problems = append(problems, fmt.Sprintf("%s: defaultMaterial %q is not in materials", where, t.DefaultMaterial))
		}
	}

	seenHub := map[string]bool{}
	for i, h := range doc.Hubs {
		where := fmt.Sprintf("hubs[%d]", i)
		if strings.TrimSpace(h.ID) == "" {
			problems = append(problems, where+": id is required")
			continue
		}
		where = fmt.Sprintf("hub %s", h.ID)
		if seenHub[h.ID] {
			problems = append(problems, where+": duplicate id")
		}
		seenHub[h.ID] = true
		if h.CurrentLoad < 0 || h.CurrentLoad > 1 {
			problems = append(problems, where+": currentLoad must be within [0,1]")
		}
		if h.QualityRating < 0 || h.QualityRating > 5 {
			problems = append(problems, where+": qualityRating must be within [0,5]")
		}
		if h.BasePrice < 0 {
			problems = append(problems, where+": basePrice must be >= 0")
		}
		if h.AvgLeadTimeDays < 0 {
			problems = append(problems, where+": avgLeadTimeDays must be >= 0")
		}
	}
	return problems
}

func (c *Catalog) GetTemplate(ctx context.Context, id string) (entities.PartTemplate, error) {
	if err := ctx.Err(); err != nil {
		return entities.PartTemplate{}, err
	}
	t, ok := c.templates[id]
	if !ok {
		return entities.PartTemplate{}, errs.Markf(errs.ErrNotFound, "part template %s not found", id)
	}
	return cloneTemplate(t), nil
}

func (c *Catalog) ListTemplates(ctx context.Context) ([]entities.PartTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]entities.PartTemplate, 0, len(c.templates))
	for _, t := range c.templates {
		out = append(out, cloneTemplate(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Hubs returns the hub registry seed in file order.
func (c *Catalog) Hubs() []entities.Hub {
	out := make([]entities.Hub, len(c.hubs))
	for i, h := range c.hubs {
		out[i] = h
		out[i].Processes = append([]string(nil), h.Processes...)
		out[i].Materials = append([]string(nil), h.Materials...)
		if h.Location != nil {
			loc := *h.Location
			out[i].Location = &loc
		}
	}
	return out
}

func cloneTemplate(t entities.PartTemplate) entities.PartTemplate {
	out := t
	out.Materials = make(map[string]float64, len(t.Materials))
	for k, v := range t.Materials {
		out.Materials[k] = v
	}
	return out
}
