package generator

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/reefatlas/reefatlas-cli/internal/catalog"
)

// RunZones populates each target region with its diving zones. Reads
// target_regions.json, writes target_zones.json with every zone produced or
// kept, one work unit per zone, for the areas stage to consume.
func (r *Runner) RunZones(ctx context.Context, mode catalog.Mode) error {
	log := zap.L()

	units, err := catalog.LoadWorkUnits(r.stagePath(RegionsFile))
	if err != nil {
		return err
	}
	tree, err := r.loadTree(mode)
	if err != nil {
		return err
	}

	var produced []catalog.WorkUnit
	for _, unit := range units {
		if unit.Region == "" {
			log.Warn("skipping unit with empty region")
			continue
		}
		log.Info("processing region", zap.String("unit", unit.String()))

		region := tree.Region(unit.Region)
		created := false
		if region == nil {
			region = &catalog.Node{
				ID:   catalog.NewID(catalog.KindRegion, ""),
				Name: unit.Region,
				Kind: catalog.KindRegion,
			}
			created = true
		}

		if skip := catalog.ResolveChildren(region, mode, nil); skip {
			log.Info("region already populated, keeping",
				zap.String("region", unit.Region),
				zap.Int("zones", len(region.Children)),
			)
			produced = appendZoneUnits(produced, unit.Region, region)
			continue
		}
		mutated := mode == catalog.ModeOverwrite && !created

		if err := r.pace(ctx); err != nil {
			return err
		}
		records, err := generateRecords[ZoneRecord](ctx, r.seq, zonePrompt(unit.Region))
		if err != nil {
			if eris.Is(err, ErrExhausted) {
				log.Warn("no zones generated, skipping region",
					zap.String("region", unit.Region),
				)
				if mutated {
					if serr := tree.Save(r.treeFile); serr != nil {
						return serr
					}
				}
				continue
			}
			return err
		}

		for _, rec := range records {
			if region.HasChildNamed(rec.Name) {
				continue
			}
			region.Children = append(region.Children, &catalog.Node{
				ID:          catalog.NewID(catalog.KindZone, rec.Name),
				Name:        rec.Name,
				Kind:        catalog.KindZone,
				Description: rec.Description,
			})
		}
		if created {
			tree.Regions = append(tree.Regions, region)
		}

		if err := tree.Save(r.treeFile); err != nil {
			return err
		}
		log.Info("region populated",
			zap.String("region", unit.Region),
			zap.Int("zones", len(region.Children)),
		)
		produced = appendZoneUnits(produced, unit.Region, region)
	}

	return catalog.SaveWorkUnits(r.stagePath(ZonesFile), produced)
}

func appendZoneUnits(units []catalog.WorkUnit, region string, node *catalog.Node) []catalog.WorkUnit {
	for _, c := range node.Children {
		units = append(units, catalog.WorkUnit{Region: region, Zone: c.Name})
	}
	return units
}
