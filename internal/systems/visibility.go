package systems

import (
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/dungeonsight/internal/entity"
	"github.com/samdwyer/dungeonsight/internal/fov"
	"github.com/samdwyer/dungeonsight/internal/logger"
	"github.com/samdwyer/dungeonsight/internal/world"
)

// Visibility recomputes viewsheds and reveals what they cover.
type Visibility struct {
	Map      *world.GridMap
	Entities *entity.Store
}

// NewVisibility creates a visibility system over the given map and entities.
func NewVisibility(m *world.GridMap, store *entity.Store) *Visibility {
	return &Visibility{Map: m, Entities: store}
}

// Run rebuilds the viewshed of every entity that has one and a position.
// It returns the total number of visible tiles across all viewsheds.
func (v *Visibility) Run() int {
	total := 0
	for _, id := range v.Entities.WithViewshed() {
		total += v.RunFor(id)
	}
	return total
}

// RunFor rebuilds a single entity's viewshed from scratch and reveals every
// visible tile on the map. Entities missing a position or viewshed are
// skipped and report 0.
func (v *Visibility) RunFor(id entity.ID) int {
	pos, ok := v.Entities.Position(id)
	if !ok {
		return 0
	}
	vs, ok := v.Entities.Viewshed(id)
	if !ok {
		return 0
	}

	vs.Visible = fov.Compute(v.Map, pos.Point(), vs.Range)
	vs.Visible.Each(func(p world.Point) {
		v.Map.Reveal(p.X, p.Y)
	})

	logger.Log.WithFields(logrus.Fields{
		"component":     "visibility",
		"entity":        id,
		"origin":        pos.Point(),
		"radius":        vs.Range,
		"visible_tiles": vs.Visible.Size(),
	}).Debug("Viewshed recomputed.")

	return vs.Visible.Size()
}
