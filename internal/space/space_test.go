package space

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/sketchpad/internal/entity"
	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/typeid"
)

func line(x0, y0, x1, y1 float64) entity.Line {
	return entity.NewLine(typeid.EntityID{}, geom.V(x0, y0), geom.V(x1, y1), 10, "")
}

func withSpace(t *testing.T) *Store {
	t.Helper()
	ss := NewStore()
	ss.CreateSpace(typeid.NewSpaceID())
	require.NotNil(t, ss.Current())
	return ss
}

func TestMutationsWithoutSpaceAreNoOps(t *testing.T) {
	ss := NewStore()
	l := line(0, 0, 1, 1)

	ss.AddEntity(l)
	ss.RemoveEntity(l)
	ss.BulkTransformEntity(func(cur []entity.Entity) []entity.Entity {
		t.Fatal("transaction must not run without a space")
		return nil
	})

	assert.Nil(t, ss.Current())
	assert.Nil(t, ss.EntityAtPosition(geom.V(0, 0)))
	assert.Empty(t, ss.EntitiesInRect(geom.FromXYWH(-10, -10, 20, 20)))
}

func TestCreateSpaceDiscardsPrevious(t *testing.T) {
	ss := withSpace(t)
	ss.AddEntity(line(0, 0, 10, 10))
	require.Equal(t, 1, ss.Current().Len())

	id := typeid.NewSpaceID()
	ss.CreateSpace(id)
	assert.Equal(t, id, ss.Current().ID())
	assert.Equal(t, 0, ss.Current().Len())
}

func TestAddEntityOverwritesByID(t *testing.T) {
	ss := withSpace(t)
	a, b := line(0, 0, 10, 0), line(0, 50, 10, 50)
	ss.AddEntity(a)
	ss.AddEntity(b)
	moved := a.WithPositionOffset(geom.V(5, 5))
	ss.AddEntity(moved)

	ents := ss.Current().Entities()
	require.Len(t, ents, 2)
	assert.Equal(t, moved, ents[0], "keeps insertion slot")
	assert.Equal(t, b, ents[1])
}

func TestRemoveEntityTwice(t *testing.T) {
	ss := withSpace(t)
	a := line(0, 0, 10, 0)
	ss.AddEntity(a)

	ss.RemoveEntity(a)
	ss.RemoveEntity(a)

	assert.Equal(t, 0, ss.Current().Len())
	_, ok := ss.Current().Get(a.ID())
	assert.False(t, ok)
}

func TestBulkTransformIsAtomic(t *testing.T) {
	ss := withSpace(t)
	a, b, c := line(0, 0, 10, 0), line(0, 100, 10, 100), line(0, 200, 10, 200)
	ss.AddEntity(a)
	ss.AddEntity(b)
	ss.AddEntity(c)

	offset := geom.V(3, 4)
	var observed []*Space
	ss.Subscribe(func(cur, _ *Space) { observed = append(observed, cur) })
	before := ss.Current()

	ss.BulkTransformEntity(func(cur []entity.Entity) []entity.Entity {
		var out []entity.Entity
		for _, e := range cur {
			if e.ID() == a.ID() || e.ID() == b.ID() {
				out = append(out, e.WithPositionOffset(offset))
			}
		}
		return out
	})

	require.Len(t, observed, 1, "one state change per transaction")
	after := observed[0]
	gotA, _ := after.Get(a.ID())
	gotB, _ := after.Get(b.ID())
	gotC, _ := after.Get(c.ID())
	assert.Equal(t, a.Bounds().Translate(offset), gotA.Bounds())
	assert.Equal(t, b.Bounds().Translate(offset), gotB.Bounds())
	assert.Equal(t, c, gotC)

	oldA, _ := before.Get(a.ID())
	assert.Equal(t, a, oldA, "earlier snapshot is unchanged")
}

func TestBulkTransformIgnoresUnknownIDs(t *testing.T) {
	ss := withSpace(t)
	a := line(0, 0, 10, 0)
	ss.AddEntity(a)

	stranger := line(500, 500, 600, 600)
	ss.BulkTransformEntity(func([]entity.Entity) []entity.Entity {
		return []entity.Entity{stranger}
	})

	assert.Equal(t, 1, ss.Current().Len())
	_, ok := ss.Current().Get(stranger.ID())
	assert.False(t, ok)
}

func TestEntityAtPosition(t *testing.T) {
	ss := withSpace(t)
	l := line(0, 0, 100, 0)
	ss.AddEntity(l)

	hit := ss.EntityAtPosition(geom.V(50, 0))
	require.NotNil(t, hit)
	assert.Equal(t, l.ID(), hit.ID())
	assert.Nil(t, ss.EntityAtPosition(geom.V(50, 500)))
}

func TestEntityAtPositionUsesProbeBox(t *testing.T) {
	ss := withSpace(t)
	l := line(0, 0, 100, 0)
	ss.AddEntity(l)

	assert.NotNil(t, ss.EntityAtPosition(geom.V(50, 25)), "inside probe reach")
	assert.Nil(t, ss.EntityAtPosition(geom.V(50, 30)), "probe edge only touches bbox")
}

func TestEntityAtPositionFirstInsertedWins(t *testing.T) {
	ss := withSpace(t)
	first, second := line(0, 0, 100, 0), line(0, 2, 100, 2)
	ss.AddEntity(first)
	ss.AddEntity(second)

	assert.Equal(t, first.ID(), ss.EntityAtPosition(geom.V(50, 1)).ID())
}

func TestEntitiesInRect(t *testing.T) {
	ss := withSpace(t)
	a, b, c := line(0, 0, 10, 0), line(100, 100, 110, 100), line(500, 500, 510, 500)
	ss.AddEntity(a)
	ss.AddEntity(b)
	ss.AddEntity(c)

	got := ss.EntitiesInRect(geom.FromXYWH(-20, -20, 150, 150))
	require.Len(t, got, 2)
	assert.Equal(t, a.ID(), got[0].ID())
	assert.Equal(t, b.ID(), got[1].ID())
}
