package engine

import (
	"testing"
	"time"

	"github.com/osse101/FairyGrove_Go/internal/domain"
)

func fullGrid(e *Engine) *domain.GameDocument {
	doc := e.NewGame(baseTime.Add(-2 * time.Hour))
	doc.UnlockedSlots = domain.MaxGridSize
	doc.Buildings = []domain.Building{{DefID: "cozy_cottage"}, {DefID: "mushroom_hut"}}
	families := []string{domain.FamilyFairyCat, domain.FamilyBabyDragon, domain.FamilyMiniUnicorn, domain.FamilyForestFox, domain.FamilyMushroomSprite}
	for i := range doc.Grid {
		if doc.Grid[i] == nil {
			place(doc, i, e.ids.CreatureID(baseTime), families[i%len(families)], 1+i%domain.MaxLevel, baseTime.Add(-2*time.Hour))
		}
	}
	return doc
}

func BenchmarkCollectAll(b *testing.B) {
	e := newTestEngine()
	doc := fullGrid(e)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := e.CollectAll(doc, baseTime); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkOfflineBonus(b *testing.B) {
	e := newTestEngine()
	doc := fullGrid(e)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.OfflineBonus(doc, baseTime)
	}
}

func BenchmarkMerge(b *testing.B) {
	e := newTestEngine()
	doc := emptyDoc()
	place(doc, 0, "a", domain.FamilyFairyCat, 1, baseTime)
	place(doc, 1, "b", domain.FamilyFairyCat, 1, baseTime)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := e.Merge(doc, "a", "b", baseTime); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkClone(b *testing.B) {
	doc := fullGrid(newTestEngine())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = doc.Clone()
	}
}
