package shopping

import (
	"strings"

	"meal-planner/internal/pkg/common"
)

type unitKind string

const (
	unitKindMass   unitKind = "mass"
	unitKindVolume unitKind = "volume"
	unitKindPiece  unitKind = "piece"
)

type unitDef struct {
	kind      unitKind
	toGrams   float64
	canonical Unit
}

// 體積單位以 1 g/ml 換算
var unitTable = map[string]unitDef{
	// mass
	"mg": {kind: unitKindMass, toGrams: 0.001, canonical: UnitGram},
	"g":  {kind: unitKindMass, toGrams: 1, canonical: UnitGram},
	"г":  {kind: unitKindMass, toGrams: 1, canonical: UnitGram},
	"kg": {kind: unitKindMass, toGrams: 1000, canonical: UnitGram},
	"кг": {kind: unitKindMass, toGrams: 1000, canonical: UnitGram},

	// volume
	"ml":   {kind: unitKindVolume, toGrams: 1, canonical: UnitMilliliter},
	"мл":   {kind: unitKindVolume, toGrams: 1, canonical: UnitMilliliter},
	"l":    {kind: unitKindVolume, toGrams: 1000, canonical: UnitMilliliter},
	"л":    {kind: unitKindVolume, toGrams: 1000, canonical: UnitMilliliter},
	"tsp":  {kind: unitKindVolume, toGrams: 5, canonical: UnitMilliliter},
	"tbsp": {kind: unitKindVolume, toGrams: 15, canonical: UnitMilliliter},
	"cup":  {kind: unitKindVolume, toGrams: 240, canonical: UnitMilliliter},

	// pieces
	"pcs": {kind: unitKindPiece, toGrams: 1, canonical: UnitPiece},
	"шт":  {kind: unitKindPiece, toGrams: 1, canonical: UnitPiece},
}

func resolveUnit(unit Unit) (unitDef, bool) {
	u := strings.ToLower(strings.TrimSpace(string(unit)))
	u = strings.TrimSuffix(u, ".")
	def, ok := unitTable[u]
	return def, ok
}

// CanonicalUnit 回傳單位所屬的基準單位（g、ml 或 pcs）
func CanonicalUnit(unit Unit) (Unit, bool) {
	def, ok := resolveUnit(unit)
	if !ok {
		return "", false
	}
	return def.canonical, true
}

// NormalizeToGrams 將食譜宣告的數量與單位換算為以克為基準的數量。
// 以件計的食材在缺少每件克數時，直接以件數作為基準數量。
func NormalizeToGrams(amount float64, unit Unit, gramsPerPiece *float64) (float64, error) {
	if amount <= 0 {
		return 0, common.NewValidationErrorf("ingredient amount must be positive, got %g", amount)
	}
	def, ok := resolveUnit(unit)
	if !ok {
		return 0, common.NewValidationErrorf("unsupported unit %q", unit)
	}

	if def.kind == unitKindPiece {
		if gramsPerPiece != nil && *gramsPerPiece > 0 {
			return amount * *gramsPerPiece, nil
		}
		return amount, nil
	}
	return amount * def.toGrams, nil
}
