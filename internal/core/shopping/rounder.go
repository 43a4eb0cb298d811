package shopping

import "math"

// roundingULPs 只吸收幾個 ULP 內的浮點累加誤差，避免 300.00000000000006 進位成 301；
// 更大的差距一律視為實際需求並無條件進位
const roundingULPs = 4

// Rounding 包裝進位結果，PackagesNeeded 為 nil 表示商品沒有包裝規格
type Rounding struct {
	RoundedGrams   float64
	PackagesNeeded *int
}

// RoundToPackages 將總克數無條件進位到整包；沒有包裝規格時進位到整克。
func RoundToPackages(totalGrams float64, packageSize *float64) Rounding {
	if packageSize != nil && *packageSize > 0 {
		size := *packageSize
		packages := int(ceilTolerant(totalGrams / size))
		return Rounding{
			RoundedGrams:   float64(packages) * size,
			PackagesNeeded: &packages,
		}
	}
	return Rounding{RoundedGrams: ceilTolerant(totalGrams)}
}

func ceilTolerant(v float64) float64 {
	if v <= 0 {
		return 0
	}
	nearest := math.Round(v)
	if nearest > 0 && math.Abs(v-nearest) <= roundingULPs*ulp(nearest) {
		return nearest
	}
	return math.Ceil(v)
}

// ulp 與下一個可表示 float64 的距離
func ulp(x float64) float64 {
	return math.Nextafter(x, math.Inf(1)) - x
}
