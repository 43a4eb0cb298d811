package shopping

// ExcludeReasonAllergy 因過敏原被排除時的標籤
const ExcludeReasonAllergy = "Allergy"

// AllergenSet 使用者宣告的過敏原集合
type AllergenSet map[string]struct{}

// NewAllergenSet 由標籤建立集合，忽略空字串
func NewAllergenSet(tags ...string) AllergenSet {
	set := make(AllergenSet, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		set[tag] = struct{}{}
	}
	return set
}

// Has 判斷集合是否包含指定過敏原
func (s AllergenSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Classification 過敏原判定結果
type Classification struct {
	IsExcluded bool
	Reason     string
}

// ClassifyAllergens 以集合交集判定商品是否需排除。
// 僅做完全比對，不處理別名或過敏原階層。
func ClassifyAllergens(productAllergens []string, user AllergenSet) Classification {
	if len(user) == 0 {
		return Classification{}
	}
	for _, tag := range productAllergens {
		if user.Has(tag) {
			return Classification{IsExcluded: true, Reason: ExcludeReasonAllergy}
		}
	}
	return Classification{}
}
