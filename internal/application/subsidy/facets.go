package subsidy

import (
	"context"
	"sort"
)

// Facets are the drill-down values the search UI offers.  Industries and
// purposes keep first-appearance order over the subsidy table; prefectures
// follow the canonical north-to-south ordering.
type Facets struct {
	Industries  []string `json:"industries"`
	Purposes    []string `json:"purposes"`
	Prefectures []string `json:"prefectures"`
}

// prefectureOrder is the standard JIS X 0401 prefecture sequence.
var prefectureOrder = []string{
	"北海道", "青森県", "岩手県", "宮城県", "秋田県", "山形県", "福島県",
	"茨城県", "栃木県", "群馬県", "埼玉県", "千葉県", "東京都", "神奈川県",
	"新潟県", "富山県", "石川県", "福井県", "山梨県", "長野県", "岐阜県",
	"静岡県", "愛知県", "三重県", "滋賀県", "京都府", "大阪府", "兵庫県",
	"奈良県", "和歌山県", "鳥取県", "島根県", "岡山県", "広島県", "山口県",
	"徳島県", "香川県", "愛媛県", "高知県", "福岡県", "佐賀県", "長崎県",
	"熊本県", "大分県", "宮崎県", "鹿児島県", "沖縄県",
}

var prefectureRank = func() map[string]int {
	m := make(map[string]int, len(prefectureOrder))
	for i, p := range prefectureOrder {
		m[p] = i
	}
	return m
}()

// Facets collects the distinct filter values present in the subsidy table.
func (s *Service) Facets(ctx context.Context) Facets {
	var f Facets
	seenIndustry := map[string]bool{}
	seenPurpose := map[string]bool{}
	seenPrefecture := map[string]bool{}

	for _, sub := range s.repo.List(ctx) {
		for _, tag := range sub.Industries {
			if !seenIndustry[tag] {
				seenIndustry[tag] = true
				f.Industries = append(f.Industries, tag)
			}
		}
		for _, tag := range sub.Purposes {
			if !seenPurpose[tag] {
				seenPurpose[tag] = true
				f.Purposes = append(f.Purposes, tag)
			}
		}
		if sub.Prefecture != "" && !seenPrefecture[sub.Prefecture] {
			seenPrefecture[sub.Prefecture] = true
			f.Prefectures = append(f.Prefectures, sub.Prefecture)
		}
	}

	sort.SliceStable(f.Prefectures, func(i, j int) bool {
		ri, iOK := prefectureRank[f.Prefectures[i]]
		rj, jOK := prefectureRank[f.Prefectures[j]]
		// Unknown values trail the canonical list.
		if iOK != jOK {
			return iOK
		}
		if !iOK {
			return false
		}
		return ri < rj
	})

	return f
}
