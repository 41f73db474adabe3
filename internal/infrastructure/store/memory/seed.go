package memory

import (
	"github.com/hiroba-develop/GrantsDB-Demo/internal/domain/customer"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/domain/relation"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/domain/subsidy"
)

// The seed dataset is the demo tenant's fixture: four customer companies,
// ten municipal subsidy programmes, and the advisor's match records between
// them.  Deadlines are meaningful relative to the configured reference date
// (2025-08-20): some programmes are already closed, some close within days,
// and subsidy 7 runs until its budget is exhausted.

func seedCustomers() []customer.Customer {
	return []customer.Customer{
		{ID: 1, Name: "株式会社A", Industry: "製造業", Scale: "従業員50名", Location: "東京都", Issues: "生産性向上と設備投資"},
		{ID: 2, Name: "株式会社B", Industry: "IT", Scale: "従業員20名", Location: "大阪府", Issues: "新規事業開発と人材確保"},
		{ID: 3, Name: "株式会社C", Industry: "小売業", Scale: "従業員100名", Location: "福岡県", Issues: "DX推進とECサイト強化"},
		{ID: 4, Name: "株式会社D", Industry: "建設業", Scale: "従業員35名", Location: "北海道", Issues: "後継者不足と技術継承"},
	}
}

func seedSubsidies() []subsidy.Subsidy {
	return []subsidy.Subsidy{
		{
			ID:         1,
			Name:       "【北海道根室市】ものづくり補助金",
			Agency:     "根室市",
			Prefecture: "北海道",
			Amount:     "最大50万円",
			Rate:       "1/2以内",
			Target:     "根室市内に事業所を持つ中小企業者",
			Overview:   "新製品の開発や販路の開拓、既存製品の改良などを行う市内事業者を支援し、地域産業の振興及び雇用の拡大を図る補助金です。",
			StartDate:  "2025-04-01",
			Deadline:   "2026-01-30",
			URL:        "https://www.city.nemuro.hokkaido.jp/lifeinfo/kakuka/suisankeizaibu/shoukoukankou/gyoumuannai/6/1294.html",
			Industries: []string{"製造業"},
			Purposes:   []string{"製品開発", "販路開拓"},
			Conditions: []string{"市内に事業所、店舗を構える中小企業者であること", "市税を滞納していないこと", "新製品開発、市場開拓、既存製品の改良のいずれかに関する事業であること"},
			Documents:  []string{"交付申請書", "事業計画書", "収支予算書", "市税の納税証明書"},
		},
		{
			ID:         2,
			Name:       "【東京都北区】IT・IoT導入支援事業補助金",
			Agency:     "東京都北区",
			Prefecture: "東京都",
			Amount:     "最大100万円",
			Rate:       "1/2以内",
			Target:     "北区内に主たる事業所を有する中小企業者",
			Overview:   "区内中小企業が、生産性向上や経営基盤強化等を図ることを目的として、IT・IoT等のツールを導入する経費の一部を補助します。",
			StartDate:  "2025-04-01",
			Deadline:   "2026-02-27",
			URL:        "https://www.city.kita.lg.jp/business/industry/1011356/1011509/1011519.html",
			Industries: []string{"全業種"},
			Purposes:   []string{"IT化", "生産性向上", "DX"},
			Conditions: []string{"北区内に主たる事業所を有し、引き続き事業を営む意思があること", "法人都民税または特別区民税・都民税を滞納していないこと", "IT・IoT相談員との事前相談が必須"},
			Documents:  []string{"交付申請書", "企業概要", "導入システムの概要", "納税証明書", "経費の支出明細書"},
		},
		{
			ID:         3,
			Name:       "【神奈川県横浜市】中小企業の設備投資（簡易手続き）",
			Agency:     "横浜市",
			Prefecture: "神奈川県",
			Amount:     "最大100万円",
			Rate:       "3/4以内",
			Target:     "横浜市内に事業所を有する中小企業",
			Overview:   "脱炭素化の取組（省エネ・再エネ設備の導入）と併せて、付加価値額（給与総額）を増加させる計画の中小企業を支援します。",
			StartDate:  "2025-07-01",
			Deadline:   "2025-10-31",
			URL:        "https://www.city.yokohama.lg.jp/business/kigyoshien/keieishien/capex/carbon-kani.html",
			Industries: []string{"全業種"},
			Purposes:   []string{"設備投資", "脱炭素", "省エネ"},
			Conditions: []string{"横浜市内に事業所を有すること", "脱炭素化と付加価値額増加の両方の目標を達成する計画であること"},
			Documents:  []string{"申請書", "事業計画書", "見積書"},
		},
		{
			ID:         4,
			Name:       "【愛知県名古屋市】子ども・子育て支援センター補助金",
			Agency:     "名古屋市",
			Prefecture: "愛知県",
			Amount:     "事業費による",
			Rate:       "事業費による",
			Target:     "名古屋市内において地域子育て支援拠点を運営する法人",
			Overview:   "地域における子育て支援機能の充実を図るため、子ども・子育て支援センターの運営にかかる経費を補助します。",
			StartDate:  "2025-04-01",
			Deadline:   "2025-09-30",
			URL:        "https://www.city.nagoya.jp/kodomoseishonen/page/0000163327.html",
			Industries: []string{"福祉", "教育"},
			Purposes:   []string{"子育て支援", "地域貢献"},
			Conditions: []string{"市内で地域子育て支援拠点を運営する法人であること", "市の定める基準を満たす事業内容であること"},
			Documents:  []string{"申請書", "事業計画書", "収支予算書", "法人登記事項証明書"},
		},
		{
			ID:         5,
			Name:       "【大阪府】新法民泊施設の環境整備促進事業補助金",
			Agency:     "大阪府",
			Prefecture: "大阪府",
			Amount:     "最大40万円",
			Rate:       "1/2以内",
			Target:     "大阪府内の新法民泊施設の届出事業者及び届出予定事業者",
			Overview:   "府内の新法民泊施設における、来阪旅行者の利便性や快適性を向上させるための受入対応強化の取組みを支援します。",
			StartDate:  "2025-07-07",
			Deadline:   "2026-02-27",
			URL:        "https://www.pref.osaka.lg.jp/o070070/toshimiryoku/syukuhaku_hojyo/r7shinpou_hojyo.html",
			Industries: []string{"宿泊業", "観光業"},
			Purposes:   []string{"インバウンド", "環境整備"},
			Conditions: []string{"インバウンド受入対応、宿泊客の利便性・満足度向上、災害時対応等に係る事業であること"},
			Documents:  []string{"交付申請書", "事業計画書", "収支予算書"},
		},
		{
			ID:         6,
			Name:       "【京都府宇治市】宇治NEXT ACTION 補助金",
			Agency:     "宇治市",
			Prefecture: "京都府",
			Amount:     "最大50万円",
			Rate:       "2/3",
			Target:     "宇治市内に事業所を有する中小企業、小規模事業者等",
			Overview:   "新たな需要の獲得や、働き方改革・生産性向上など、多様な社会経済活動に対応するための前向きなアクション（取組）を総合的に支援します。",
			StartDate:  "2025-06-23",
			Deadline:   "2025-10-31",
			URL:        "https://www.city.uji.kyoto.jp/site/ujinext/91170.html",
			Industries: []string{"全業種"},
			Purposes:   []string{"経営改善", "生産性向上", "働き方改革"},
			Conditions: []string{"市内に事業所を有すること", "新たな取り組みに関する具体的な計画があること"},
			Documents:  []string{"申請書", "事業計画書", "収支予算書"},
		},
		{
			ID:         7,
			Name:       "【兵庫県姫路市】中小企業チャレンジ応援事業補助金",
			Agency:     "姫路市",
			Prefecture: "兵庫県",
			Amount:     "最大100万円",
			Rate:       "1/2",
			Target:     "姫路市内に主たる事業所を有する中小企業者",
			Overview:   "新製品・新技術・新サービスの開発や新たな販路開拓、DXの推進など、新たな事業展開に挑戦する中小企業を支援します。",
			StartDate:  "2025-04-21",
			Deadline:   subsidy.BudgetCapSentinel,
			URL:        "https://www.city.himeji.lg.jp/sangyo/0000009322.html",
			Industries: []string{"全業種"},
			Purposes:   []string{"新事業展開", "DX", "販路開拓", "製品開発"},
			Conditions: []string{"市内に主たる事業所があること", "新たな事業展開への具体的な計画があること"},
			Documents:  []string{"申請書", "事業計画書", "市税の完納証明書"},
		},
		{
			ID:         8,
			Name:       "【広島県広島市】地域防犯カメラ設置補助制度",
			Agency:     "広島市",
			Prefecture: "広島県",
			Amount:     "1台につき最大30万円",
			Rate:       "3/4以内",
			Target:     "町内会・自治会、連合町内会、防犯組合等の地域団体",
			Overview:   "地域の自主的な防犯活動を促進し、安全で安心なまちづくりを推進するため、地域団体が設置する防犯カメラの経費の一部を補助します。",
			StartDate:  "2025-04-01",
			Deadline:   "2025-06-30",
			URL:        "https://www.city.hiroshima.lg.jp/living/1035962/1021171/1025679/1020493.html",
			Industries: []string{"地域団体"},
			Purposes:   []string{"防犯", "安全対策", "地域貢献"},
			Conditions: []string{"道路、公園等の公共空間を撮影対象とすること"},
			Documents:  []string{"事前協議申請書", "補助金交付申請書", "実績報告書"},
		},
		{
			ID:         9,
			Name:       "【福岡県福岡市】福岡市ステップアップ助成事業",
			Agency:     "福岡市",
			Prefecture: "福岡県",
			Amount:     "最大100万円",
			Rate:       "対象経費による",
			Target:     "福岡市内に本社を置く創業10年未満の中小企業者等",
			Overview:   "成長性の高いビジネスプランを持つ創業者に対して、成長のための課題改善に要する資金として補助金を交付する事業です。",
			StartDate:  "2025-07-16",
			Deadline:   "2025-09-11",
			URL:        "https://www.city.fukuoka.lg.jp/keizai/r-support/sougyou/012_2_2.html",
			Industries: []string{"全業種"},
			Purposes:   []string{"創業支援"},
			Conditions: []string{"福岡市内に本社を置く創業10年未満の中小企業者", "成長性の高いビジネスプランを持つこと"},
			Documents:  []string{"申請書", "事業計画書", "決算書"},
		},
		{
			ID:         10,
			Name:       "【沖縄県那覇市】新商品開発支援事業補助金",
			Agency:     "那覇市",
			Prefecture: "沖縄県",
			Amount:     "最大50万円",
			Rate:       "2/3以内",
			Target:     "那覇市内に主たる事業所を有する中小企業者等",
			Overview:   "那覇市の地域資源を活用した新商品や新サービスの開発、改良に係る経費の一部を補助します。",
			StartDate:  "2025-07-01",
			Deadline:   "2025-09-10",
			URL:        "https://www.city.naha.okinawa.jp/business/touroku/nyuusatukoukoku/r7/R7shinshohinhojyo.html",
			Industries: []string{"全業種"},
			Purposes:   []string{"製品開発", "地域資源活用"},
			Conditions: []string{"市内に主たる事業所があること", "地域資源を活用した開発であること"},
			Documents:  []string{"申請書", "事業計画書", "市税の納税証明書"},
		},
	}
}

func seedRelations() []relation.Relation {
	return []relation.Relation{
		{CustomerID: 1, SubsidyID: 2, Status: relation.StatusProposed, MatchRate: 85},
		{CustomerID: 1, SubsidyID: 3, Status: relation.StatusNotProposed, MatchRate: 70},
		{CustomerID: 2, SubsidyID: 5, Status: relation.StatusPreparing, MatchRate: 95},
		{CustomerID: 2, SubsidyID: 8, Status: relation.StatusNotProposed, MatchRate: 65},
		{CustomerID: 3, SubsidyID: 9, Status: relation.StatusApplied, MatchRate: 90},
		{CustomerID: 4, SubsidyID: 1, Status: relation.StatusProposed, MatchRate: 90},
	}
}
