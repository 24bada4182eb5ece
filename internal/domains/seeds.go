package domains

// Seed domain ids.
const (
	SeedPolicy       = "policy"
	SeedCarbonCredit = "carbon_credit"
	SeedMarket       = "market"
	SeedTechnology   = "technology"
	SeedMRV          = "mrv"
)

// Seeds returns the built-in carbon-market roster. The keyword sets mix
// Korean and English terms; matching is substring-based downstream, so
// inflected and compound forms still hit.
func Seeds() []Domain {
	return []Domain{
		{
			ID:          SeedPolicy,
			DisplayName: "정책/법규 전문가",
			Description: "국제 기후변화 협약 및 국내 탄소중립 정책/법규 전문가",
			Keywords: []string{
				"UNFCCC", "파리협정", "NDC", "국가결정기여", "탄소중립",
				"기후변화", "정책", "법규", "협약", "COP", "CMA",
				"탄소중립기본법", "2050", "넷제로", "Net-Zero", "규제",
				"법률", "의무", "목표", "이행", "RE100", "SBTi", "TCFD",
				"ESG", "CBAM", "탄소국경조정", "Article 6", "시장메커니즘",
				"온실가스", "감축", "적응", "기후재원", "녹색분류체계",
				"K-Taxonomy", "녹색금융", "지속가능", "2030 NDC",
			},
		},
		{
			ID:          SeedCarbonCredit,
			DisplayName: "탄소배출권 전문가",
			Description: "탄소배출권 할당, 거래, 상쇄 메커니즘 전문가",
			Keywords: []string{
				"KAU", "KCU", "KOC", "배출권", "크레딧", "할당",
				"상쇄", "거래", "K-ETS", "배출권거래제", "외부사업",
				"방법론", "인증", "VCS", "Gold Standard", "CDM",
				"자발적", "의무적", "탄소크레딧", "오프셋", "CER",
				"ITMO", "CORSIA", "ACR", "이월", "차입", "정산",
				"할당대상업체", "배출권등록부", "상쇄제도", "감축실적",
			},
		},
		{
			ID:          SeedMarket,
			DisplayName: "시장/거래 전문가",
			Description: "글로벌 탄소시장 동향 및 거래 전략 전문가",
			Keywords: []string{
				"EU ETS", "EUA", "가격", "시장", "거래", "시세",
				"동향", "전망", "투자", "리스크", "헤지", "선물",
				"옵션", "금융", "시장가", "경매", "유동성", "거래량",
				"CBAM", "탄소국경조정", "연계", "가격예측", "스왑",
				"파생상품", "탄소금융", "펀드", "ETF", "차익거래",
				"변동성", "상관관계", "베이시스", "스프레드",
			},
		},
		{
			ID:          SeedTechnology,
			DisplayName: "감축기술 전문가",
			Description: "탄소 감축 및 제거 기술 전문가",
			Keywords: []string{
				"CCUS", "CCS", "CCU", "탄소포집", "수소", "그린수소",
				"블루수소", "재생에너지", "태양광", "풍력", "ESS",
				"배터리", "전기화", "효율", "감축", "기술", "설비",
				"DAC", "BECCS", "원자력", "SMR", "연료전지",
				"해상풍력", "수전해", "암모니아", "e-fuel",
				"TRL", "상용화", "경제성", "LCOE", "LCOH",
			},
		},
		{
			ID:          SeedMRV,
			DisplayName: "MRV/검증 전문가",
			Description: "온실가스 측정, 보고, 검증(MRV) 전문가",
			Keywords: []string{
				"Scope", "Scope1", "Scope2", "Scope3", "MRV",
				"측정", "보고", "검증", "산정", "배출량", "인벤토리",
				"GHG Protocol", "ISO 14064", "탄소발자국", "LCA",
				"전과정평가", "배출계수", "활동자료", "모니터링",
				"검증원", "인증", "심사", "불확도", "품질관리",
				"CDP", "SBTi", "PCAF", "Scope3 산정",
			},
		},
	}
}
