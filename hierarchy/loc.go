package hierarchy

// Root names of the built-in subject trees.
const (
	Education        = "education"
	Law              = "law"
	PoliticalScience = "political-science"
	Religion         = "religion"
	History          = "history"
	Philosophy       = "philosophy"
	Psychology       = "psychology"
	Geography        = "geography"
	SocialScience    = "social-science"
	Medicine         = "medicine"
	Science          = "science"
	Technology       = "technology"
	Agriculture      = "agriculture"
	Military         = "military"
	Sport            = "sport"
	Arts             = "arts"
	Language         = "language"
)

// DefaultRelated lists the root pairs of the built-in forest which are
// considered related.
var DefaultRelated = [][2]string{
	{Education, Psychology},
	{Law, Science},
	{Religion, History},
	{Religion, Philosophy},
	{Religion, Arts},
	{Religion, Law},
	{PoliticalScience, History},
	{PoliticalScience, Philosophy},
	{PoliticalScience, Military},
	{History, Geography},
	{History, Military},
	{History, Science},
	{Psychology, Medicine},
	{Psychology, Science},
	{Geography, Science},
	{SocialScience, Science},
	{SocialScience, Technology},
	{Medicine, Science},
	{Medicine, Technology},
	{Science, Agriculture},
	{Science, Technology},
	{Science, Military},
	{Science, Sport},
	{Technology, Agriculture},
	{Technology, Military},
}

// DefaultTrees returns the built-in Library of Congress derived subject
// trees, in declaration order.
func DefaultTrees() []*Node {
	return []*Node{
		N(Education,
			N("teaching"),
		),
		N(Law,
			N("corporate-law"),
			N("court-order"),
			N("criminal-law"),
			N("civil-law"),
			N("legal-procedure"),
		),
		N(PoliticalScience,
			N("government",
				N("government-policy"),
			),
			N("activism"),
			N("political-system"),
		),
		N(Religion),
		N(History,
			N("archeology"),
			N("anthropology"),
		),
		N(Philosophy),
		N(Psychology,
			N("consciousness"),
			N("emotion"),
			N("behavior"),
			N("disorder"),
		),
		N(Geography,
			N("oceanography"),
			N("physical-geography",
				N("natural-disaster"),
				N("landform"),
				N("waterbody"),
			),
			N("environment"),
			N("cartography"),
		),
		N(SocialScience,
			N("commerce",
				N("business"),
				N("trade"),
			),
			N("transportation"),
			N("industry"),
			N("labor",
				N("management"),
				N("professions"),
				N("skills"),
			),
			N("statistics"),
			N("economics"),
			N("media"),
			N("finance",
				N("investment"),
				N("banking"),
				N("accounting"),
			),
			N("public-finance",
				N("revenue"),
			),
		),
		N(Medicine,
			N("therapeutics",
				N("diet"),
				N("prescription"),
			),
			N("nutrition"),
			N("dermatology"),
			N("dentistry"),
			N("pediatrics"),
			N("obstetrics-gynecology"),
			N("otorhinolaryngology"),
			N("ophthalmology"),
			N("internal-medicine",
				N("oncology"),
				N("neurology"),
				N("allergy"),
				N("deficiency"),
				N("endocrine"),
				N("cardiovascular"),
				N("pulmonary"),
				N("gastrointestinal"),
				N("excretory"),
				N("musculoskeletal"),
			),
			N("pathology",
				N("pathology-lab-technique"),
				N("symptoms"),
			),
			N("toxicology"),
			N("public-health"),
			N("surgery",
				N("surgical-technique"),
				N("orthopedics"),
				N("anesthesiology"),
				N("transplantation"),
			),
			N("biomedical-instrumentation"),
			N("pharmacology"),
		),
		N(Science,
			N("microbiology",
				N("bacteriology"),
				N("virology"),
				N("immunology"),
			),
			N("mathematics",
				N("coordinate-geometry"),
				N("vector-algebra"),
				N("logic"),
				N("algebra"),
				N("probability"),
				N("calculus"),
			),
			N("physics",
				N("measurement"),
				N("kinetics"),
				N("meteorology"),
				N("electromagnetics"),
				N("thermodynamics"),
				N("acoustics"),
				N("subatomic-physics"),
				N("optics"),
			),
			N("chemistry",
				N("matter-types",
					N("mixture"),
					N("element"),
					N("compound"),
					N("ion"),
				),
				N("matter-states",
					N("solid"),
					N("liquid"),
					N("gas"),
				),
				N("physicalChemistry",
					N("chemical-reactions"),
				),
				N("inorganic-chemistry"),
				N("organic-chemistry"),
			),
			N("biology",
				N("ecology"),
				N("reproduction"),
				N("genetics"),
				N("evolution"),
				N("cytology"),
			),
			N("astronomy",
				N("planets"),
				N("stars"),
			),
			N("geology",
				N("tectonics"),
				N("minerology"),
			),
			N("anatomy",
				N("body-parts"),
				N("anatomy-tissues"),
				N("anatomy-organs"),
			),
			N("botany"),
			N("zoology",
				N("vertebrates"),
				N("invertebrates"),
			),
			N("physiology"),
			N("biochemistry"),
		),
		N(Technology,
			N("electrical-engineering"),
			N("mechanical-engineering"),
			N("aeronautics"),
			N("civil-engineering",
				N("roads"),
				N("construction"),
			),
			N("information-technology"),
			N("materials"),
		),
		N(Agriculture,
			N("aquaCulture"),
			N("animal-culture",
				N("veterinary"),
				N("dairy"),
				N("meat"),
			),
			N("plant-culture",
				N("flowers"),
				N("vegetables"),
				N("crops"),
				N("soils"),
				N("fruits"),
			),
			N("forestry"),
		),
		N(Military,
			N("reconnaisance"),
			N("weaponry"),
		),
		N(Sport),
		N(Arts,
			N("performing-arts"),
			N("visual-arts"),
		),
		N(Language),
	}
}

// Default returns the built-in forest with its related root pairs applied.
func Default() *Hierarchy {
	h := New(DefaultTrees()...)
	for _, pair := range DefaultRelated {
		if err := h.Relate(pair[0], pair[1]); err != nil {
			// Only reachable if DefaultRelated names an undeclared root.
			panic(err)
		}
	}
	return h
}
