package who

// Embedded ICD-11 reference data for sandbox operation. The entries mirror
// the TM2 and MMS records the crosswalk dataset maps into, so title lookups
// and sandbox searches work offline.
var tm2Reference = []Entity{
	{
		ID:            "TM2-AY134",
		Title:         "Acid dyspepsia (TM2)",
		Definition:    "Traditional medicine disorder characterized by sour indigestion",
		Linearization: "tm2",
		Parent:        "TM2-AY",
		Synonyms:      []string{"Amlapitta", "Sour indigestion"},
	},
	{
		ID:            "TM2-AY999",
		Title:         "Vata imbalance (TM2)",
		Definition:    "Traditional medicine disorder of vata dosha",
		Linearization: "tm2",
		Parent:        "TM2-AY",
		Synonyms:      []string{"Vata Vyadhi", "Vata disorder"},
	},
	{
		ID:            "TM2-AY201",
		Title:         "Diabetes mellitus (TM2)",
		Definition:    "Traditional medicine disorder characterized by excessive urination and sweet urine",
		Linearization: "tm2",
		Parent:        "TM2-AY",
		Synonyms:      []string{"Prameha", "Madhumeha", "Diabetes", "Sweet urine disease"},
	},
	{
		ID:            "TM2-AY202",
		Title:         "Type 1 diabetes (TM2)",
		Definition:    "Traditional medicine classification of juvenile diabetes",
		Linearization: "tm2",
		Parent:        "TM2-AY201",
		Synonyms:      []string{"Juvenile diabetes", "Insulin-dependent diabetes", "Prameha type 1"},
	},
	{
		ID:            "TM2-AY203",
		Title:         "Type 2 diabetes (TM2)",
		Definition:    "Traditional medicine classification of adult-onset diabetes",
		Linearization: "tm2",
		Parent:        "TM2-AY201",
		Synonyms:      []string{"Adult-onset diabetes", "Non-insulin dependent diabetes", "Prameha type 2"},
	},
	{
		ID:            "TM2-AY204",
		Title:         "Gestational diabetes (TM2)",
		Definition:    "Traditional medicine classification of pregnancy-related diabetes",
		Linearization: "tm2",
		Parent:        "TM2-AY201",
		Synonyms:      []string{"Pregnancy diabetes", "Gestational prameha", "Maternal diabetes"},
	},
}

var biomedicineReference = []Entity{
	{
		ID:            "K29.7",
		Title:         "Gastritis, unspecified",
		Definition:    "Inflammation of the stomach lining",
		Linearization: "mms",
		Parent:        "K29",
		Synonyms:      []string{"Gastritis", "Stomach inflammation"},
	},
	{
		ID:            "5A11",
		Title:         "Type 2 diabetes mellitus",
		Definition:    "Diabetes mellitus due to insulin resistance",
		Linearization: "mms",
		Parent:        "5A1",
		Synonyms:      []string{"Diabetes", "Prameha"},
	},
}
