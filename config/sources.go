package config

// DefaultSources returns the built-in registry. Order is the output order of every run.
func DefaultSources() []SourceConfig {
	return []SourceConfig{
		{
			Name:    "Cenovnik usluga - šišanje",
			URL:     "https://www.cenovnikusluga.rs/beograd/musko-sisanje",
			Grammar: GrammarSentence,
			Service: "haircut",
		},
		{
			Name:    "Cenovnik usluga - brada",
			URL:     "https://www.cenovnikusluga.rs/beograd/sredjivanje-brade",
			Grammar: GrammarSentence,
			Service: "beard",
		},
		{
			Name:    "Majstori.rs - šišanje",
			URL:     "https://www.majstori.rs/cene/frizer-musko-sisanje",
			Grammar: GrammarSentence,
			Service: "haircut",
		},
		{
			Name:    "Barbershop Dorćol",
			URL:     "https://barbershopdorcol.rs/booking",
			Grammar: GrammarLineItem,
			Engine:  EngineRod,
			Items: []ItemConfig{
				{Service: "haircut", Label: "Muško šišanje", Layout: "booking"},
				{Service: "beard", Label: "Brada", Layout: "booking"},
				{Service: "wash", Label: "Pranje kose", Layout: "booking"},
			},
			Inference: []InferenceConfig{
				{Label: "Šišanje i brada", Layout: "booking", Known: "haircut", Missing: "beard"},
			},
		},
		{
			Name:    "Berbernica Vračar",
			URL:     "https://berbernicavracar.rs/zakazivanje",
			Grammar: GrammarLineItem,
			Engine:  EngineRod,
			Items: []ItemConfig{
				{Service: "haircut", Label: "Šišanje", Layout: "booking"},
				{Service: "beard", Label: "Oblikovanje brade", Layout: "booking"},
			},
			Inference: []InferenceConfig{
				{Label: "Šišanje + brada", Layout: "booking", Known: "haircut", Missing: "beard"},
			},
		},
		{
			Name:    "Frizerski salon Zemun",
			URL:     "https://salonzemun.rs/cenovnik",
			Grammar: GrammarLineItem,
			Items: []ItemConfig{
				{Service: "haircut", Label: "Muško šišanje", Layout: "static"},
				{Service: "beard", Label: "Brada", Layout: "static"},
				{Service: "wash", Label: "Pranje kose", Layout: "static"},
			},
		},
		{
			Name:    "Barber Novi Beograd",
			URL:     "https://barbernbgd.rs/usluge",
			Grammar: GrammarLineItem,
			Items: []ItemConfig{
				{Service: "haircut", Label: "Šišanje makazama", Layout: "static"},
				{Service: "haircut", Label: "Šišanje mašinicom", Layout: "static"},
				{Service: "beard", Label: "Brijanje", Layout: "static"},
			},
			Inference: []InferenceConfig{
				{Label: "Šišanje i brada", Layout: "static", Known: "haircut", Missing: "beard"},
			},
		},
		{
			Name:    "Gentleman's Barber",
			URL:     "https://gentlemansbarber.rs/cene",
			Grammar: GrammarLineItem,
			Items: []ItemConfig{
				{Service: "haircut", Label: "Haircut", Layout: "static"},
				{Service: "beard", Label: "Beard trim", Layout: "static"},
				{Service: "wash", Label: "Hair wash", Layout: "static"},
			},
		},
	}
}
