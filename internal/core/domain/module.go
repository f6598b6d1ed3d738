package domain

// ModuleStatus describes whether a scoring module can be used.
type ModuleStatus string

const (
	ModuleActive     ModuleStatus = "active"
	ModuleComingSoon ModuleStatus = "coming-soon"
)

// Module is one entry of the scoring capability catalog.
type Module struct {
	Code        string
	Title       string
	Description string
	Status      ModuleStatus
}

var catalog = []Module{
	{
		Code:        "M001",
		Title:       "AI Ürün Potansiyel Skoru",
		Description: "GPT destekli ürün analizi, skorlama ve karar destek sistemi",
		Status:      ModuleActive,
	},
	{
		Code:        "M002",
		Title:       "Pazar Analizi Motoru",
		Description: "Rekabet analizi ve pazar trend tahmini",
		Status:      ModuleComingSoon,
	},
	{
		Code:        "M003",
		Title:       "Tedarikçi Güvenilirlik Skoru",
		Description: "AI destekli tedarikçi değerlendirme sistemi",
		Status:      ModuleComingSoon,
	},
}

// Modules returns a copy of the module catalog in display order.
func Modules() []Module {
	out := make([]Module, len(catalog))
	copy(out, catalog)
	return out
}

// LookupModule returns the catalog entry for code.
func LookupModule(code string) (Module, bool) {
	for _, m := range catalog {
		if m.Code == code {
			return m, true
		}
	}
	return Module{}, false
}

// ActiveModuleCount returns how many catalog modules are usable.
func ActiveModuleCount() int {
	n := 0
	for _, m := range catalog {
		if m.Status == ModuleActive {
			n++
		}
	}
	return n
}
