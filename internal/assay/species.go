package assay

// knownSpecies is the closed set of species and oxide codes present in the
// state assay export.
var knownSpecies = []string{
	"U3O8", "Au", "SiO2", "Al2O3", "TiO2", "FeO", "MnO", "MgO", "CaO", "Na2O",
	"K2O", "P2O5", "Fe2O3", "Ba", "Be", "Ce", "Dy", "Er", "Eu", "Ga", "Gd", "Hf", "Ho", "La", "Lu", "Nd",
	"Pr", "Rb", "Sb", "Sc", "Sm", "Sn", "Sr", "Ta", "Tb", "Th", "Tm", "U", "W", "Y", "Yb", "Zr", "Nb", "Ag",
	"As", "Bi", "Cd", "Pb", "Cu", "Ge", "Zn", "Mn", "Co", "Cr", "Cs", "Li", "Ni", "V", "LOI", "B", "Pd", "In",
	"Mo", "Se", "Te", "Tl", "Ir", "Pt", "Rh", "Ru", "Ti", "P", "C", "H2O_plus", "H2O_minus", "Ca", "Al", "Fe",
	"F", "S", "CO2", "Mg", "Hg", "Os", "K", "V2O5", "ThO2", "WO3", "Ta2O5", "Nb2O5", "Na", "Br", "Si", "SO4", "NaCl",
	"Cr2O3", "GPSM", "CO3", "CaCO3", "Insol", "MgCO3", "Cl", "CaSO4", "SO3", "Re", "Sr87_86", "BaO", "Total",
	"TOT/C", "TOT/S", "HMIN", "SrO", "CoO", "NiO", "ZnO", "ZrO2", "H2O", "GoI",
}

var speciesIndex = func() map[string]struct{} {
	m := make(map[string]struct{}, len(knownSpecies))
	for _, s := range knownSpecies {
		m[s] = struct{}{}
	}
	return m
}()

// KnownSpecies returns the supported species codes in catalogue order.
func KnownSpecies() []string {
	out := make([]string, len(knownSpecies))
	copy(out, knownSpecies)
	return out
}

// IsKnownSpecies reports whether code is a supported species. Codes are case-sensitive.
func IsKnownSpecies(code string) bool {
	_, ok := speciesIndex[code]
	return ok
}
