package terminology

// CID10Code represents a CID-10 diagnosis reference code.
type CID10Code struct {
	Code     string `json:"code" db:"code"`
	Display  string `json:"display" db:"display"`
	Category string `json:"category,omitempty" db:"category"`
}

// DCBDrug represents a drug from the DCB (Denominação Comum
// Brasileira) reference list. Name is the canonical popular name and
// doubles as the catalog key; DCB is the official denomination.
type DCBDrug struct {
	Name     string   `json:"name" db:"name"`
	DCB      string   `json:"dcb" db:"dcb"`
	Synonyms []string `json:"synonyms,omitempty" db:"synonyms"`
}

// TUSSProcedure represents a TUSS procedure code with its fee table.
type TUSSProcedure struct {
	Code        string   `json:"code" db:"code"`
	Description string   `json:"description" db:"description"`
	Table       string   `json:"table,omitempty" db:"table_id"`
	Category    string   `json:"category,omitempty" db:"category"`
	Synonyms    []string `json:"synonyms,omitempty" db:"synonyms"`
}

// DefaultTUSSTable is the general procedures fee table, used when a
// procedure entry does not carry one of its own.
const DefaultTUSSTable = "22"

// CID10Match is one ranked diagnosis candidate.
type CID10Match struct {
	Entry CID10Code `json:"entry"`
	Score float64   `json:"score"`
}

// DCBMatch is one ranked drug candidate.
type DCBMatch struct {
	Entry DCBDrug `json:"entry"`
	Score float64 `json:"score"`
}

// TUSSMatch is one ranked procedure candidate.
type TUSSMatch struct {
	Entry TUSSProcedure `json:"entry"`
	Score float64       `json:"score"`
}

// Catalogs aggregates the three static reference datasets loaded at
// process start. Entries are never mutated after loading.
type Catalogs struct {
	Diagnoses  []CID10Code
	Drugs      []DCBDrug
	Procedures []TUSSProcedure
}
