package models

// DiseaseRecord is one localized entry of a disease catalog.
// The short JSON keys are the wire format the web client reads.
type DiseaseRecord struct {
	Key         string `json:"-" msgpack:"-" yaml:"key"`
	Designation string `json:"d" msgpack:"d" yaml:"designation"`
	Symptoms    string `json:"s" msgpack:"s" yaml:"symptoms"`
	Treatment   string `json:"t" msgpack:"t" yaml:"treatment"`
	Prevention  string `json:"p" msgpack:"p" yaml:"prevention"`
}

// DetectResponse is the body returned by the detect endpoint.
type DetectResponse struct {
	Success  bool            `json:"success"`
	Diseases []DiseaseRecord `json:"diseases"`
}

// LanguagesResponse lists the catalog languages and the fallback.
type LanguagesResponse struct {
	Languages []string `json:"languages"`
	Default   string   `json:"default"`
}

// CatalogResponse is a single resolved language table.
type CatalogResponse struct {
	Language string          `json:"language" msgpack:"language"`
	Diseases []DiseaseRecord `json:"diseases" msgpack:"diseases"`
}
